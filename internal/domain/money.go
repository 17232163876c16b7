package domain

import (
	"fmt"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// Money pairs a stored price with the currency it is displayed in.
type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Currency, m.Amount.StringFixed(2))
}
