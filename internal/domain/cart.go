package domain

import (
	"github.com/shopspring/decimal"
)

// Product is a catalog entry as it is handed to the cart, without a quantity.
type Product struct {
	ID       string
	Title    string
	ImageURL string
	Price    decimal.Decimal
}

type CartItem struct {
	ID       string
	Title    string
	ImageURL string
	Price    decimal.Decimal

	// Quantity has no lower bound; an item at zero stays in the cart.
	Quantity int
}

func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:       p.ID,
		Title:    p.Title,
		ImageURL: p.ImageURL,
		Price:    p.Price,
		Quantity: 1,
	}
}

func (i CartItem) Product() Product {
	return Product{
		ID:       i.ID,
		Title:    i.Title,
		ImageURL: i.ImageURL,
		Price:    i.Price,
	}
}

func IndexOf(items []CartItem, id string) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}
