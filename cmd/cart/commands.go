package main

import (
	"fmt"
	"text/tabwriter"
	"github.com/google/uuid"
	"github.com/nikolayk812/gomarket-cart/internal/cart"
	"github.com/nikolayk812/gomarket-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var (
		p     domain.Product
		price string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Append a product to the cart with quantity 1",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			amount, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("price[%s] is not valid: %w", price, err)
			}
			p.Price = amount

			if p.ID == "" {
				p.ID = uuid.NewString()
			}

			store := cart.MustFromContext(cmd.Context())
			if err := store.AddToCart(cmd.Context(), p); err != nil {
				return fmt.Errorf("store.AddToCart: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.ID, "id", "", "product id, generated when empty")
	cmd.Flags().StringVar(&p.Title, "title", "", "product title")
	cmd.Flags().StringVar(&p.ImageURL, "image", "", "product image URL")
	cmd.Flags().StringVar(&price, "price", "0", "unit price")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newIncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inc <id>",
		Short: "Increase the quantity of a cart line by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := cart.MustFromContext(cmd.Context())
			if err := store.Increment(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("store.Increment: %w", err)
			}
			return nil
		},
	}
}

func newDecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dec <id>",
		Short: "Decrease the quantity of a cart line by one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := cart.MustFromContext(cmd.Context())
			if err := store.Decrement(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("store.Decrement: %w", err)
			}
			return nil
		},
	}
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the cart lines in order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store := cart.MustFromContext(cmd.Context())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tQTY\tPRICE")
			for _, item := range store.Products() {
				price := domain.Money{Amount: item.Price, Currency: a.cfg.DisplayCurrency}
				fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", item.ID, item.Title, item.Quantity, price)
			}
			return w.Flush()
		},
	}
}
