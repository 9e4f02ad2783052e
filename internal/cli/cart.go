package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ombela/internal/domain"
)

func (a *app) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the shopping cart",
	}
	cmd.AddCommand(a.cartShowCmd(), a.cartAddCmd(), a.cartRemoveCmd(), a.cartSetCmd(), a.cartClearCmd())
	return cmd
}

func (a *app) cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show cart lines and totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			items := a.cart.Items()
			if len(items) == 0 {
				cmd.Println("cart is empty")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPRODUCT\tUNIT PRICE\tQTY")
			for _, it := range items {
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", it.Product.ID, it.Product.Name, it.Product.FormattedPrice(), it.Quantity)
			}
			_ = w.Flush()
			cmd.Printf("subtotal:     %s\n", domain.FormatKz(a.cart.Subtotal()))
			cmd.Printf("delivery fee: %s\n", domain.FormatKz(a.cart.DeliveryFee()))
			cmd.Printf("total:        %s\n", domain.FormatKz(a.cart.Total()))
			return nil
		},
	}
}

func (a *app) cartAddCmd() *cobra.Command {
	var qty int64
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Add a product to the cart (quantities merge)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			product, err := a.catalog.ByID(id)
			if err != nil {
				return err
			}
			if err := a.cart.AddProduct(cmd.Context(), *product, qty); err != nil {
				return err
			}
			cmd.Printf("added %d x %s (%d items in cart)\n", qty, product.Name, a.cart.TotalItemCount())
			return nil
		},
	}
	cmd.Flags().Int64Var(&qty, "qty", 1, "quantity to add")
	return cmd
}

func (a *app) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product's line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			return a.cart.RemoveProduct(cmd.Context(), id)
		},
	}
}

func (a *app) cartSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <product-id> <quantity>",
		Short: "Set a line's quantity (0 removes the line)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			qty, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			return a.cart.SetQuantity(cmd.Context(), id, qty)
		},
	}
}

func (a *app) cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.cart.Clear(cmd.Context())
		},
	}
}
