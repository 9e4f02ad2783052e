package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ombela/internal/domain"
)

func (a *app) orderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place orders and run the approval workflow",
	}
	cmd.AddCommand(a.orderPlaceCmd(), a.orderListCmd(), a.orderShowCmd(), a.orderApproveCmd(), a.orderRejectCmd(), a.orderStatsCmd())
	return cmd
}

func (a *app) orderPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place",
		Short: "Snapshot the cart into a pending order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			order, err := a.orders.PlaceOrder(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Printf("order #%d placed, total %s, awaiting approval\n", order.ID, order.FormattedTotal())
			return nil
		},
	}
}

func (a *app) orderListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List orders, optionally by status",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var orders []domain.Order
			if status == "" {
				orders = a.orders.List()
			} else {
				orders = a.orders.ListByStatus(domain.OrderStatus(status))
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPLACED\tITEMS\tTOTAL\tSTATUS")
			for _, o := range orders {
				var n int64
				for _, it := range o.Items {
					n += it.Quantity
				}
				fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), n, o.FormattedTotal(), o.Status)
			}
			_ = w.Flush()
			return nil
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "filter: pendente, aprovado or rejeitado")
	return cmd
}

func (a *app) orderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one order's lines and totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			o, err := a.orders.Get(id)
			if err != nil {
				return err
			}
			cmd.Printf("order #%d  %s  %s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status)
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, it := range o.Items {
				fmt.Fprintf(w, "  %s\t%s\tx%d\n", it.Product.Name, it.Product.FormattedPrice(), it.Quantity)
			}
			_ = w.Flush()
			cmd.Printf("subtotal %s, delivery %s, total %s\n",
				domain.FormatKz(o.Subtotal), domain.FormatKz(o.DeliveryFee), o.FormattedTotal())
			return nil
		},
	}
}

func (a *app) orderApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			return a.orders.Approve(cmd.Context(), id)
		},
	}
}

func (a *app) orderRejectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject a pending order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid order id %q", args[0])
			}
			return a.orders.Reject(cmd.Context(), id)
		},
	}
}

func (a *app) orderStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show order counts per status and approved revenue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := a.orders.Statistics()
			cmd.Printf("total: %d  pending: %d  approved: %d  rejected: %d\n", s.Total, s.Pending, s.Approved, s.Rejected)
			cmd.Printf("approved revenue: %s\n", domain.FormatKz(s.Revenue))
			return nil
		},
	}
}
