package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"ombela/internal/domain"
)

func (a *app) reviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Rate products",
	}
	cmd.AddCommand(a.reviewAddCmd(), a.reviewListCmd())
	return cmd
}

func (a *app) reviewAddCmd() *cobra.Command {
	var stars int
	var comment string
	cmd := &cobra.Command{
		Use:   "add <product-id>",
		Short: "Review a product (one review per user)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			review, err := a.reviews.Submit(cmd.Context(), id, stars, comment)
			if err != nil {
				return err
			}
			cmd.Printf("review #%d saved: %s\n", review.ID, domain.StarBar(review.Stars))
			return nil
		},
	}
	cmd.Flags().IntVar(&stars, "stars", 0, "star rating 1-5")
	cmd.Flags().StringVar(&comment, "comment", "", "free-text comment")
	_ = cmd.MarkFlagRequired("stars")
	return cmd
}

func (a *app) reviewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <product-id>",
		Short: "List a product's reviews and average rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			reviews, avg := a.reviews.ForProduct(id)
			if len(reviews) == 0 {
				cmd.Println("no reviews yet")
				return nil
			}
			cmd.Printf("average: %s\n", domain.StarBar(avg))
			for _, r := range reviews {
				cmd.Printf("%s  %s (%s)\n", domain.StarBar(r.Stars), r.UserName, r.CreatedAt.Format("2006-01-02"))
				if r.Comment != "" {
					cmd.Printf("  %s\n", r.Comment)
				}
			}
			return nil
		},
	}
}
