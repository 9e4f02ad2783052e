package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"ombela/internal/domain"
	"ombela/internal/repository"
)

func (a *app) catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse and manage the product catalog",
	}
	cmd.AddCommand(a.catalogListCmd(), a.catalogSearchCmd(), a.catalogAddCmd(), a.catalogUpdateCmd(), a.catalogRemoveCmd())
	return cmd
}

func (a *app) catalogListCmd() *cobra.Command {
	var category, sortDir string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products, optionally filtered by category or sorted by price",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var products []domain.Product
			switch {
			case sortDir != "":
				if sortDir != string(repository.SortAsc) && sortDir != string(repository.SortDesc) {
					return fmt.Errorf("unknown sort direction %q", sortDir)
				}
				products = a.catalog.SortedByPrice(repository.SortDirection(sortDir))
			default:
				products = a.catalog.ByCategory(category)
			}
			printProducts(cmd, products)
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "filter by category")
	cmd.Flags().StringVar(&sortDir, "sort", "", "sort by price: asc or desc")
	return cmd
}

func (a *app) catalogSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <term>",
		Short: "Search products by name and description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printProducts(cmd, a.catalog.Search(args[0]))
			return nil
		},
	}
}

func (a *app) catalogAddCmd() *cobra.Command {
	var (
		name, description, price, category, image, imageFile string
		stars                                                int
	)
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a product to the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := decimal.NewFromString(price)
			if err != nil {
				return fmt.Errorf("invalid price %q", price)
			}
			if imageFile != "" {
				image, err = LoadImageDataURI(imageFile)
				if err != nil {
					return err
				}
			}
			created, err := a.catalog.Create(cmd.Context(), domain.Product{
				Name:        name,
				Description: description,
				Price:       p,
				Category:    category,
				Image:       image,
				Stars:       stars,
			})
			if err != nil {
				return err
			}
			cmd.Printf("created product #%d %s (%s)\n", created.ID, created.Name, created.FormattedPrice())
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&price, "price", "0", "price in Kwanzas")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&image, "image", "", "image URL")
	cmd.Flags().StringVar(&imageFile, "image-file", "", "local image file to embed")
	cmd.Flags().IntVar(&stars, "stars", 0, "star rating 1-5")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("price")
	return cmd
}

func (a *app) catalogUpdateCmd() *cobra.Command {
	var (
		name, description, price, category, image, imageFile string
		stars                                                int
	)
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an existing product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			var patch repository.ProductPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("price") {
				p, err := decimal.NewFromString(price)
				if err != nil {
					return fmt.Errorf("invalid price %q", price)
				}
				patch.Price = &p
			}
			if cmd.Flags().Changed("category") {
				patch.Category = &category
			}
			if cmd.Flags().Changed("image") {
				patch.Image = &image
			}
			if cmd.Flags().Changed("image-file") {
				data, err := LoadImageDataURI(imageFile)
				if err != nil {
					return err
				}
				patch.Image = &data
			}
			if cmd.Flags().Changed("stars") {
				patch.Stars = &stars
			}
			updated, err := a.catalog.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			cmd.Printf("updated product #%d %s\n", updated.ID, updated.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "product name")
	cmd.Flags().StringVar(&description, "description", "", "product description")
	cmd.Flags().StringVar(&price, "price", "", "price in Kwanzas")
	cmd.Flags().StringVar(&category, "category", "", "category")
	cmd.Flags().StringVar(&image, "image", "", "image URL")
	cmd.Flags().StringVar(&imageFile, "image-file", "", "local image file to embed")
	cmd.Flags().IntVar(&stars, "stars", 0, "star rating 1-5")
	return cmd
}

func (a *app) catalogRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a product from the catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid product id %q", args[0])
			}
			removed, err := a.catalog.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			cmd.Printf("removed product #%d %s\n", removed.ID, removed.Name)
			return nil
		},
	}
}

func printProducts(cmd *cobra.Command, products []domain.Product) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tCATEGORY\tRATING")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.ID, p.Name, p.FormattedPrice(), p.Category, domain.StarBar(p.Stars))
	}
	_ = w.Flush()
}
