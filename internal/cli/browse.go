package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clothstore/storefront/internal/catalog/domain"
)

var (
	browseCategories []string
	browseMaterials  []string
	browseColor      string
	browseMinPrice   float64
	browseMaxPrice   float64
	browseSort       string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "List catalog products with filters and sorting",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()

		products, err := s.catalog.ListProducts(cmd.Context())
		if err != nil {
			return err
		}

		criteria := domain.NewCriteria()
		for _, c := range browseCategories {
			criteria.ToggleCategory(c)
		}
		for _, m := range browseMaterials {
			criteria.ToggleMaterial(m)
		}
		criteria.Color = browseColor
		criteria.SetPriceMin(browseMinPrice)
		criteria.SetPriceMax(browseMaxPrice)
		criteria.Sort = domain.ParseSortKey(browseSort)

		view := criteria.Apply(products)
		if len(view) == 0 {
			fmt.Println("No products found matching your filters")
			return nil
		}

		for _, p := range view {
			fmt.Printf("%-26s  $%8.2f  %-12s %-10s %s\n", p.ID, p.Price, p.Category, p.Color, p.Name)
		}
		fmt.Printf("\n%d of %d products\n", len(view), len(products))
		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show <product-id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()

		p, err := s.catalog.GetProduct(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", p.Name)
		fmt.Printf("  id:       %s\n", p.ID)
		fmt.Printf("  price:    $%.2f\n", p.Price)
		fmt.Printf("  category: %s\n", p.Category)
		if p.Material != "" {
			fmt.Printf("  material: %s\n", p.Material)
		}
		if p.Color != "" {
			fmt.Printf("  color:    %s\n", p.Color)
		}
		if p.Size != "" {
			fmt.Printf("  size:     %s\n", p.Size)
		}
		fmt.Printf("  stock:    %d\n", p.StockQuantity)
		if urls := append([]string{}, p.ImageURLs...); p.ImageURL != "" || len(urls) > 0 {
			all := urls
			if p.ImageURL != "" {
				all = append([]string{p.ImageURL}, urls...)
			}
			fmt.Printf("  images:   %s\n", strings.Join(all, ", "))
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().StringSliceVar(&browseCategories, "category", nil, "filter by category (repeatable)")
	browseCmd.Flags().StringSliceVar(&browseMaterials, "material", nil, "filter by material (repeatable)")
	browseCmd.Flags().StringVar(&browseColor, "color", "", "filter by color")
	browseCmd.Flags().Float64Var(&browseMinPrice, "min", domain.PriceFloor, "minimum price")
	browseCmd.Flags().Float64Var(&browseMaxPrice, "max", domain.PriceCeiling, "maximum price")
	browseCmd.Flags().StringVar(&browseSort, "sort", "featured", "sort order: featured, price-asc, price-desc, newest")

	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(showCmd)
}
