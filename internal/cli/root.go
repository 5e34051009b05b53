// Package cli is the headless storefront client: it browses the catalog,
// keeps the shopping cart in a local file, and prints order totals.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/clothstore/storefront/pkg/config"
)

var (
	flagAPI      string
	flagCartFile string
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "ClothStore storefront client",
	Long: `Storefront is the ClothStore shopping client. It talks to the catalog
API for product data, keeps your cart in a local file, and computes
order totals with coupon and shipping rules applied.`,
	SilenceUsage: true,
}

func init() {
	cfg := config.Load()
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", cfg.CatalogURL, "base URL of the catalog API")
	rootCmd.PersistentFlags().StringVar(&flagCartFile, "cart-file", cfg.CartFile, "path of the persisted cart")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
