package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
)

var addQuantity int

var addCmd = &cobra.Command{
	Use:   "add <product-id>",
	Short: "Add a product to the cart by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()

		if _, err := s.cart.AddByID(cmd.Context(), strings.TrimSpace(args[0]), addQuantity); err != nil {
			return fmt.Errorf("unable to add product: %w", err)
		}
		return nil
	},
}

var qtyCmd = &cobra.Command{
	Use:   "qty <identifier> <delta|=value>",
	Short: "Adjust a line's quantity by a delta, or set it with =N",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		identifier := args[0]
		arg := args[1]

		var err error
		if strings.HasPrefix(arg, "=") {
			value, perr := strconv.ParseFloat(strings.TrimPrefix(arg, "="), 64)
			if perr != nil {
				// invalid input is a silent no-op, mirroring direct input fields
				return nil
			}
			_, err = s.cart.SetQuantity(identifier, value)
		} else {
			delta, perr := strconv.Atoi(arg)
			if perr != nil {
				return fmt.Errorf("delta must be an integer, got %q", arg)
			}
			_, err = s.cart.ChangeQuantity(identifier, delta)
		}
		return err
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <identifier>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		_, err := s.cart.RemoveItem(args[0])
		return err
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart and drop any applied coupon",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()
		_, err := s.cart.Clear()
		return err
	},
}

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List the cart, hydrating missing product details",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()

		items, err := s.cart.HydrateMissing(cmd.Context())
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		}

		// hydration only re-renders when it patched something
		if !s.rendered {
			printCart(items)
		}
		return nil
	},
}

func printCart(items []cartdomain.Item) {
	if len(items) == 0 {
		fmt.Println("Your cart is empty.")
		return
	}
	for _, it := range items {
		name := it.Name
		if name == "" {
			name = "(pending product details)"
		}
		fmt.Printf("%-26s  x%-3d  $%8.2f  %s\n", it.ID, it.Quantity, it.Price*float64(it.Quantity), name)
	}
	noun := "items"
	if len(items) == 1 {
		noun = "item"
	}
	fmt.Printf("\n%d %s\n", len(items), noun)
}

func init() {
	addCmd.Flags().IntVarP(&addQuantity, "quantity", "q", 1, "quantity to add")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(qtyCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(itemsCmd)
}
