package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clothstore/storefront/internal/pricing"
)

var couponCmd = &cobra.Command{
	Use:   "coupon <code>",
	Short: "Apply a coupon code to the order",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()

		code := ""
		if len(args) == 1 {
			code = args[0]
		}

		msg, err := s.wallet.Apply(code)
		if err != nil {
			if errors.Is(err, pricing.ErrUnknownCode) {
				// the unknown code already cleared the wallet; persist that
				_ = s.rememberCoupon()
			}
			return err
		}
		if err := s.rememberCoupon(); err != nil {
			return err
		}

		fmt.Println(msg)
		return nil
	},
}

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Print the order summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := newSession()

		items, err := s.cart.HydrateMissing(cmd.Context())
		if err != nil {
			fmt.Printf("Warning: %v\n", err)
		}

		t := pricing.Compute(items, s.wallet.Applied())

		fmt.Printf("Subtotal  $%.2f\n", t.Subtotal)
		fmt.Printf("Discount  -$%.2f\n", t.Discount)
		if t.Shipping == 0 {
			fmt.Printf("Shipping  Free\n")
		} else {
			fmt.Printf("Shipping  $%.2f\n", t.Shipping)
		}
		fmt.Printf("Total     $%.2f\n", t.Total)

		if applied := s.wallet.Applied(); applied != nil {
			fmt.Printf("\nCoupon %s is active.\n", applied.Code)
		}
		fmt.Printf("Orders over $%d ship free automatically.\n", pricing.FreeShippingThreshold)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(couponCmd)
	rootCmd.AddCommand(totalsCmd)
}
