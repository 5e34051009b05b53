package pricing

import (
	"errors"
	"fmt"
	"strings"
)

// The coupon table is fixed; there is no expiry or usage-limit model.
var couponRates = map[string]float64{
	"SAVE10":   0.10,
	"FREESHIP": 0.05,
	"NEW15":    0.15,
}

var (
	ErrEmptyCode   = errors.New("enter a coupon code")
	ErrUnknownCode = errors.New("coupon not recognized")
)

type Coupon struct {
	Code string  `json:"code"`
	Rate float64 `json:"rate"`
}

// Wallet holds the single currently applied coupon. Applying a new code
// replaces the old one.
type Wallet struct {
	applied *Coupon
}

// Apply normalizes and validates a code. Empty input leaves any existing
// coupon alone; an unknown code clears it. On success the returned message
// names the applied code.
func (w *Wallet) Apply(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", ErrEmptyCode
	}

	rate, ok := couponRates[code]
	if !ok {
		w.applied = nil
		return "", ErrUnknownCode
	}

	w.applied = &Coupon{Code: code, Rate: rate}
	return fmt.Sprintf("Coupon %s applied.", code), nil
}

// Applied returns the active coupon, or nil.
func (w *Wallet) Applied() *Coupon {
	return w.applied
}

// Clear drops the applied coupon, e.g. when the cart empties.
func (w *Wallet) Clear() {
	w.applied = nil
}

// Restore reinstates a previously applied code if it is still valid.
func (w *Wallet) Restore(code string) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if rate, ok := couponRates[code]; ok {
		w.applied = &Coupon{Code: code, Rate: rate}
	}
}
