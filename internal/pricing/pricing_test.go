package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
)

func TestComputeEmptyCart(t *testing.T) {
	got := Compute(nil, &Coupon{Code: "SAVE10", Rate: 0.10})
	assert.Equal(t, Totals{}, got)
}

func TestComputeWithCouponAndShipping(t *testing.T) {
	items := []cartdomain.Item{
		{ID: "a", Price: 50, Quantity: 2},
		{ID: "b", Price: 25, Quantity: 2},
	}

	got := Compute(items, &Coupon{Code: "SAVE10", Rate: 0.10})
	assert.InDelta(t, 150.0, got.Subtotal, 1e-9)
	assert.InDelta(t, 15.0, got.Discount, 1e-9)
	assert.InDelta(t, 9.99, got.Shipping, 1e-9)
	assert.InDelta(t, 144.99, got.Total, 1e-9)
}

func TestComputeFreeShippingOverThreshold(t *testing.T) {
	items := []cartdomain.Item{{ID: "a", Price: 250, Quantity: 1}}

	got := Compute(items, nil)
	assert.InDelta(t, 250.0, got.Subtotal, 1e-9)
	assert.Zero(t, got.Discount)
	assert.Zero(t, got.Shipping)
	assert.InDelta(t, 250.0, got.Total, 1e-9)
}

func TestComputeExactThresholdShipsFree(t *testing.T) {
	items := []cartdomain.Item{{ID: "a", Price: 200, Quantity: 1}}
	assert.Zero(t, Compute(items, nil).Shipping)
}

func TestComputeNeverNegative(t *testing.T) {
	items := []cartdomain.Item{{ID: "a", Price: 1, Quantity: 1}}
	got := Compute(items, &Coupon{Code: "MEGA", Rate: 0.999})
	assert.GreaterOrEqual(t, got.Total, 0.0)
}

func TestWalletApply(t *testing.T) {
	var w Wallet

	t.Run("empty input keeps existing coupon", func(t *testing.T) {
		_, err := w.Apply("SAVE10")
		require.NoError(t, err)

		_, err = w.Apply("   ")
		assert.ErrorIs(t, err, ErrEmptyCode)
		require.NotNil(t, w.Applied())
		assert.Equal(t, "SAVE10", w.Applied().Code)
	})

	t.Run("unknown code clears existing coupon", func(t *testing.T) {
		_, err := w.Apply("BOGUS")
		assert.ErrorIs(t, err, ErrUnknownCode)
		assert.Nil(t, w.Applied())
	})

	t.Run("valid code replaces and reports", func(t *testing.T) {
		msg, err := w.Apply("  new15 ")
		require.NoError(t, err)
		assert.Equal(t, "Coupon NEW15 applied.", msg)
		assert.InDelta(t, 0.15, w.Applied().Rate, 1e-9)
	})

	t.Run("clear drops the coupon", func(t *testing.T) {
		w.Clear()
		assert.Nil(t, w.Applied())
	})
}

func TestWalletRestore(t *testing.T) {
	var w Wallet
	w.Restore("  freeship ")
	require.NotNil(t, w.Applied())
	assert.Equal(t, "FREESHIP", w.Applied().Code)

	w.Clear()
	w.Restore("EXPIRED")
	assert.Nil(t, w.Applied())
}
