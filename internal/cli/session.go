package cli

import (
	"os"
	"path/filepath"
	"strings"

	cartapp "github.com/clothstore/storefront/internal/cart/app"
	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
	"github.com/clothstore/storefront/internal/cart/infra/filestore"
	"github.com/clothstore/storefront/internal/catalog/infra/rest"
	"github.com/clothstore/storefront/internal/pricing"
)

// session is the composition point: cart ledger, coupon wallet, and catalog
// client wired together for one CLI invocation. The applied coupon code is
// kept in a sibling file so it survives between invocations the way UI state
// survives between clicks.
type session struct {
	cart    *cartapp.Service
	wallet  *pricing.Wallet
	catalog *rest.Client

	couponPath string

	// set once the change hook has printed the cart this invocation
	rendered bool
}

func newSession() *session {
	s := &session{
		catalog:    rest.NewClient(flagAPI),
		couponPath: filepath.Join(filepath.Dir(flagCartFile), "coupon"),
	}

	s.wallet = &pricing.Wallet{}
	if data, err := os.ReadFile(s.couponPath); err == nil {
		s.wallet.Restore(strings.TrimSpace(string(data)))
	}

	// re-rendering is the caller's job: every ledger mutation pushes its new
	// snapshot through the change hook, and the commands just print it
	s.cart = cartapp.NewService(
		filestore.New(flagCartFile),
		s.catalog,
		cartapp.WithOnClear(func() {
			s.wallet.Clear()
			_ = os.Remove(s.couponPath)
		}),
		cartapp.WithOnChange(func(items []cartdomain.Item) {
			s.rendered = true
			printCart(items)
		}),
	)

	return s
}

func (s *session) rememberCoupon() error {
	applied := s.wallet.Applied()
	if applied == nil {
		return os.RemoveAll(s.couponPath)
	}
	if err := os.MkdirAll(filepath.Dir(s.couponPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.couponPath, []byte(applied.Code+"\n"), 0o644)
}
