package storefront

import (
	"context"

	"github.com/angelmondragon/barakat-storefront/internal/auth"
	"github.com/angelmondragon/barakat-storefront/internal/cart"
	"github.com/angelmondragon/barakat-storefront/internal/checkout"
	"github.com/angelmondragon/barakat-storefront/internal/orders"
	"github.com/angelmondragon/barakat-storefront/internal/wishlist"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
)

// Session is one visitor's view of the storefront. State holders load lazily
// on first use and live for a single Registry.Do call.
type Session struct {
	visitorID string
	store     kv.Store
	registry  *Registry

	cart     *cart.Cart
	wishlist *wishlist.Wishlist
	auth     *auth.Session
	orders   *orders.Repository
}

func (r *Registry) newSession(visitorID string) *Session {
	store := kv.VisitorScope(r.store, visitorID)
	return &Session{
		visitorID: visitorID,
		store:     store,
		registry:  r,
		orders:    orders.NewRepository(store),
	}
}

func (s *Session) VisitorID() string {
	return s.visitorID
}

func (s *Session) Cart(ctx context.Context) (*cart.Cart, error) {
	if s.cart == nil {
		c, err := cart.Load(ctx, s.store)
		if err != nil {
			return nil, err
		}
		s.cart = c
	}
	return s.cart, nil
}

func (s *Session) Wishlist(ctx context.Context) (*wishlist.Wishlist, error) {
	if s.wishlist == nil {
		w, err := wishlist.Load(ctx, s.store)
		if err != nil {
			return nil, err
		}
		s.wishlist = w
	}
	return s.wishlist, nil
}

func (s *Session) Auth(ctx context.Context) (*auth.Session, error) {
	if s.auth == nil {
		a, err := auth.Load(ctx, s.store, s.registry.accounts, s.registry.hasher)
		if err != nil {
			return nil, err
		}
		s.auth = a
	}
	return s.auth, nil
}

func (s *Session) Orders() *orders.Repository {
	return s.orders
}

// Quote prices the visitor's cart.
func (s *Session) Quote(ctx context.Context) (checkout.Quote, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return checkout.Quote{}, err
	}
	return s.registry.checkout.Quote(c), nil
}

// SubmitOrder turns the visitor's cart into an order.
func (s *Session) SubmitOrder(ctx context.Context, in checkout.SubmitInput) (orders.Order, error) {
	c, err := s.Cart(ctx)
	if err != nil {
		return orders.Order{}, err
	}
	a, err := s.Auth(ctx)
	if err != nil {
		return orders.Order{}, err
	}
	return s.registry.checkout.Submit(ctx, c, a, s.orders, in)
}
