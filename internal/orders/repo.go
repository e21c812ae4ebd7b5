// Package orders stores a visitor's submitted orders.
package orders

import (
	"context"

	"github.com/angelmondragon/barakat-storefront/pkg/kv"
)

// Repository is the append-only order history under the orders key.
type Repository struct {
	store kv.Store
}

// NewRepository builds an orders repository bound to a visitor's store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List returns the history oldest first.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	history, _, err := kv.GetJSON[[]Order](ctx, r.store, kv.KeyOrders)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []Order{}
	}
	return history, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (Order, bool, error) {
	history, err := r.List(ctx)
	if err != nil {
		return Order{}, false, err
	}
	for _, o := range history {
		if o.ID == id {
			return o, true, nil
		}
	}
	return Order{}, false, nil
}

// Append adds order to the end of the history. Prior orders are rewritten verbatim.
func (r *Repository) Append(ctx context.Context, order Order) error {
	history, err := r.List(ctx)
	if err != nil {
		return err
	}
	return kv.SetJSON(ctx, r.store, kv.KeyOrders, append(history, order))
}
