// Package wishlist holds the set of products a visitor saved for later.
package wishlist

import (
	"context"

	product "github.com/angelmondragon/barakat-storefront/internal/products"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
)

// Entry is a saved product; its ID is the product id.
type Entry = product.ProductSummary

// Wishlist is a first-write-wins set of entries in insertion order.
type Wishlist struct {
	store   kv.Store
	entries []Entry
}

// Load restores the wishlist persisted in store.
func Load(ctx context.Context, store kv.Store) (*Wishlist, error) {
	entries, _, err := kv.GetJSON[[]Entry](ctx, store, kv.KeyWishlist)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return &Wishlist{store: store, entries: entries}, nil
}

// AddItem stores entry unless its id is already present. It reports whether
// the set changed.
func (w *Wishlist) AddItem(ctx context.Context, entry Entry) (bool, error) {
	if entry.ID == "" {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "wishlist entry requires an id")
	}
	if w.IsInWishlist(entry.ID) {
		return false, nil
	}
	next := append(w.Items(), entry)
	if err := w.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// RemoveItem deletes the entry with id if present.
func (w *Wishlist) RemoveItem(ctx context.Context, id string) (bool, error) {
	next := make([]Entry, 0, len(w.entries))
	for _, e := range w.entries {
		if e.ID != id {
			next = append(next, e)
		}
	}
	if len(next) == len(w.entries) {
		return false, nil
	}
	if err := w.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

func (w *Wishlist) IsInWishlist(id string) bool {
	for _, e := range w.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (w *Wishlist) Clear(ctx context.Context) error {
	return w.commit(ctx, []Entry{})
}

// Items returns a copy of the entries.
func (w *Wishlist) Items() []Entry {
	return append(make([]Entry, 0, len(w.entries)), w.entries...)
}

func (w *Wishlist) Len() int {
	return len(w.entries)
}

func (w *Wishlist) commit(ctx context.Context, next []Entry) error {
	if err := kv.SetJSON(ctx, w.store, kv.KeyWishlist, next); err != nil {
		return err
	}
	w.entries = next
	return nil
}
