// Package kv defines the key-value store that holds visitor state (session,
// cart, wishlist, orders) and the shared account list.
package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Well-known keys.
const (
	KeyUser     = "user"
	KeyUsers    = "users"
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyOrders   = "orders"
)

// Store is a string-keyed blob store.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON decodes the value stored at key into T. found is false when the key is absent.
func GetJSON[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var out T
	raw, found, err := store.Get(ctx, key)
	if err != nil || !found {
		return out, found, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, true, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, true, nil
}

// SetJSON encodes value and stores it at key.
func SetJSON(ctx context.Context, store Store, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, raw)
}

type prefixed struct {
	Store
	prefix string
}

// Prefixed scopes every key of store under prefix. Close is a no-op so the
// scoped view never shuts down the shared backend.
func Prefixed(store Store, prefix string) Store {
	prefix = strings.Trim(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		return store
	}
	return &prefixed{Store: store, prefix: prefix}
}

// VisitorScope returns the view of store that belongs to one visitor.
func VisitorScope(store Store, visitorID string) Store {
	return Prefixed(store, "visitor:"+visitorID)
}

func (p *prefixed) key(key string) string {
	return p.prefix + ":" + key
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.Store.Get(ctx, p.key(key))
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.Store.Set(ctx, p.key(key), value)
}

func (p *prefixed) Remove(ctx context.Context, key string) error {
	return p.Store.Remove(ctx, p.key(key))
}

func (p *prefixed) Close() error {
	return nil
}
