// Package storefront composes one visitor's state holders and serialises
// requests for the same visitor.
package storefront

import (
	"context"
	"fmt"
	"sync"

	"github.com/angelmondragon/barakat-storefront/internal/auth"
	"github.com/angelmondragon/barakat-storefront/internal/checkout"
	"github.com/angelmondragon/barakat-storefront/internal/users"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
)

// RegistryParams groups dependencies for the registry.
type RegistryParams struct {
	Store    kv.Store
	Accounts *users.Repository
	Hasher   auth.PasswordHasher
	Checkout *checkout.Service
}

// Registry hands out visitor sessions. Work for one visitor runs under that
// visitor's lock; different visitors proceed in parallel.
type Registry struct {
	store    kv.Store
	accounts *users.Repository
	hasher   auth.PasswordHasher
	checkout *checkout.Service

	mu    sync.Mutex
	locks map[string]*visitorLock
}

type visitorLock struct {
	mu   sync.Mutex
	refs int
}

func NewRegistry(params RegistryParams) (*Registry, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	if params.Hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	if params.Checkout == nil {
		return nil, fmt.Errorf("checkout service is required")
	}
	accounts := params.Accounts
	if accounts == nil {
		accounts = users.NewRepository(params.Store)
	}
	return &Registry{
		store:    params.Store,
		accounts: accounts,
		hasher:   params.Hasher,
		checkout: params.Checkout,
		locks:    make(map[string]*visitorLock),
	}, nil
}

// Do runs fn with the visitor's session while holding the visitor's lock.
func (r *Registry) Do(ctx context.Context, visitorID string, fn func(*Session) error) error {
	if visitorID == "" {
		return fmt.Errorf("visitor id is required")
	}
	lock := r.acquire(visitorID)
	defer r.release(visitorID, lock)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(r.newSession(visitorID))
}

// Ping checks the backing store.
func (r *Registry) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}

func (r *Registry) Checkout() *checkout.Service {
	return r.checkout
}

func (r *Registry) acquire(visitorID string) *visitorLock {
	r.mu.Lock()
	lock, ok := r.locks[visitorID]
	if !ok {
		lock = &visitorLock{}
		r.locks[visitorID] = lock
	}
	lock.refs++
	r.mu.Unlock()

	lock.mu.Lock()
	return lock
}

func (r *Registry) release(visitorID string, lock *visitorLock) {
	lock.mu.Unlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	lock.refs--
	if lock.refs == 0 {
		delete(r.locks, visitorID)
	}
}

func (r *Registry) activeLocks() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.locks)
}
