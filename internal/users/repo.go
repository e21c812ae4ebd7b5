package users

import (
	"context"
	"sync"

	"github.com/angelmondragon/barakat-storefront/pkg/kv"
)

// Repository persists the shared account list under the users key.
type Repository struct {
	store kv.Store
	mu    sync.Mutex
}

// NewRepository constructs a users repo bound to the unscoped store.
func NewRepository(store kv.Store) *Repository {
	return &Repository{store: store}
}

// List returns every stored account in registration order.
func (r *Repository) List(ctx context.Context) ([]Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// FindByEmail retrieves the account registered with email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (Account, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return Account{}, false, err
	}
	needle := NormalizeEmail(email)
	for _, a := range accounts {
		if NormalizeEmail(a.Email) == needle {
			return a, true, nil
		}
	}
	return Account{}, false, nil
}

// Create appends account unless its email is already registered. The check
// and the append happen under one lock.
func (r *Repository) Create(ctx context.Context, account Account) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	account.Email = NormalizeEmail(account.Email)
	for _, a := range accounts {
		if NormalizeEmail(a.Email) == account.Email {
			return false, nil
		}
	}
	account.User = account.User.Clone()
	if err := kv.SetJSON(ctx, r.store, kv.KeyUsers, append(accounts, account)); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateProfile replaces the stored user data for user.ID and keeps the
// stored password hash. Unknown ids are ignored.
func (r *Repository) UpdateProfile(ctx context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	for i := range accounts {
		if accounts[i].ID == user.ID {
			accounts[i].User = user.Clone()
			return kv.SetJSON(ctx, r.store, kv.KeyUsers, accounts)
		}
	}
	return nil
}

func (r *Repository) load(ctx context.Context) ([]Account, error) {
	accounts, _, err := kv.GetJSON[[]Account](ctx, r.store, kv.KeyUsers)
	if err != nil {
		return nil, err
	}
	return accounts, nil
}
