// Package auth implements the visitor's login session and address book.
package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/angelmondragon/barakat-storefront/internal/users"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
	"github.com/angelmondragon/barakat-storefront/pkg/validation"
	"github.com/google/uuid"
)

type accountRepository interface {
	FindByEmail(ctx context.Context, email string) (users.Account, bool, error)
	Create(ctx context.Context, account users.Account) (bool, error)
	UpdateProfile(ctx context.Context, user users.User) error
}

// PasswordHasher hashes and checks account credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
}

// AddressInput is an address without its id.
type AddressInput struct {
	Title     string `json:"title"`
	FullName  string `json:"full_name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	City      string `json:"city" validate:"required"`
	Street    string `json:"street" validate:"required"`
	Building  string `json:"building"`
	Apartment string `json:"apartment"`
	IsDefault bool   `json:"is_default"`
}

func (in AddressInput) withID(id string) users.Address {
	return users.Address{
		ID:        id,
		Title:     in.Title,
		FullName:  in.FullName,
		Phone:     in.Phone,
		City:      in.City,
		Street:    in.Street,
		Building:  in.Building,
		Apartment: in.Apartment,
		IsDefault: in.IsDefault,
	}
}

// Session is one visitor's auth state: Anonymous until Register or Login
// succeeds. The session-visible user copy is persisted under the user key of
// the visitor's store.
type Session struct {
	store    kv.Store
	accounts accountRepository
	hasher   PasswordHasher
	user     *users.User
	newID    func() string
}

// Load restores the session persisted in store.
func Load(ctx context.Context, store kv.Store, accounts accountRepository, hasher PasswordHasher) (*Session, error) {
	if accounts == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	if hasher == nil {
		return nil, fmt.Errorf("password hasher is required")
	}
	user, found, err := kv.GetJSON[users.User](ctx, store, kv.KeyUser)
	if err != nil {
		return nil, err
	}
	s := &Session{store: store, accounts: accounts, hasher: hasher, newID: uuid.NewString}
	if found {
		if user.Addresses == nil {
			user.Addresses = []users.Address{}
		}
		s.user = &user
	}
	return s, nil
}

// CurrentUser returns a copy of the signed-in user.
func (s *Session) CurrentUser() (users.User, bool) {
	if s.user == nil {
		return users.User{}, false
	}
	return s.user.Clone(), true
}

func (s *Session) IsAuthenticated() bool {
	return s.user != nil
}

// Register creates an account and signs it in. It returns false, leaving the
// session untouched, when the email is already registered.
func (s *Session) Register(ctx context.Context, input RegisterInput) (bool, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = users.NormalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := validation.Struct(input, "invalid registration"); err != nil {
		return false, err
	}

	if _, exists, err := s.accounts.FindByEmail(ctx, input.Email); err != nil {
		return false, err
	} else if exists {
		return false, nil
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	user := users.User{
		ID:        s.newID(),
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Addresses: []users.Address{},
	}
	created, err := s.accounts.Create(ctx, users.Account{User: user, PasswordHash: hash})
	if err != nil || !created {
		return false, err
	}
	if err := s.persist(ctx, user); err != nil {
		return false, err
	}
	return true, nil
}

// Login signs in the account matching email and password. On mismatch it
// returns false and the session becomes Anonymous.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	account, found, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	ok := false
	if found && password != "" {
		ok, err = s.hasher.Verify(password, account.PasswordHash)
		if err != nil {
			return false, fmt.Errorf("verify password: %w", err)
		}
	}
	if !ok {
		if err := s.Logout(ctx); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := s.persist(ctx, account.User.Clone()); err != nil {
		return false, err
	}
	return true, nil
}

// Logout drops the session copy. The account list is untouched.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Remove(ctx, kv.KeyUser); err != nil {
		return err
	}
	s.user = nil
	return nil
}

func (s *Session) persist(ctx context.Context, user users.User) error {
	if err := kv.SetJSON(ctx, s.store, kv.KeyUser, user); err != nil {
		return err
	}
	s.user = &user
	return nil
}
