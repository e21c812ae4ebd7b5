package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/api/validators"
	"github.com/angelmondragon/barakat-storefront/internal/auth"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	"github.com/angelmondragon/barakat-storefront/internal/users"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
)

type addressResponse struct {
	Address   *users.Address  `json:"address,omitempty"`
	Addresses []users.Address `json:"addresses"`
}

func AccountAddAddress(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload auth.AddressInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var resp addressResponse
		err := withSignedIn(r, sessions, func(a *auth.Session) error {
			address, _, err := a.AddAddress(ctx, payload)
			if err != nil {
				return err
			}
			resp = addressResponse{Address: &address, Addresses: currentAddresses(a)}
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// AccountUpdateAddress replaces the address named in the path.
func AccountUpdateAddress(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload auth.AddressInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		address := users.Address{
			ID:        chi.URLParam(r, "addressId"),
			Title:     payload.Title,
			FullName:  payload.FullName,
			Phone:     payload.Phone,
			City:      payload.City,
			Street:    payload.Street,
			Building:  payload.Building,
			Apartment: payload.Apartment,
			IsDefault: payload.IsDefault,
		}

		var resp addressResponse
		err := withSignedIn(r, sessions, func(a *auth.Session) error {
			updated, err := a.UpdateAddress(ctx, address)
			if err != nil {
				return err
			}
			if !updated {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			user, _ := a.CurrentUser()
			stored, _ := user.FindAddress(address.ID)
			resp = addressResponse{Address: &stored, Addresses: currentAddresses(a)}
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func AccountRemoveAddress(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "addressId")

		var resp addressResponse
		err := withSignedIn(r, sessions, func(a *auth.Session) error {
			removed, err := a.RemoveAddress(ctx, id)
			if err != nil {
				return err
			}
			if !removed {
				return pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
			}
			resp = addressResponse{Addresses: currentAddresses(a)}
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func withSignedIn(r *http.Request, sessions visitorSessions, fn func(*auth.Session) error) error {
	return runForVisitor(r, sessions, func(s *storefront.Session) error {
		a, err := s.Auth(r.Context())
		if err != nil {
			return err
		}
		if !a.IsAuthenticated() {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "sign in required")
		}
		return fn(a)
	})
}

func currentAddresses(a *auth.Session) []users.Address {
	user, ok := a.CurrentUser()
	if !ok || user.Addresses == nil {
		return []users.Address{}
	}
	return user.Addresses
}
