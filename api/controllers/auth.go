package controllers

import (
	"net/http"

	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/api/validators"
	"github.com/angelmondragon/barakat-storefront/internal/auth"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	"github.com/angelmondragon/barakat-storefront/internal/users"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
	"github.com/angelmondragon/barakat-storefront/pkg/metrics"
)

type loginPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type meResponse struct {
	Authenticated bool        `json:"authenticated"`
	User          *users.User `json:"user,omitempty"`
}

// AuthRegister creates an account and signs the visitor in.
func AuthRegister(sessions visitorSessions, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload auth.RegisterInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncAuthAttempt("register", false)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var (
			user    users.User
			created bool
		)
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			a, err := s.Auth(ctx)
			if err != nil {
				return err
			}
			if created, err = a.Register(ctx, payload); err != nil || !created {
				return err
			}
			user, _ = a.CurrentUser()
			return nil
		})
		m.IncAuthAttempt("register", err == nil && created)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !created {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeConflict, "email already registered"))
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, user.ID), "auth.registered")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AuthLogin signs the visitor in. A mismatch leaves the visitor anonymous.
func AuthLogin(sessions visitorSessions, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload loginPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			m.IncAuthAttempt("login", false)
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var (
			user users.User
			ok   bool
		)
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			a, err := s.Auth(ctx)
			if err != nil {
				return err
			}
			if ok, err = a.Login(ctx, users.NormalizeEmail(payload.Email), payload.Password); err != nil || !ok {
				return err
			}
			user, _ = a.CurrentUser()
			return nil
		})
		m.IncAuthAttempt("login", err == nil && ok)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid email or password"))
			return
		}

		if logg != nil {
			logg.Info(logg.WithUserID(ctx, user.ID), "auth.logged_in")
		}
		responses.WriteSuccess(w, user)
	}
}

func AuthLogout(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			a, err := s.Auth(r.Context())
			if err != nil {
				return err
			}
			return a.Logout(r.Context())
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

func AuthMe(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp meResponse
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			a, err := s.Auth(r.Context())
			if err != nil {
				return err
			}
			if user, ok := a.CurrentUser(); ok {
				resp = meResponse{Authenticated: true, User: &user}
			}
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
