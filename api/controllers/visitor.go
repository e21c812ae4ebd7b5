package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/barakat-storefront/api/middleware"
	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	pkgAuth "github.com/angelmondragon/barakat-storefront/pkg/auth"
	"github.com/angelmondragon/barakat-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
)

// visitorSessions runs work against one visitor's storefront session.
type visitorSessions interface {
	Do(ctx context.Context, visitorID string, fn func(*storefront.Session) error) error
}

type visitorTokenResponse struct {
	VisitorID string     `json:"visitor_id"`
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// CreateVisitor issues a token for a fresh visitor. All cart, wishlist and
// account state is keyed by the visitor id inside the token.
func CreateVisitor(cfg config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		now := time.Now().UTC()
		visitorID := uuid.New()

		token, err := pkgAuth.MintVisitorToken(cfg, now, visitorID)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint visitor token"))
			return
		}

		resp := visitorTokenResponse{VisitorID: visitorID.String(), Token: token}
		if ttl := cfg.TTL(); ttl > 0 {
			exp := now.Add(ttl)
			resp.ExpiresAt = &exp
		}

		if logg != nil {
			logg.Info(logg.WithVisitorID(ctx, resp.VisitorID), "visitor.created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

func runForVisitor(r *http.Request, sessions visitorSessions, fn func(*storefront.Session) error) error {
	if sessions == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "storefront unavailable")
	}
	visitorID := middleware.VisitorIDFromContext(r.Context())
	if visitorID == "" {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "visitor context missing")
	}
	return sessions.Do(r.Context(), visitorID, fn)
}
