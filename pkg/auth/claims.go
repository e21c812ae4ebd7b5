package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// VisitorTokenClaims represents the JWT handed to a browsing visitor.
// The visitor id scopes every piece of per-visitor state.
type VisitorTokenClaims struct {
	VisitorID uuid.UUID `json:"visitor_id"`
	jwt.RegisteredClaims
}
