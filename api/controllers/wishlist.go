package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/api/validators"
	product "github.com/angelmondragon/barakat-storefront/internal/products"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	"github.com/angelmondragon/barakat-storefront/internal/wishlist"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
)

type addWishlistItemPayload struct {
	ProductID string `json:"product_id" validate:"required"`
}

type wishlistResponse struct {
	Items []wishlist.Entry `json:"items"`
	Count int              `json:"count"`
}

type wishlistChangeResponse struct {
	Changed  bool             `json:"changed"`
	Wishlist wishlistResponse `json:"wishlist"`
}

type wishlistMembershipResponse struct {
	ProductID  string `json:"product_id"`
	InWishlist bool   `json:"in_wishlist"`
}

func WishlistGet(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var resp wishlistResponse
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			wl, err := s.Wishlist(r.Context())
			if err != nil {
				return err
			}
			resp = wishlistResponseOf(wl)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// WishlistAdd stores the catalog product's summary. Adding a product twice is a no-op.
func WishlistAdd(sessions visitorSessions, catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		var payload addWishlistItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		p, ok := catalog.FindByID(payload.ProductID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		resp, err := mutateWishlist(r, sessions, func(wl *wishlist.Wishlist) (bool, error) {
			return wl.AddItem(ctx, p.Summary())
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func WishlistContains(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productId")
		resp := wishlistMembershipResponse{ProductID: productID}
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			wl, err := s.Wishlist(r.Context())
			if err != nil {
				return err
			}
			resp.InWishlist = wl.IsInWishlist(productID)
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func WishlistRemove(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		productID := chi.URLParam(r, "productId")
		resp, err := mutateWishlist(r, sessions, func(wl *wishlist.Wishlist) (bool, error) {
			return wl.RemoveItem(ctx, productID)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func WishlistClear(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp, err := mutateWishlist(r, sessions, func(wl *wishlist.Wishlist) (bool, error) {
			changed := wl.Len() > 0
			return changed, wl.Clear(ctx)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

func mutateWishlist(r *http.Request, sessions visitorSessions, fn func(*wishlist.Wishlist) (bool, error)) (wishlistChangeResponse, error) {
	var resp wishlistChangeResponse
	err := runForVisitor(r, sessions, func(s *storefront.Session) error {
		wl, err := s.Wishlist(r.Context())
		if err != nil {
			return err
		}
		changed, err := fn(wl)
		if err != nil {
			return err
		}
		resp = wishlistChangeResponse{Changed: changed, Wishlist: wishlistResponseOf(wl)}
		return nil
	})
	return resp, err
}

func wishlistResponseOf(wl *wishlist.Wishlist) wishlistResponse {
	return wishlistResponse{Items: wl.Items(), Count: wl.Len()}
}
