package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/api/validators"
	"github.com/angelmondragon/barakat-storefront/internal/cart"
	product "github.com/angelmondragon/barakat-storefront/internal/products"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
	"github.com/angelmondragon/barakat-storefront/pkg/metrics"
)

type addCartItemPayload struct {
	ProductID string            `json:"product_id" validate:"required"`
	Quantity  int               `json:"quantity" validate:"omitempty,min=1,max=99"`
	Options   map[string]string `json:"options"`
}

type updateCartItemPayload struct {
	Quantity *int `json:"quantity" validate:"required,min=0,max=99"`
}

type cartItemResponse struct {
	Line cart.Line    `json:"line"`
	Cart cart.Summary `json:"cart"`
}

func CartGet(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var summary cart.Summary
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			c, err := s.Cart(r.Context())
			if err != nil {
				return err
			}
			summary = c.Summary()
			return nil
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// CartAddItem prices the line from the catalog and merges it into the cart.
// Options pick one value per product variant.
func CartAddItem(sessions visitorSessions, catalog *product.Catalog, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		var payload addCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if payload.Quantity == 0 {
			payload.Quantity = 1
		}

		p, ok := catalog.FindByID(payload.ProductID)
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		if !p.InStock {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "product is out of stock"))
			return
		}
		variant, err := p.VariantLabel(payload.Options)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input := cart.LineInput{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.PrimaryImage(),
			Quantity:  payload.Quantity,
			Variant:   variant,
		}

		var resp cartItemResponse
		err = runForVisitor(r, sessions, func(s *storefront.Session) error {
			c, err := s.Cart(ctx)
			if err != nil {
				return err
			}
			line, err := c.AddItem(ctx, input)
			if err != nil {
				return err
			}
			resp = cartItemResponse{Line: line, Cart: c.Summary()}
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		m.IncCartMutation("add")

		if logg != nil {
			logg.Info(logg.WithFields(ctx, map[string]any{
				"product_id": p.ID,
				"line_id":    resp.Line.ID,
				"quantity":   resp.Line.Quantity,
			}), "cart.item_added")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, resp)
	}
}

// CartUpdateItem sets a line's quantity; zero removes the line.
func CartUpdateItem(sessions visitorSessions, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload updateCartItemPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		lineID := chi.URLParam(r, "lineId")

		summary, err := mutateCart(r, sessions, func(c *cart.Cart) error {
			return c.UpdateItemQuantity(ctx, lineID, *payload.Quantity)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		m.IncCartMutation("update")
		responses.WriteSuccess(w, summary)
	}
}

func CartRemoveItem(sessions visitorSessions, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		lineID := chi.URLParam(r, "lineId")

		summary, err := mutateCart(r, sessions, func(c *cart.Cart) error {
			return c.RemoveItem(ctx, lineID)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		m.IncCartMutation("remove")
		responses.WriteSuccess(w, summary)
	}
}

func CartClear(sessions visitorSessions, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		summary, err := mutateCart(r, sessions, func(c *cart.Cart) error {
			return c.Clear(ctx)
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		m.IncCartMutation("clear")
		responses.WriteSuccess(w, summary)
	}
}

func mutateCart(r *http.Request, sessions visitorSessions, fn func(*cart.Cart) error) (cart.Summary, error) {
	var summary cart.Summary
	err := runForVisitor(r, sessions, func(s *storefront.Session) error {
		c, err := s.Cart(r.Context())
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		summary = c.Summary()
		return nil
	})
	return summary, err
}
