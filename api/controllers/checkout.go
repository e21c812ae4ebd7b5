package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/api/validators"
	"github.com/angelmondragon/barakat-storefront/internal/checkout"
	"github.com/angelmondragon/barakat-storefront/internal/orders"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
	"github.com/angelmondragon/barakat-storefront/pkg/metrics"
	"github.com/angelmondragon/barakat-storefront/pkg/pagination"
)

func CheckoutQuote(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var quote checkout.Quote
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			var err error
			quote, err = s.Quote(r.Context())
			return err
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// CheckoutSubmit turns the visitor's cart into a pending order. An order that
// was recorded is returned even when clearing the cart afterwards failed.
func CheckoutSubmit(sessions visitorSessions, m *metrics.StorefrontMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload checkout.SubmitInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var order orders.Order
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			var err error
			order, err = s.SubmitOrder(ctx, payload)
			return err
		})
		if err != nil && order.ID == "" {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		m.IncOrderSubmitted()
		if logg != nil {
			logCtx := logg.WithFields(ctx, map[string]any{
				"order_id":    order.ID,
				"grand_total": order.GrandTotal.String(),
				"items":       len(order.Items),
			})
			if err != nil {
				logg.Error(logCtx, "checkout.cart_clear_failed", err)
			}
			logg.Info(logCtx, "checkout.order_submitted")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// OrdersList pages through the visitor's order history in submission order.
func OrdersList(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		params := pagination.Params{Limit: limit, Cursor: r.URL.Query().Get("cursor")}

		var page pagination.Page[orders.Order]
		err = runForVisitor(r, sessions, func(s *storefront.Session) error {
			list, err := s.Orders().List(ctx)
			if err != nil {
				return err
			}
			page, err = pagination.Paginate(list, params)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
			}
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

func OrderGet(sessions visitorSessions, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "orderId")

		var order orders.Order
		err := runForVisitor(r, sessions, func(s *storefront.Session) error {
			found, ok, err := s.Orders().FindByID(ctx, id)
			if err != nil {
				return err
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			order = found
			return nil
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
