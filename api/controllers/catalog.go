package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/barakat-storefront/api/responses"
	"github.com/angelmondragon/barakat-storefront/api/validators"
	product "github.com/angelmondragon/barakat-storefront/internal/products"
	pkgerrors "github.com/angelmondragon/barakat-storefront/pkg/errors"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
)

const (
	maxSearchQueryLen = 100
	maxFeaturedLimit  = 50
)

type priceBounds struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

type catalogListResponse struct {
	Title       string             `json:"title"`
	Sort        product.SortOption `json:"sort"`
	Count       int                `json:"count"`
	PriceBounds priceBounds        `json:"price_bounds"`
	Products    []product.Product  `json:"products"`
}

type searchResponse struct {
	Query    string            `json:"query"`
	Count    int               `json:"count"`
	Products []product.Product `json:"products"`
}

func CatalogCategories(catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, catalog.Categories())
	}
}

// CatalogProducts lists products matching the query filters in the requested order.
func CatalogProducts(catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		filter, err := parseCatalogFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := filter.Validate(); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		sortOption := product.ParseSortOption(r.URL.Query().Get("sort"))
		items := catalog.View(filter, sortOption)
		lo, hi := catalog.PriceBounds()

		responses.WriteSuccess(w, catalogListResponse{
			Title:       catalog.Title(filter.Category, filter.Subcategory),
			Sort:        sortOption,
			Count:       len(items),
			PriceBounds: priceBounds{Min: lo, Max: hi},
			Products:    items,
		})
	}
}

func CatalogProduct(catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		p, ok := catalog.FindByID(chi.URLParam(r, "productId"))
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, p)
	}
}

func CatalogRelated(catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		related, ok := catalog.Related(chi.URLParam(r, "productId"))
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, related)
	}
}

func CatalogSearch(catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		query := validators.SanitizeString(r.URL.Query().Get("q"), maxSearchQueryLen)
		items := catalog.Search(query)
		responses.WriteSuccess(w, searchResponse{Query: query, Count: len(items), Products: items})
	}
}

// CatalogFeatured returns a home page showcase: new, popular or discounted products.
func CatalogFeatured(catalog *product.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if catalog == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		kind := product.FeaturedKind(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("kind"))))
		if !kind.IsValid() {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "kind must be one of: new, popular, discount").
				WithDetails(map[string]any{"field": "kind"}))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", product.DefaultFeaturedLimit, 1, maxFeaturedLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, catalog.Featured(kind, limit))
	}
}

func parseCatalogFilter(r *http.Request) (product.Filter, error) {
	q := r.URL.Query()
	filter := product.Filter{
		Category:    strings.TrimSpace(q.Get("category")),
		Subcategory: strings.TrimSpace(q.Get("subcategory")),
	}

	var err error
	if filter.MinPrice, err = validators.ParseQueryDecimal(r, "min_price"); err != nil {
		return product.Filter{}, err
	}
	if filter.MaxPrice, err = validators.ParseQueryDecimal(r, "max_price"); err != nil {
		return product.Filter{}, err
	}
	if filter.InStock, err = validators.ParseQueryBool(r, "in_stock"); err != nil {
		return product.Filter{}, err
	}
	if filter.IsNew, err = validators.ParseQueryBool(r, "is_new"); err != nil {
		return product.Filter{}, err
	}
	if filter.IsDiscount, err = validators.ParseQueryBool(r, "is_discount"); err != nil {
		return product.Filter{}, err
	}
	return filter, nil
}
