package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/barakat-storefront/api/controllers"
	"github.com/angelmondragon/barakat-storefront/api/middleware"
	product "github.com/angelmondragon/barakat-storefront/internal/products"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	"github.com/angelmondragon/barakat-storefront/pkg/config"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
	"github.com/angelmondragon/barakat-storefront/pkg/metrics"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Params groups the router's dependencies.
type Params struct {
	Config   *config.Config
	Logger   *logger.Logger
	KV       pinger
	Catalog  *product.Catalog
	Registry *storefront.Registry
	Metrics  *metrics.StorefrontMetrics
	Gatherer prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	cfg, logg := p.Config, p.Logger
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(p.Metrics),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, p.KV, logg))
	})
	if p.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/visitors", controllers.CreateVisitor(cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.VisitorAuth(cfg.JWT, logg))

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/categories", controllers.CatalogCategories(p.Catalog, logg))
				r.Get("/products", controllers.CatalogProducts(p.Catalog, logg))
				r.Get("/products/{productId}", controllers.CatalogProduct(p.Catalog, logg))
				r.Get("/products/{productId}/related", controllers.CatalogRelated(p.Catalog, logg))
				r.Get("/search", controllers.CatalogSearch(p.Catalog, logg))
				r.Get("/featured", controllers.CatalogFeatured(p.Catalog, logg))
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartGet(p.Registry, logg))
				r.Delete("/", controllers.CartClear(p.Registry, p.Metrics, logg))
				r.Post("/items", controllers.CartAddItem(p.Registry, p.Catalog, p.Metrics, logg))
				r.Patch("/items/{lineId}", controllers.CartUpdateItem(p.Registry, p.Metrics, logg))
				r.Delete("/items/{lineId}", controllers.CartRemoveItem(p.Registry, p.Metrics, logg))
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", controllers.WishlistGet(p.Registry, logg))
				r.Delete("/", controllers.WishlistClear(p.Registry, logg))
				r.Post("/items", controllers.WishlistAdd(p.Registry, p.Catalog, logg))
				r.Get("/items/{productId}", controllers.WishlistContains(p.Registry, logg))
				r.Delete("/items/{productId}", controllers.WishlistRemove(p.Registry, logg))
			})

			r.Route("/auth", func(r chi.Router) {
				r.Post("/register", controllers.AuthRegister(p.Registry, p.Metrics, logg))
				r.Post("/login", controllers.AuthLogin(p.Registry, p.Metrics, logg))
				r.Post("/logout", controllers.AuthLogout(p.Registry, logg))
				r.Get("/me", controllers.AuthMe(p.Registry, logg))
			})

			r.Route("/account/addresses", func(r chi.Router) {
				r.Post("/", controllers.AccountAddAddress(p.Registry, logg))
				r.Put("/{addressId}", controllers.AccountUpdateAddress(p.Registry, logg))
				r.Delete("/{addressId}", controllers.AccountRemoveAddress(p.Registry, logg))
			})

			r.Get("/checkout/quote", controllers.CheckoutQuote(p.Registry, logg))
			r.Post("/checkout/orders", controllers.CheckoutSubmit(p.Registry, p.Metrics, logg))
			r.Get("/orders", controllers.OrdersList(p.Registry, logg))
			r.Get("/orders/{orderId}", controllers.OrderGet(p.Registry, logg))
		})
	})

	return r
}
