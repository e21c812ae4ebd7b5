package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/barakat-storefront/api"
	"github.com/angelmondragon/barakat-storefront/api/routes"
	"github.com/angelmondragon/barakat-storefront/internal/checkout"
	product "github.com/angelmondragon/barakat-storefront/internal/products"
	"github.com/angelmondragon/barakat-storefront/internal/storefront"
	"github.com/angelmondragon/barakat-storefront/pkg/config"
	"github.com/angelmondragon/barakat-storefront/pkg/db"
	"github.com/angelmondragon/barakat-storefront/pkg/instance"
	"github.com/angelmondragon/barakat-storefront/pkg/kv"
	"github.com/angelmondragon/barakat-storefront/pkg/logger"
	"github.com/angelmondragon/barakat-storefront/pkg/metrics"
	"github.com/angelmondragon/barakat-storefront/pkg/migrate"
	"github.com/angelmondragon/barakat-storefront/pkg/redis"
	"github.com/angelmondragon/barakat-storefront/pkg/security"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap kv store", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logg.Error(context.Background(), "error closing kv store", err)
		}
	}()

	catalog, err := product.LoadCatalog(cfg.Catalog.Path)
	if err != nil {
		logg.Error(ctx, "failed to load catalog", err)
		os.Exit(1)
	}

	registry, err := storefront.NewRegistry(storefront.RegistryParams{
		Store:    store,
		Hasher:   security.NewPasswordHasher(cfg.Password),
		Checkout: checkout.NewService(checkout.NewPricing(cfg.Checkout)),
	})
	if err != nil {
		logg.Error(ctx, "failed to create storefront registry", err)
		os.Exit(1)
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	server := api.NewServer(cfg, routes.NewRouter(routes.Params{
		Config:   cfg,
		Logger:   logg,
		KV:       store,
		Catalog:  catalog,
		Registry: registry,
		Metrics:  metrics.NewStorefrontMetrics(promRegistry),
		Gatherer: promRegistry,
	}))

	runCtx := logg.WithFields(ctx, map[string]any{
		"env":       cfg.App.Env,
		"addr":      server.Addr,
		"instance":  instance.GetID(),
		"kv_driver": cfg.KV.NormalizedDriver(),
		"products":  len(catalog.Products()),
	})
	logg.Info(runCtx, "starting api server")

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(runCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(runCtx, "shutting down api server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error(runCtx, "graceful shutdown failed", err)
	}
}

// openStore returns the kv backend selected by BARAKAT_KV_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logg *logger.Logger) (kv.Store, error) {
	switch driver := cfg.KV.NormalizedDriver(); driver {
	case config.KVDriverRedis:
		return redis.New(ctx, cfg.Redis, logg)
	case config.KVDriverSQLite, config.KVDriverPostgres:
		client, err := db.New(ctx, driver, cfg.DB, logg)
		if err != nil {
			return nil, err
		}
		if err := migrate.MaybeRunDev(ctx, cfg, logg, client); err != nil {
			return nil, multierr.Append(err, client.Close())
		}
		return db.NewKVStore(client), nil
	default:
		return kv.NewMemory(), nil
	}
}
