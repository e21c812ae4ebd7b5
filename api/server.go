package api

import (
	"net/http"
	"os"
	"time"

	"github.com/angelmondragon/barakat-storefront/pkg/config"
)

// NewServer returns the HTTP server that cmd/api runs. PORT overrides the
// configured port for platforms that assign one.
func NewServer(cfg *config.Config, handler http.Handler) *http.Server {
	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
