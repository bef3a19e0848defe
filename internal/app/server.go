package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/config"
	"github.com/Vladimir-SS/ELAn-Esoteric-Language-Explorer/internal/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StartSSEServer starts the SSE server
func StartSSEServer(newServer ServerFactory, settings *config.Settings) error {
	srv, err := NewSSEServer(newServer, settings)
	if err != nil {
		return err
	}

	slog.Info("Server listening (HTTP)", "addr", srv.Addr)
	return srv.ListenAndServe()
}

// NewSSEServer creates the HTTP server exposing the MCP SSE endpoint, a
// health check and Prometheus metrics.
func NewSSEServer(newServer ServerFactory, settings *config.Settings) (*http.Server, error) {
	if newServer == nil {
		return nil, fmt.Errorf("server factory cannot be nil")
	}

	// Called once per new SSE session
	sseHandler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server {
		return newServer()
	}, nil)

	r := chi.NewRouter()
	r.Use(middleware.New(slog.Default()))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/sse", sseHandler)
	r.Handle("/metrics", promhttp.Handler())

	addr := fmt.Sprintf("%s:%d", settings.Host, settings.Port)

	return &http.Server{
		Addr:    addr,
		Handler: r,
	}, nil
}
