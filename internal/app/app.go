package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alex-user-go/ean/internal/config"
	"github.com/alex-user-go/ean/internal/ean"
	"github.com/alex-user-go/ean/internal/handler"
	"github.com/alex-user-go/ean/internal/middleware"
	"github.com/alex-user-go/ean/internal/obs"
	"github.com/alex-user-go/ean/internal/search"
)

// Run initializes and runs the application.
func Run() error {
	// Load configuration first; the EAN credentials are required.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	// Initialize metrics
	metrics := obs.NewMetrics(logger)

	// Initialize the EAN client and the search service around it
	client := ean.New(cfg.EANHost, ean.Credentials{
		CID:      cfg.EANCID,
		APIKey:   cfg.EANAPIKey,
		MinorRev: cfg.EANMinorRev,
	}, cfg.EANTimeout)

	svc := search.New(client, metrics, logger)

	// Initialize handler
	h := handler.New(svc, logger)

	// Setup routes with logging middleware
	mux := http.NewServeMux()
	mux.HandleFunc("GET /search", h.SearchHandler)
	mux.HandleFunc("GET /hotels/{id}/rooms", h.RoomsHandler)
	mux.HandleFunc("GET /healthz", obs.HealthHandler(logger))
	mux.HandleFunc("GET /metrics", metrics.MetricsHandler())

	// Wrap with middleware
	wrappedHandler := middleware.Logging(logger)(mux)

	// Configure server
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      wrappedHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 40 * time.Second, // upstream calls may take up to the 30s EAN timeout
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
