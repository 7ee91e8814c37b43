package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/outlet/internal/config"
	outlethttp "github.com/aretw0/outlet/pkg/adapters/http"
	"github.com/aretw0/outlet/pkg/adapters/mcp"
)

const shutdownTimeout = 5 * time.Second

// Handler builds the JSON API handler for the stack.
func (st *Stack) Handler(cfg config.Config, logger *slog.Logger) http.Handler {
	opts := []outlethttp.Option{
		outlethttp.WithLogger(logger),
		outlethttp.WithStreams(st.Streams),
	}
	if cfg.HTTP.Metrics {
		opts = append(opts, outlethttp.WithMetrics(st.Registry))
	}
	return outlethttp.NewHandler(st.Sessions, opts...)
}

// ServeHTTP runs the JSON API on cfg.HTTP.Addr until ctx is cancelled, then
// drains open requests.
func ServeHTTP(ctx context.Context, st *Stack, cfg config.Config, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           st.Handler(cfg, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Starting outlet HTTP server", "addr", srv.Addr, "metrics", cfg.HTTP.Metrics)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down HTTP server", "cause", context.Cause(ctx))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
		return srv.Close()
	}
	logger.Info("HTTP server stopped gracefully")
	return nil
}

// ServeMCP runs the MCP server over the configured transport.
func ServeMCP(ctx context.Context, st *Stack, cfg config.Config, logger *slog.Logger) error {
	srv := mcp.NewServer(st.Sessions, mcp.WithLogger(logger))
	switch cfg.MCP.Transport {
	case "stdio":
		logger.Info("Starting outlet MCP server (stdio)")
		return srv.ServeStdio()
	case "sse":
		logger.Info("Starting outlet MCP server (SSE)", "port", cfg.MCP.Port)
		if err := srv.ServeSSE(ctx, cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return fmt.Errorf("unknown transport %q, supported: stdio, sse", cfg.MCP.Transport)
	}
}
