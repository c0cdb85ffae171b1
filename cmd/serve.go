package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/artgrid/internal/artic"
	"github.com/lehigh-university-libraries/artgrid/internal/handlers"
	"github.com/lehigh-university-libraries/artgrid/internal/snapshot"
	"github.com/lehigh-university-libraries/artgrid/internal/view"
)

func newServeCmd(rt *runtime) *cobra.Command {
	var port string
	var snapshotPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start web server for the artworks table",
		Long: `Starts the artgrid web interface on the specified port.

Pages live at / and /page/{n}. Each browser session keeps its own page size
and row selection; the page number always comes from the URL.`,
		Example: `  # Start server on default port 8888
  artgrid serve

  # Start server on custom port
  artgrid serve --port 3000

  # Serve an offline snapshot instead of the live API
  artgrid serve --snapshot artworks.parquet`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := rt.cfg
			logger := rt.logger
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("snapshot") {
				cfg.Snapshot = snapshotPath
			}

			var fetcher view.Fetcher
			if cfg.Snapshot != "" {
				src, err := snapshot.Open(cfg.Snapshot)
				if err != nil {
					return fmt.Errorf("failed to open snapshot: %w", err)
				}
				logger.Info("Serving artworks from snapshot", "path", cfg.Snapshot, "rows", src.Len())
				fetcher = src
			} else {
				client := artic.NewClient(cfg.APIURL, cfg.FetchTimeout)
				client.UserAgent = cfg.UserAgent
				logger.Info("Serving artworks from API", "url", client.BaseURL)
				fetcher = client
			}

			ctx, cancelFetches := context.WithCancel(cmd.Context())
			defer cancelFetches()

			handler := handlers.New(handlers.Options{
				Ctx:        ctx,
				Fetcher:    fetcher,
				PageSize:   cfg.PageSize,
				RenderWait: cfg.RenderWait,
				Logger:     logger,
			})

			addr := ":" + cfg.Port
			server := &http.Server{
				Addr:              addr,
				Handler:           handlers.NewRouter(handler, cfg.CORSOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			go expireSessions(ctx, handler, cfg.SessionTTL)

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				logger.Info("artgrid interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				logger.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Error("Server shutdown failed", "err", err)
					return err
				}
				logger.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8888", "Port to listen on")
	cmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Serve rows from a .parquet or .jsonl snapshot instead of the API")

	return cmd
}

func expireSessions(ctx context.Context, h *handlers.Handler, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	ticker := time.NewTicker(min(ttl, time.Hour))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.Sessions().Expire(ttl); n > 0 {
				slog.Debug("Expired idle sessions", "count", n)
			}
		}
	}
}
