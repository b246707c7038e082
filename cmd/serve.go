package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-catalog/internal/wire"
	"movie-catalog/pkg/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP session API",
	Long: `Start the HTTP session API used by a browser front end.

Each editor or viewer screen opens a session; dialogs raised by a session
are answered through POST /api/sessions/{sid}/dialog.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := client.Ping(ctx); err != nil {
			logger.Warn("Movie API unreachable, starting anyway",
				zap.String("api", config.API.BaseURL),
				zap.Error(err),
			)
		}

		app := wire.Wiring(repo, config, logger)
		return APIServer(ctx, app, config, logger)
	},
}

// APIServer serves app until ctx ends, alongside the session and rate limiter sweepers.
func APIServer(ctx context.Context, app *wire.App, config *utils.Config, logger *zap.Logger) error {
	addr := fmt.Sprintf(":%s", config.App.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("addr", "http://localhost"+addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		return app.Store.Run(ctx, config.Session.SweepInterval, config.Session.IdleTimeout)
	})

	g.Go(func() error {
		return app.Limiter.Run(ctx)
	})

	err := g.Wait()
	logger.Info("Server stopped", zap.Error(err))
	return err
}
