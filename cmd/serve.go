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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/grindboard/practice-service/internal/events"
	"github.com/grindboard/practice-service/internal/handlers"
	"github.com/grindboard/practice-service/internal/utils"
)

const shutdownTimeout = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := newApplication(ctx, os.Stdout)
		if err != nil {
			return err
		}
		logger := utils.NewSlogLogger(app.logger)

		// In-process events are only observable through the log
		if wp, ok := app.publisher.(*events.WatermillPublisher); ok {
			if err := events.LogEvents(ctx, wp, app.logger, events.TopicQuestionDeleted, events.TopicAttemptLogged); err != nil {
				logger.Warn("Event logging disabled", "error", err)
			}
		}

		if app.cfg.IsProduction() {
			gin.SetMode(gin.ReleaseMode)
		}

		router := gin.New()
		handlers.SetupMiddleware(router, logger)
		handlers.NewHandlerManager(app.services, logger).SetupRoutes(router)

		server := &http.Server{
			Addr:              fmt.Sprintf(":%s", app.cfg.Server.Port),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			logger.Info("Starting server", "port", app.cfg.Server.Port, "environment", app.cfg.Server.Environment)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case <-ctx.Done():
			logger.Info("Shutting down server...")
		case err := <-errCh:
			if err != nil {
				_ = app.Close(context.Background())
				return fmt.Errorf("server failed: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
		if err := app.Close(shutdownCtx); err != nil {
			logger.Error("Failed to release resources", "error", err)
		}

		logger.Info("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
