// ABOUTME: CLI command for running the HTTP API server.
// ABOUTME: Password-gated JSON API with graceful shutdown.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fitlog/internal/config"
	"fitlog/internal/server"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the HTTP API server.

The API is gated by a single password read from the FITLOG_PASSWORD
environment variable (a .env file in the working directory is loaded
if present). Logging in sets an HttpOnly cookie valid for 7 days.

ROUTES:

  POST   /api/auth                          Log in (issues cookie)
  DELETE /api/auth                          Log out
  GET    /api/compounds                     List compounds
  POST   /api/compounds                     Create compound
  GET    /api/compounds/{id}                Get compound
  PUT    /api/compounds/{id}                Update compound
  DELETE /api/compounds/{id}                Delete compound
  GET    /api/compounds/{id}/doses          Dose ledger
  POST   /api/compounds/{id}/doses          Set dose (overwrites)
  GET    /api/compounds/{id}/series?days=N  Decay series
  GET    /api/entries                       List exercise entries
  POST   /api/entries                       Create entry
  PUT    /api/entries/{id}                  Update entry
  DELETE /api/entries/{id}                  Delete entry

EXAMPLES:

  FITLOG_PASSWORD=secret fitlog serve
  fitlog serve --listen :9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := config.ServerPassword()
		if err != nil {
			return err
		}

		logCfg := zap.NewProductionConfig()
		logCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		log, err := logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer func() { _ = log.Sync() }()

		listen := serveListen
		if listen == "" {
			listen = cfg.GetListen()
		}

		srv := &http.Server{
			Addr:              listen,
			Handler:           server.New(repo, password, log).Handler(),
			ReadHeaderTimeout: 5 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("server listening", zap.String("addr", listen))
			errCh <- srv.ListenAndServe()
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		case sig := <-sigCh:
			log.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "bind address (default from config, :8484)")
	rootCmd.AddCommand(serveCmd)
}
