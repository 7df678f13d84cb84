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

	"github.com/yacobolo/cssprefix/internal/prefixer"
	"github.com/yacobolo/cssprefix/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the prefixer over HTTP",
	Long: `Start an HTTP server exposing the prefixer:

  POST /v1/prefix?path=app.scss&minify=1   rewrite the request body
  POST /v1/expand                          expand one declaration
  GET  /v1/table                           effective prefix table
  GET  /healthz`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		quiet := getBoolWithFallback("quiet", "quiet", false)
		log := newLogger(getBoolWithFallback("verbose", "verbose", false), quiet)
		defer log.Sync()

		overrides, err := buildOverrides()
		if err != nil {
			return err
		}
		engine := prefixer.NewEngine(prefixer.Options{
			Overrides: overrides,
			MaxDepth:  getIntWithFallback("max-depth", "prefix.max-depth", 0),
			Logger:    log,
		})

		addr := getStringWithFallback("addr", "serve.addr", ":8080")
		srv := &http.Server{
			Addr:              addr,
			Handler:           server.NewServer(engine, log),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      time.Minute,
			IdleTimeout:       2 * time.Minute,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.ListenAndServe()
		}()
		if !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on %s\n", addr)
		}

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		log.Debug("Shutting down", zap.String("addr", addr))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().Int("max-depth", prefixer.DefaultMaxDepth, "Maximum block nesting to scan")
	serveCmd.Flags().Bool("preconfigured-only", false, "Only accept override prefixes that are in the built-in table")
}
