package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"walletd/internal/events"
	"walletd/internal/httpapi"
	"walletd/internal/logging"
	"walletd/internal/networks"
	"walletd/internal/wallet"
)

func newServeCmd(opts *Options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  walletd serve --addr :8080\n  walletd serve -c walletd.yaml --debug",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}

			log := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Console: opts.Console})
			reg, err := networks.NewRegistry(cfg.DefaultNetwork, cfg.Networks...)
			if err != nil {
				return err
			}
			bus := events.New(cfg.Debug,
				events.WithLogger(log.With().Str("component", "events").Logger()),
				events.WithMetrics(events.NewMetrics(prometheus.DefaultRegisterer)),
			)
			sess, err := wallet.NewSession(reg, bus, log.With().Str("component", "session").Logger())
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			httpapi.SetLogger(log)
			httpapi.SetAccessLogLevel(cfg.LogLevel)
			httpapi.SetBaseContext(ctx)
			httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
			httpapi.SetEmitRate(cfg.EmitRatePerSec, cfg.EmitBurst)
			httpapi.SetStreamBuffer(cfg.StreamBuffer)
			httpapi.SetCORSOptions(cfg.CORS.Enabled, cfg.CORS.AllowedOrigins, cfg.CORS.AllowedMethods, cfg.CORS.AllowedHeaders)

			srv := &http.Server{
				Addr:              cfg.Addr,
				Handler:           httpapi.NewMux(httpapi.Service{Networks: reg, Bus: bus, Session: sess}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Addr).Str("default_network", reg.DefaultID()).Bool("debug", cfg.Debug).Msg("walletd listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("graceful shutdown error")
			}
			bus.RemoveAllListeners()
			log.Info().Msg("walletd stopped")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "HTTP listen address, e.g. :8080")
	return cmd
}
