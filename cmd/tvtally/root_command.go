package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"

	"tvtally/internal/client"
	"tvtally/internal/config"
	"tvtally/internal/metrics"
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "tvtally",
		Short:         "Scrape the top-TV chart and per-episode ratings into flat tables",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTopListCommand(), newRatingsCommand())
	return root
}

// runtime wires the shared pieces every subcommand needs: config, the
// scraping client, error reporting and the optional metrics endpoint.
type runtime struct {
	cfg           *config.Config
	client        client.Client
	metricsServer *http.Server
	sentryEnabled bool
}

func newRuntime() (*runtime, error) {
	logger := config.GetLogger()
	cfg := config.GetConfig()

	rt := &runtime{cfg: cfg}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			logger.Warn().Err(err).Msg("Sentry initialization failed, continuing without error reporting")
		} else {
			rt.sentryEnabled = true
		}
	}

	cl, err := client.NewClient(cfg)
	if err != nil {
		return nil, err
	}
	rt.client = cl

	if cfg.Metrics.Enabled {
		rt.metricsServer = metrics.NewHTTPServer(cfg.Metrics.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("addr", rt.metricsServer.Addr).Msg("Serving metrics")
			if err := rt.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn().Err(err).Msg("Metrics server stopped")
			}
		}()
	}

	return rt, nil
}

// report forwards a scrape failure to Sentry when configured.
func (r *runtime) report(err error) {
	if r.sentryEnabled {
		sentry.CaptureException(err)
	}
}

func (r *runtime) close() {
	if r.metricsServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = r.metricsServer.Shutdown(ctx)
	}
	if err := r.client.Close(); err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Msg("Closing client failed")
	}
	if r.sentryEnabled {
		sentry.Flush(2 * time.Second)
	}
}
