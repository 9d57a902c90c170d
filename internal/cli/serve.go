package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryanwahyu/openai-status/internal/infra/httpserver"
	"github.com/bryanwahyu/openai-status/internal/infra/scheduler"
	"github.com/bryanwahyu/openai-status/internal/middleware"
)

func newServeCmd(opts *options) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP trigger and run the timer trigger",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.app()
			if err != nil {
				return err
			}
			if port != 0 {
				a.cfg.Server.Port = port
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, a)
		},
	}
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (default from config)")
	return cmd
}

// serve blocks until ctx is done, then shuts the server down.
func serve(ctx context.Context, a *app) error {
	handler := httpserver.NewRouter(a.prober, httpserver.Options{
		Families:       a.cfg.Probe.ModelFamilies,
		Regions:        a.cfg.Probe.Regions,
		HealthCheckers: a.checkers,
		Log:            a.log.With().Str("component", "http").Logger(),
	})

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	srv := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// a run probes every deployment before answering
		WriteTimeout: 30 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 2)

	// run server
	go func() {
		a.log.Info().Str("addr", addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("server error: %w", err)
		}
	}()

	if a.cfg.Schedule.Enabled {
		ct := scheduler.NewCrontab(a.cfg.Schedule.Cron, a.cfg.Schedule.RunOnStartup, func(ctx context.Context) error {
			_, err := a.prober.RunScheduled(ctx, a.cfg.Probe.ModelFamilies, a.cfg.Probe.Regions)
			return err
		}, middleware.Recorder{}, a.log.With().Str("component", "scheduler").Logger())
		go func() {
			if err := ct.Run(ctx); err != nil {
				errc <- err
			}
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errc:
	}

	// graceful shutdown
	a.log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.log.Error().Err(err).Msg("shutdown error")
	}
	return runErr
}
