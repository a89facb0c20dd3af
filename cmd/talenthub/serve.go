package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/talenthub/talenthub-api/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer res.Close()

	e := api.NewRouter(api.Dependencies{
		Store:          res.store,
		Logger:         a.log,
		JWTSecret:      a.cfg.JWTSecret,
		AuthEnabled:    a.cfg.AuthEnabled,
		AllowedOrigins: a.cfg.AllowedOrigins,
		StaticDir:      a.cfg.StaticDir,
		MaxPageLimit:   a.cfg.MaxPageLimit,
		Readiness:      res.readiness,
	})
	if !a.cfg.AuthEnabled {
		a.log.Warn().Msg("Authentication is disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Info().Str("port", a.cfg.Port).Str("env", a.cfg.Env).Msg("Server started")
		if err := e.Start(":" + a.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.log.Info().Msg("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		a.log.Error().Err(err).Msg("Server stopped with error")
		return err
	}
	a.log.Info().Msg("Server stopped")
	return nil
}
