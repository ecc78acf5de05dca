package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"jobpost-backend/internal/bootstrap"
	"jobpost-backend/internal/shared/config"
	"jobpost-backend/internal/shared/server"
	"jobpost-backend/internal/shared/telemetry"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("api: %v", err)
	}
}

func run() error {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := telemetry.Init(cfg.Env); err != nil {
		return errors.Wrap(err, "init logger")
	}
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.InitTracing(ctx, telemetry.TracingConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
	})
	if err != nil {
		return errors.Wrap(err, "init tracing")
	}

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		return errors.Wrap(err, "bootstrap")
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		telemetry.Info("api.listening", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		telemetry.Info("api.shutting_down", nil)
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return errors.Wrap(err, "shutdown server")
		}
		return shutdownTracing(sctx)
	})
	return g.Wait()
}
