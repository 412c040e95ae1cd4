package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/backend"
	"fintrack/internal/cli"
	apphttp "fintrack/internal/http"
	"fintrack/internal/log"
	"fintrack/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), log.ComponentApp)
	cfg := cli.LoadAndValidateConfig(logger)

	ctx, cancel := cli.ShutdownContext(logger)
	defer cancel()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	store, closeStore, err := factory.CreateStore(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage", log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			logger.Warn("Failed closing storage", log.FieldError, err)
		}
	}()

	notifier, closeNotifier := factory.CreateNotifier(ctx, backendCfg)
	defer func() {
		if err := closeNotifier(); err != nil {
			logger.Warn("Failed closing notifier", log.FieldError, err)
		}
	}()

	dm := services.NewDataManager(store, notifier, services.WithLogger(logger))
	dm.LoadAll(ctx)

	srv := apphttp.NewServer(":"+cfg.Port, dm, apphttp.Options{
		Logger:           logger,
		AnalysisCacheTTL: cfg.AnalysisCacheTTL,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting fintrack server", "port", cfg.Port, log.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
