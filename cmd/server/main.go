// Command server runs the reporting demo API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	app "github.com/qalabs/reporting-demo-api/internal/app"
	"github.com/qalabs/reporting-demo-api/internal/app/httpapi"
	"github.com/qalabs/reporting-demo-api/internal/app/metrics"
	"github.com/qalabs/reporting-demo-api/internal/config"
	"github.com/qalabs/reporting-demo-api/internal/middleware"
	"github.com/qalabs/reporting-demo-api/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the optional YAML config file")
	envFile := flag.String("env", ".env", "path to the optional .env file")
	flag.Parse()

	// Missing .env is the normal case outside local development.
	_ = godotenv.Load(*envFile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("server", logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func run(cfg config.Config, log *logger.Logger) error {
	application, err := app.New(app.Stores{}, app.Options{
		OperationLatency: cfg.OperationLatency.Std(),
		ReporterSchedule: cfg.ReporterSchedule,
	}, log)
	if err != nil {
		return fmt.Errorf("build application: %w", err)
	}

	ctx := context.Background()
	if err := application.Start(ctx); err != nil {
		return fmt.Errorf("start application: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Std())
		defer cancel()
		if err := application.Stop(stopCtx); err != nil {
			log.WithError(err).Warn("stop application")
		}
	}()

	handler := httpapi.NewHandler(application)
	handler = metrics.InstrumentHandler(handler)
	handler = middleware.NewTracingMiddleware(log.Named("http")).Handler(handler)
	handler = middleware.NewCORSMiddleware(cfg.CORSOrigins).Handler(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.Port).Info("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout.Std())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
