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

	"github.com/jaskrrish/Go-QAdd/internal/config"
	"github.com/jaskrrish/Go-QAdd/internal/handlers"
	qaddcore "github.com/jaskrrish/Go-QAdd/internal/qadd"
	"github.com/jaskrrish/Go-QAdd/internal/qadd/crypto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	app := &cli.App{
		Name:  "qadd-api",
		Usage: "HTTP API for the quantum Fourier adder",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "Port to listen on",
				Value:   "8080",
				EnvVars: []string{"PORT"},
			},
			&cli.DurationFlag{
				Name:    "cleanup-interval",
				Usage:   "How often expired jobs are removed",
				Value:   5 * time.Minute,
				EnvVars: []string{"QADD_CLEANUP_INTERVAL"},
			},
		}, config.BackendFlags()...),
		Action: serve,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	logger, err := config.NewLogger(c.String(config.FlagLogLevel))
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := config.NewBackend(ctx, config.BackendConfigFromContext(c))
	if err != nil {
		return err
	}

	fingerprinter, err := crypto.NewFingerprinter(crypto.SHA3_256Method)
	if err != nil {
		return err
	}

	jobManager := qaddcore.NewJobManager(backend, fingerprinter, logger)
	adderHandler := handlers.NewAdderHandler(jobManager, fingerprinter, logger)

	// Create a new HTTP multiplexer
	mux := http.NewServeMux()

	mux.HandleFunc("/", adderHandler.IndexHandler)
	mux.HandleFunc("/health", adderHandler.HealthCheckHandler)
	mux.Handle("/metrics", promhttp.Handler())

	// Register adder routes
	mux.HandleFunc("/api/v1/adder/health", adderHandler.HealthCheckHandler)
	mux.HandleFunc("/api/v1/adder/jobs", adderHandler.CreateJobHandler)
	mux.HandleFunc("/api/v1/adder/jobs/", adderHandler.JobHandler)
	mux.HandleFunc("/api/v1/adder/circuit", adderHandler.CircuitHandler)

	// Remote backends can take minutes per job
	writeTimeout := 15 * time.Second
	if !backend.IsSimulator() {
		writeTimeout = c.Duration(config.FlagQiskitWait) + 30*time.Second
	}

	server := &http.Server{
		Addr:         ":" + c.String("port"),
		Handler:      handlers.LoggingMiddleware(logger, mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupLoop(ctx, jobManager, c.Duration("cleanup-interval"))

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	logger.Info("server starting",
		zap.String("port", c.String("port")),
		zap.String("backend", backend.Name()))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// cleanupLoop periodically removes expired jobs until ctx is done
func cleanupLoop(ctx context.Context, jobManager *qaddcore.JobManager, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			jobManager.CleanupExpiredJobs()
		}
	}
}
