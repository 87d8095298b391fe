// Command dashboard serves the prediction file written by cmd/predict.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/utakatalp/match-predictor/internal/config"
	"github.com/utakatalp/match-predictor/internal/dashboard"
	"github.com/utakatalp/match-predictor/internal/logging"
	"github.com/utakatalp/match-predictor/internal/predictions"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	records, err := predictions.ReadFile(cfg.Output.PredictionsPath)
	if err != nil {
		logger.Fatal("Failed to load predictions", zap.Error(err))
	}
	index := predictions.NewIndex(records)
	logger.Info("Loaded predictions",
		zap.String("path", cfg.Output.PredictionsPath),
		zap.Int("records", len(records)),
		zap.Int("leagues", len(index.Leagues())))

	srv := &http.Server{
		Addr:              cfg.Dashboard.Addr,
		Handler:           dashboard.NewServer(index, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting dashboard", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
	logger.Info("Dashboard stopped")
}
