package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"stock-snapshot/internal/application"
	"stock-snapshot/internal/bootstrap"
	"stock-snapshot/internal/infrastructure/logx"
)

func init() { _ = godotenv.Load() }

func main() {
	os.Exit(run())
}

func run() int {
	log := logx.L()
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline, cleanup, err := bootstrap.InitPipeline(ctx)
	if err != nil {
		log.Error("init pipeline", zap.Error(err))
		return 1
	}
	defer cleanup()

	sum, err := pipeline.Run(ctx)
	switch {
	case errors.Is(err, application.ErrNoData):
		log.Error("no stock data fetched", zap.String("run_id", sum.RunID))
		return 1
	case err != nil:
		log.Error("run failed", zap.String("run_id", sum.RunID), zap.Error(err))
		return 1
	}
	log.Info("done", zap.String("run_id", sum.RunID))
	return 0
}
