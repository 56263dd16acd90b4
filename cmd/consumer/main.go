package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/psyoonchild719/online-library-dashboard/internal/app"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	cfg := app.LoadConfig()

	a, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal("app build failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.RunConsumer(ctx); err != nil {
		logger.Fatal("consumer failed", zap.Error(err))
	}
}
