package main

import (
	"context"
	"log"

	"github.com/psyoonchild719/online-library-dashboard/internal/app"
	"github.com/psyoonchild719/online-library-dashboard/internal/bootstrap"

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

	// Change feed fan-out runs for the lifetime of the process.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Hub.Run(ctx)

	audit := bootstrap.NewZapAuditLogger(logger)
	if err := bootstrap.RunServer(a.Router(), ":"+cfg.Port, logger, audit); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
