package app

import (
	"database/sql"
	"fmt"

	"github.com/psyoonchild719/online-library-dashboard/internal/rbac"
	"github.com/psyoonchild719/online-library-dashboard/internal/realtime"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/allowlist"
	"github.com/psyoonchild719/online-library-dashboard/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App holds the shared infrastructure every process variant builds on.
type App struct {
	Cfg    Config
	DB     *gorm.DB
	SQLDB  *sql.DB
	Redis  *redis.Client
	Allow  *allowlist.AllowList
	RBAC   *rbac.Service
	Hub    *realtime.Hub
	Logger *zap.Logger
}

func Build(cfg Config, logger *zap.Logger) (*App, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("app: JWT_SECRET is required")
	}

	db, err := connection.ConnectGORMWithRetry(
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode, 5,
	)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return nil, err
	}

	allow, err := allowlist.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("allow list loaded", zap.Int("members", allow.Size()))

	enforcer, err := rbac.NewService(cfg.RBACModelPath, cfg.RBACPolicyPath, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		Cfg:    cfg,
		DB:     db,
		SQLDB:  sqlDB,
		Redis:  rdb,
		Allow:  allow,
		RBAC:   enforcer,
		Hub:    realtime.NewHub(rdb, logger),
		Logger: logger,
	}, nil
}
