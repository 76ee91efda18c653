package main

import (
	"context"

	"cafe-storefront/internal/config"
	"cafe-storefront/internal/db"
	"cafe-storefront/internal/logger"
	"cafe-storefront/internal/migrate"

	"go.uber.org/zap"
)

func main() {
	cfg := config.FromEnv()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}

	log.Info("migrations applied")
}
