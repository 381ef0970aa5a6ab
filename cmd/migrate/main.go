package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"github.com/user-directory/engine/internal/migrations"
	"github.com/user-directory/engine/pkg/config"
	"github.com/user-directory/engine/pkg/database"
	"github.com/user-directory/engine/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "roll back the latest migration")
	flag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, database.PoolOptionsFrom(cfg))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("failed to get sql handle", zap.Error(err))
	}

	if *down {
		if err := migrations.Down(ctx, sqlDB); err != nil {
			log.Fatal("migration rollback failed", zap.Error(err))
		}
		log.Info("migration rolled back")
		return
	}
	if err := migrations.Up(ctx, sqlDB); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migrations completed")
}
