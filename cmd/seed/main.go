package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/user-directory/engine/internal/repository"
	"github.com/user-directory/engine/internal/seed"
	"github.com/user-directory/engine/pkg/config"
	"github.com/user-directory/engine/pkg/database"
	"github.com/user-directory/engine/pkg/logger"
)

func main() {
	reset := flag.Bool("reset", false, "delete existing users before importing")
	source := flag.String("source", "", "base URL of the user source (defaults to SEED_SOURCE_URL)")
	flag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, database.PoolOptionsFrom(cfg))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)

	baseURL := cfg.SeedSourceURL
	if *source != "" {
		baseURL = *source
	}

	im := seed.NewImporter(seed.NewSource(baseURL), repository.NewUserWriter(db))
	rep, err := im.Run(ctx, *reset)
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("seed completed",
		zap.Int("fetched", rep.Fetched),
		zap.Int("inserted", rep.Inserted),
		zap.Int("failed", rep.Failed),
	)
}
