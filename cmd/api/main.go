package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/user-directory/engine/internal/api"
	"github.com/user-directory/engine/internal/api/handlers"
	mw "github.com/user-directory/engine/internal/api/middleware"
	"github.com/user-directory/engine/internal/repository"
	"github.com/user-directory/engine/internal/services"
	"github.com/user-directory/engine/pkg/config"
	"github.com/user-directory/engine/pkg/database"
	"github.com/user-directory/engine/pkg/logger"
)

func main() {
	cfg := config.MustLoad()

	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	log.Info("starting user directory api",
		zap.String("env", cfg.AppEnv),
		zap.String("addr", cfg.HTTPAddr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.OpenPostgres(ctx, cfg.DatabaseURL, database.PoolOptionsFrom(cfg))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Warn("database close error", zap.Error(err))
		}
	}()
	log.Info("database connected", zap.Int("max_open_conns", cfg.DBMaxOpenConns))

	userSvc := services.NewUserService(repository.NewUserRepository(db))

	trusted, err := mw.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatal("invalid TRUSTED_PROXIES", zap.Error(err))
	}
	limiter := mw.NewLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, trusted...)
	go limiter.Run(ctx)

	router := api.NewRouter(api.Dependencies{
		UsersHandler:  handlers.NewUsersHandler(userSvc),
		HealthHandler: handlers.NewHealthHandler(userSvc),
		Limiter:       limiter,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited gracefully")
}
