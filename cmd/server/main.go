package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/config"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/api/handler"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/api/router"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/policy"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/service"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/database"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/jwt"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/logger"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	db, err := database.NewDB(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		zapLogger.Fatal("unwrapping sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, zapLogger); err != nil {
		zapLogger.Fatal("running migrations", zap.Error(err))
	}

	// Redis is optional: without it token revocation and rate limiting
	// degrade, nothing else does.
	rdb, err := redis.NewClient(&cfg.Redis, zapLogger)
	if err != nil {
		zapLogger.Warn("redis unavailable, token blacklist and rate limiting disabled", zap.Error(err))
		rdb = nil
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	engine := policy.NewEngine(cfg.Feature.StrictStatusTransitions)

	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, engine, jwtMgr, rdb, zapLogger)
	h := handler.NewHandler(svc, zapLogger)

	r := router.Setup(cfg, h, jwtMgr, rdb, zapLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zapLogger.Info("server listening",
			zap.Int("port", cfg.Server.Port),
			zap.Bool("strict_status_transitions", cfg.Feature.StrictStatusTransitions),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}

	if rdb != nil {
		if err := rdb.Close(); err != nil {
			zapLogger.Error("closing redis", zap.Error(err))
		}
	}
	if err := sqlDB.Close(); err != nil {
		zapLogger.Error("closing database", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
