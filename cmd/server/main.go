package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/reachoutthueme/SessionFoundry-sub001/config"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/api/handler"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/api/router"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/repository"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/service"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/authcache"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/database"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/jwt"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/logger"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/ratelimit"
	"github.com/reachoutthueme/SessionFoundry-sub001/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync() //nolint:errcheck

	// 3. Database
	db, err := database.NewDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}

	// 4. Migrations
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("unwrap sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, log); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	// 5. Redis (optional: without it, logout cannot revoke tokens early)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, token blacklist disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close() //nolint:errcheck
	}

	// 6. Tokens, auth cache, rate limiter
	jwtMgr := jwt.NewManager(&cfg.Auth)
	cache := authcache.New(cfg.Auth.CacheTTL, nil)
	limiter := ratelimit.New(nil)

	// 7. Layers
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, cache, log)
	h := handler.NewHandler(svc, log)
	engine := router.Setup(cfg, h, jwtMgr, cache, limiter, rdb, log)

	// 8. HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server stopped")
}
