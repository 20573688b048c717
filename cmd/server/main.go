package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"asso-portal/config"
	"asso-portal/internal/api/handler"
	"asso-portal/internal/api/router"
	"asso-portal/internal/repository"
	"asso-portal/internal/service"
	"asso-portal/internal/sumup"
	"asso-portal/pkg/database"
	"asso-portal/pkg/jwt"
	applogger "asso-portal/pkg/logger"
	"asso-portal/pkg/redis"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize logging
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Connect to the database and apply migrations
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("getting underlying sql.DB failed", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("database migration failed", zap.Error(err))
	}

	// 4. Connect to Redis (optional: the server degrades gracefully when it
	// is down, losing the token blacklist and rate limiting)
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis connection failed, token blacklist disabled", zap.Error(err))
		rdb = nil
	}

	// 5. Payment provider client (optional: endpoints report it as
	// unconfigured when credentials are missing)
	sumupClient := sumup.NewClient(cfg.SumUp.APIKey, cfg.SumUp.MerchantCode, cfg.SumUp.BaseURL)
	if !sumupClient.IsConfigured() {
		logger.Warn("payment provider credentials missing, statistics endpoints disabled")
	}

	// 6. Dependency wiring: Repository → Service → Handler
	jwtMgr := jwt.NewManager(&cfg.Auth)
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, sumupClient, logger)
	h := handler.NewHandler(svc)

	// 7. Router
	engine := router.Setup(cfg, h, svc, repo, jwtMgr, rdb, logger)

	// 8. HTTP server with graceful shutdown
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	// 9. Wait for a shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	if closeDB, err := db.DB(); err == nil {
		closeDB.Close()
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("stopped")
}
