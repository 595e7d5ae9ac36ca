package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roydza27/MindEaseLite-sub000/internal"
	"github.com/roydza27/MindEaseLite-sub000/internal/api"
	"github.com/roydza27/MindEaseLite-sub000/internal/auth"
	"github.com/roydza27/MindEaseLite-sub000/internal/config"
	"github.com/roydza27/MindEaseLite-sub000/internal/storage"
)

func main() {
	cfg := config.Load()

	logger, err := internal.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.DBType == "file" {
		if err := os.MkdirAll(filepath.Dir(cfg.FileUsers), 0755); err != nil {
			logger.Fatalf("failed to create data dir: %v", err)
		}
	}

	repos, err := storage.NewRepositories(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init storage: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	app := api.NewApp(logger, repos, tokens)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: api.NewRouter(app),
	}

	go func() {
		logger.Infof("server running on %s (storage=%s)", cfg.ListenAddr, cfg.DBType)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("server shutdown: %v", err)
	}
	if err := repos.Close(); err != nil {
		logger.Errorf("storage close: %v", err)
	}
}
