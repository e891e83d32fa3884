package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"go-gin-shop/internal/app"
	"go-gin-shop/internal/core/config"
	"go-gin-shop/internal/core/logger"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate(cfg.Log.Rotate))
	defer cleanup()
	restore := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer restore()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("open stores", zap.Error(err))
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			log.Warn("close stores", zap.Error(err))
		}
	}()

	if cfg.Seed.Enabled {
		if err := a.Seed(ctx); err != nil {
			log.Error("seed failed", zap.Error(err))
		}
	}

	host4human := cfg.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.HTTP.Port)
	log.Info("shop api starting",
		zap.String("env", cfg.App.Env),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+"/api"),
	)

	if err := a.Run(ctx); err != nil {
		log.Error("shop api stopped", zap.Error(err))
		return
	}
	log.Info("shop api stopped gracefully")
}
