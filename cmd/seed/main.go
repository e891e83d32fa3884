// Command seed creates the admin user and loads a catalog file, then exits.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"go-gin-shop/internal/app"
	"go-gin-shop/internal/core/config"
	"go-gin-shop/internal/core/logger"
)

func main() {
	catalog := flag.String("catalog", "", "catalog JSON file (overrides seed.catalog_file)")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if *catalog != "" {
		cfg.Seed.CatalogFile = *catalog
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("open stores", zap.Error(err))
	}

	seedErr := a.Seed(ctx)
	if err := a.Close(context.Background()); err != nil {
		log.Warn("close stores", zap.Error(err))
	}
	if seedErr != nil {
		log.Error("seed failed", zap.Error(seedErr))
		cleanup()
		os.Exit(1)
	}
	log.Info("seed done")
}
