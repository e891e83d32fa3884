package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"go-gin-shop/internal/domain"
)

// Catalog is the layout of a seed file.
type Catalog struct {
	Categories []domain.Category `json:"categories"`
	Products   []domain.Product  `json:"products"`
}

func LoadCatalog(path string) (Catalog, error) {
	var c Catalog
	b, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read catalog: %w", err)
	}
	if err := json.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return c, nil
}

// Seed creates the configured user and loads the catalog file. Existing
// names are left alone, so running it twice is harmless.
func (a *App) Seed(ctx context.Context) error {
	s := a.cfg.Seed
	if s.Username != "" && s.Password != "" {
		created, err := a.Auth.SeedUser(ctx, s.Username, s.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		a.log.Info("seed user", zap.String("name", s.Username), zap.Bool("created", created))
	} else {
		a.log.Warn("seed user skipped: username or password not set")
	}

	if s.CatalogFile == "" {
		return nil
	}
	cat, err := LoadCatalog(s.CatalogFile)
	if err != nil {
		return err
	}
	nc, err := a.Categories.Seed(ctx, cat.Categories)
	if err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}
	np, err := a.Products.Seed(ctx, cat.Products)
	if err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	a.log.Info("seed catalog",
		zap.String("file", s.CatalogFile),
		zap.Int("categories", nc),
		zap.Int("products", np),
	)
	return nil
}
