// Package app assembles stores, services and the HTTP engine from config.
package app

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"go-gin-shop/internal/core/auth"
	"go-gin-shop/internal/core/config"
	"go-gin-shop/internal/core/logger"
	"go-gin-shop/internal/core/server"
	"go-gin-shop/internal/service"
	mdw "go-gin-shop/internal/transport/http/middleware"
	resp "go-gin-shop/internal/transport/http/response"
	"go-gin-shop/internal/transport/http/router"
)

const purgeEvery = 10 * time.Minute

type App struct {
	cfg    *config.Config
	log    *zap.Logger
	stores *Stores

	Auth       *service.AuthService
	Categories *service.CategoryService
	Products   *service.ProductService
}

func New(ctx context.Context, cfg *config.Config, l *zap.Logger) (*App, error) {
	stores, err := OpenStores(ctx, cfg, l)
	if err != nil {
		return nil, err
	}
	return newWithStores(cfg, l, stores), nil
}

func newWithStores(cfg *config.Config, l *zap.Logger, stores *Stores) *App {
	return &App{
		cfg:    cfg,
		log:    l,
		stores: stores,
		Auth: service.NewAuthService(stores.Users, stores.Sessions, service.AuthConfig{
			MaxAge:  cfg.Session.MaxAge(),
			Rolling: cfg.Session.Rolling,
		}),
		Categories: service.NewCategoryService(stores.Categories),
		Products:   service.NewProductService(stores.Products),
	}
}

func (a *App) Engine() *gin.Engine {
	mode := gin.DebugMode
	if a.cfg.IsProduction() {
		mode = gin.ReleaseMode
	}
	h := a.cfg.HTTP
	return router.NewAPIEngine(router.Deps{
		Log:        a.log,
		Mode:       mode,
		Auth:       a.Auth,
		Categories: a.Categories,
		Products:   a.Products,
		Cookies: &mdw.Cookies{
			Name:   a.cfg.Session.CookieName,
			Secure: a.cfg.Session.SecureCookie,
			Signer: auth.NewCookieSigner(a.cfg.Session.Secret, a.cfg.Session.Issuer),
		},
		Errors:  resp.NewErrors(a.log, h.LegacyConflictStatus),
		Rolling: a.cfg.Session.Rolling,
		Limits: router.Limits{
			RateLimit:      h.RateLimit,
			RateBurst:      h.RateBurst,
			RateLimitPerIP: h.RateLimitPerIP,
			MaxConcurrent:  h.MaxConcurrent,
			MaxBodyBytes:   h.MaxBodyBytes,
			RequestTimeout: h.RequestTimeout(),
		},
	})
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	h := a.cfg.HTTP
	gin.DefaultWriter = logger.ToWriter(a.log.Named("gin"), zapcore.DebugLevel)
	srv := server.BuildServer(
		server.Addr(h.Host, h.Port), a.Engine(),
		time.Duration(h.ReadTimeoutSec)*time.Second,
		time.Duration(h.WriteTimeoutSec)*time.Second,
		time.Duration(h.IdleTimeoutSec)*time.Second,
	)
	srv.ErrorLog = logger.ToStdLogger(a.log.Named("http"), zapcore.WarnLevel)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.StartHTTP(srv, a.log) })
	g.Go(func() error {
		<-gctx.Done()
		server.Shutdown(srv, a.log, 10*time.Second)
		return nil
	})
	if a.stores.Purge != nil {
		g.Go(func() error {
			a.purgeLoop(gctx)
			return nil
		})
	}
	return g.Wait()
}

func (a *App) purgeLoop(ctx context.Context) {
	t := time.NewTicker(purgeEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := a.stores.Purge(ctx, now)
			if err != nil {
				a.log.Warn("purge sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				a.log.Info("purged sessions", zap.Int64("count", n))
			}
		}
	}
}

func (a *App) Close(ctx context.Context) error { return a.stores.Close(ctx) }
