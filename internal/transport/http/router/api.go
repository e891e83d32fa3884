package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-gin-shop/internal/core/server"
	"go-gin-shop/internal/domain"
	"go-gin-shop/internal/service"
	"go-gin-shop/internal/transport/http/ez"
	"go-gin-shop/internal/transport/http/handler"
	mdw "go-gin-shop/internal/transport/http/middleware"
	resp "go-gin-shop/internal/transport/http/response"
)

type Limits struct {
	RateLimit      float64
	RateBurst      int
	RateLimitPerIP bool
	MaxConcurrent  int64
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

type Deps struct {
	Log        *zap.Logger
	Mode       string
	Auth       *service.AuthService
	Categories *service.CategoryService
	Products   *service.ProductService
	Cookies    *mdw.Cookies
	Errors     *resp.Errors
	Rolling    bool
	Limits     Limits
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := server.NewRouter(d.Log, server.Options{Name: "shop-api", Mode: d.Mode})
	// route on the escaped path so names containing "/" stay one segment
	r.UseRawPath = true
	r.UnescapePathValues = true

	chain := []gin.HandlerFunc{mdw.RequestID()}
	if d.Limits.RateLimit > 0 {
		if d.Limits.RateLimitPerIP {
			chain = append(chain, mdw.RateLimitPerIP(rate.Limit(d.Limits.RateLimit), d.Limits.RateBurst))
		} else {
			chain = append(chain, mdw.RateLimit(rate.Limit(d.Limits.RateLimit), d.Limits.RateBurst))
		}
	}
	if d.Limits.MaxConcurrent > 0 {
		chain = append(chain, mdw.ConcurrencyLimit(d.Limits.MaxConcurrent))
	}
	if d.Limits.MaxBodyBytes > 0 {
		chain = append(chain, mdw.MaxBodyBytes(d.Limits.MaxBodyBytes))
	}
	chain = append(chain,
		mdw.Timeout(d.Limits.RequestTimeout),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
	)
	r.Use(chain...)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", mdw.MetricsHandler())

	api := r.Group("/api")
	authed := api.Group("", mdw.RequireSession(d.Auth, d.Cookies, d.Errors, d.Rolling))

	users := &handler.UserHandler{Auth: d.Auth, Cookies: d.Cookies, Errors: d.Errors, Log: d.Log}
	api.POST("/users/login", users.Login)

	ez.Crud[domain.Category](ez.CrudConfig[domain.Category]{
		Public:  api,
		Auth:    authed,
		Path:    "/categories",
		Service: d.Categories,
		Errors:  d.Errors,
		// the old clients expect the bare name back
		Created: func(c *gin.Context, m *domain.Category) { c.String(http.StatusOK, m.Name) },
	})

	ez.Crud[domain.Product](ez.CrudConfig[domain.Product]{
		Public:    api,
		Auth:      authed,
		Path:      "/products",
		Service:   d.Products,
		Errors:    d.Errors,
		IDAliases: []string{"/product/id/:id"},
	})

	return r
}
