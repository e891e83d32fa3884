// Package ez mounts the standard create/list/get/delete routes of a catalog
// collection in one call.
package ez

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-shop/internal/domain"
	resp "go-gin-shop/internal/transport/http/response"
)

type Service[T any] interface {
	Create(ctx context.Context, m *T) error
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id string) (*T, error)
	GetByName(ctx context.Context, name string) (*T, error)
	Delete(ctx context.Context, id string) error
}

type CrudConfig[T any] struct {
	Public  *gin.RouterGroup // reads
	Auth    *gin.RouterGroup // create/delete, behind the session middleware
	Path    string
	Service Service[T]
	Errors  *resp.Errors

	// Created writes the create response. Default: the record as JSON.
	Created func(c *gin.Context, m *T)
	// IDAliases are extra GET paths under Path that resolve :id, e.g. "/product/id/:id".
	IDAliases []string
}

// Crud registers
//
//	POST   {Path}             (Auth)
//	GET    {Path}
//	GET    {Path}/:id
//	GET    {Path}/name/:name
//	DELETE {Path}/:id         (Auth)
func Crud[T any, PT domain.EntityPtr[T]](cfg CrudConfig[T]) {
	if cfg.Created == nil {
		cfg.Created = func(c *gin.Context, m *T) { c.JSON(http.StatusOK, m) }
	}
	svc, errs := cfg.Service, cfg.Errors

	cfg.Auth.POST(cfg.Path, func(c *gin.Context) {
		m := new(T)
		if err := c.ShouldBindJSON(m); err != nil {
			errs.BadRequest(c, err)
			return
		}
		// ids are assigned by the store
		PT(m).SetID("")
		if err := svc.Create(c.Request.Context(), m); err != nil {
			errs.Write(c, err)
			return
		}
		cfg.Created(c, m)
	})

	cfg.Public.GET(cfg.Path, func(c *gin.Context) {
		items, err := svc.List(c.Request.Context())
		if err != nil {
			errs.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	getByID := func(c *gin.Context) {
		m, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			errs.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	}
	cfg.Public.GET(cfg.Path+"/:id", getByID)
	for _, alias := range cfg.IDAliases {
		cfg.Public.GET(cfg.Path+alias, getByID)
	}

	cfg.Public.GET(cfg.Path+"/name/:name", func(c *gin.Context) {
		m, err := svc.GetByName(c.Request.Context(), c.Param("name"))
		if err != nil {
			errs.Write(c, err)
			return
		}
		c.JSON(http.StatusOK, m)
	})

	cfg.Auth.DELETE(cfg.Path+"/:id", func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			errs.Write(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
}
