package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-shop/internal/domain"
	mdw "go-gin-shop/internal/transport/http/middleware"
	resp "go-gin-shop/internal/transport/http/response"
)

type Authenticator interface {
	Login(ctx context.Context, name, password string) (domain.Session, *domain.User, error)
	MaxAge() time.Duration
}

type UserHandler struct {
	Auth    Authenticator
	Cookies *mdw.Cookies
	Errors  *resp.Errors
	Log     *zap.Logger
}

// loginIn binds JSON and form posts alike.
type loginIn struct {
	Name     string `json:"name"     form:"name"`
	Password string `json:"password" form:"password"`
}

type loginOut struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Login checks the credentials, stores a session and sets the session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	var in loginIn
	if err := c.ShouldBind(&in); err != nil {
		h.Errors.BadRequest(c, err)
		return
	}

	sess, u, err := h.Auth.Login(c.Request.Context(), in.Name, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			mdw.ObserveLogin("rejected")
		} else {
			mdw.ObserveLogin("error")
		}
		h.Errors.Write(c, err)
		return
	}
	if err := h.Cookies.Set(c, sess, h.Auth.MaxAge()); err != nil {
		mdw.ObserveLogin("error")
		h.Errors.Write(c, err)
		return
	}
	mdw.ObserveLogin("ok")
	if h.Log != nil {
		h.Log.Info("login", zap.String("user", u.Name), zap.String("uid", u.ID))
	}
	c.JSON(http.StatusOK, loginOut{ID: u.ID, Name: u.Name})
}
