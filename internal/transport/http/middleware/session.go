package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"go-gin-shop/internal/core/auth"
	"go-gin-shop/internal/domain"
	resp "go-gin-shop/internal/transport/http/response"
)

const (
	KeySession  = "session"
	KeyUserID   = "userId"
	KeyUserName = "userName"
)

// Cookies reads and writes the signed session cookie.
type Cookies struct {
	Name   string
	Secure bool
	Signer *auth.CookieSigner
}

func (k *Cookies) Set(c *gin.Context, s domain.Session, maxAge time.Duration) error {
	v, err := k.Signer.Sign(s.Token, s.ExpiresAt)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(k.Name, v, int(maxAge/time.Second), "/", "", k.Secure, true)
	return nil
}

// Token returns the session token from the cookie, or "" when it is missing
// or fails verification.
func (k *Cookies) Token(c *gin.Context) string {
	v, err := c.Cookie(k.Name)
	if err != nil || v == "" {
		return ""
	}
	sid, err := k.Signer.Parse(v)
	if err != nil {
		return ""
	}
	return sid
}

type SessionResolver interface {
	RequireSession(ctx context.Context, token string) (domain.Session, error)
	MaxAge() time.Duration
}

// RequireSession rejects the request with 401 unless the cookie names a live
// session. With rolling expiry the cookie is re-issued.
func RequireSession(resolver SessionResolver, cookies *Cookies, errs *resp.Errors, rolling bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := resolver.RequireSession(c.Request.Context(), cookies.Token(c))
		if err != nil {
			if errors.Is(err, domain.ErrUnauthenticated) {
				sessionRejects.Inc()
			}
			errs.Write(c, err)
			return
		}
		if rolling {
			if err := cookies.Set(c, sess, resolver.MaxAge()); err != nil {
				errs.Write(c, err)
				return
			}
		}
		c.Set(KeySession, sess)
		c.Set(KeyUserID, sess.UserID)
		c.Set(KeyUserName, sess.UserName)
		c.Next()
	}
}
