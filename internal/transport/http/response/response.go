package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-gin-shop/internal/domain"
)

// Abort ends the request with a plain text body for code.
func Abort(c *gin.Context, code int) {
	c.String(code, Msg(code))
	c.Abort()
}

// Errors turns service errors into status codes and plain text bodies.
type Errors struct {
	Log            *zap.Logger
	ConflictStatus int
}

// NewErrors answers name collisions with 409, or with 401 when legacy is set
// for clients written against the old API.
func NewErrors(l *zap.Logger, legacy bool) *Errors {
	status := http.StatusConflict
	if legacy {
		status = http.StatusUnauthorized
	}
	return &Errors{Log: l, ConflictStatus: status}
}

func (e *Errors) Status(err error) (int, string) {
	var dup *domain.DuplicateNameError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &dup):
		return e.ConflictStatus, dup.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, MsgInvalidCredentials
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, Msg(http.StatusUnauthorized)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, Msg(http.StatusNotFound)
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, Msg(http.StatusRequestEntityTooLarge)
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, Msg(http.StatusInternalServerError)
}

// Write aborts c with the mapped status. 5xx causes are logged, not returned.
func (e *Errors) Write(c *gin.Context, err error) {
	code, msg := e.Status(err)
	if code >= http.StatusInternalServerError && e.Log != nil {
		e.Log.Error("request failed",
			zap.String("rid", c.GetString("X-Request-ID")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	c.String(code, msg)
	c.Abort()
}

// BadRequest answers a bind failure with the decoder's message.
func (e *Errors) BadRequest(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		Abort(c, http.StatusRequestEntityTooLarge)
		return
	}
	c.String(http.StatusBadRequest, err.Error())
	c.Abort()
}
