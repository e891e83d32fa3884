// Package session persists login sessions keyed by their opaque token.
package session

import (
	"context"

	"go-gin-shop/internal/domain"
)

// Store saves, loads and drops sessions. Get returns domain.ErrNotFound for
// unknown tokens. Stores do not judge expiry; the auth service does.
type Store interface {
	Save(ctx context.Context, s domain.Session) error
	Get(ctx context.Context, token string) (domain.Session, error)
	Delete(ctx context.Context, token string) error
}
