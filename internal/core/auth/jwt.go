package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidCookie = errors.New("invalid session cookie")

// Claims carries the opaque session token; the session itself lives server side.
type Claims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieSigner wraps session tokens in HS256 tokens so a forged or edited
// cookie is rejected before any store lookup.
type CookieSigner struct {
	Secret []byte
	Issuer string
	now    func() time.Time
}

func NewCookieSigner(secret, issuer string) *CookieSigner {
	return &CookieSigner{Secret: []byte(secret), Issuer: issuer, now: time.Now}
}

func (c *CookieSigner) Sign(sid string, expires time.Time) (string, error) {
	claims := Claims{
		SID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.Issuer,
			IssuedAt:  jwt.NewNumericDate(c.now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.Secret)
}

// Parse returns the session token inside a signed cookie value.
func (c *CookieSigner) Parse(value string) (string, error) {
	t, err := jwt.ParseWithClaims(value, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected alg")
		}
		return c.Secret, nil
	}, jwt.WithIssuer(c.Issuer), jwt.WithLeeway(60*time.Second), jwt.WithTimeFunc(c.now))

	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidCookie, err)
	}
	if cl, ok := t.Claims.(*Claims); ok && t.Valid && cl.SID != "" {
		return cl.SID, nil
	}
	return "", ErrInvalidCookie
}
