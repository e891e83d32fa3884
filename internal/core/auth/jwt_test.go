package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCookieSignerRoundTrip(t *testing.T) {
	s := NewCookieSigner("keyboard cat", "shop-api")
	v, err := s.Sign("abc123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sid, err := s.Parse(v)
	require.NoError(t, err)
	assert.Equal(t, "abc123", sid)
}

func TestCookieSignerRejects(t *testing.T) {
	s := NewCookieSigner("keyboard cat", "shop-api")
	good, err := s.Sign("abc123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	other, err := NewCookieSigner("another secret", "shop-api").Sign("abc123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	foreign, err := NewCookieSigner("keyboard cat", "someone-else").Sign("abc123", time.Now().Add(time.Hour))
	require.NoError(t, err)

	expired, err := s.Sign("abc123", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	cases := map[string]string{
		"wrong secret": other,
		"wrong issuer": foreign,
		"expired":      expired,
		"tampered":     tampered,
		"garbage":      "not-a-token",
		"empty":        "",
	}
	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Parse(v)
			assert.ErrorIs(t, err, ErrInvalidCookie)
		})
	}
}

func TestCookieSignerClock(t *testing.T) {
	s := NewCookieSigner("keyboard cat", "shop-api")
	base := time.Now()
	s.now = func() time.Time { return base }
	v, err := s.Sign("abc123", base.Add(48*time.Hour))
	require.NoError(t, err)

	s.now = func() time.Time { return base.Add(47 * time.Hour) }
	_, err = s.Parse(v)
	assert.NoError(t, err)

	s.now = func() time.Time { return base.Add(49 * time.Hour) }
	_, err = s.Parse(v)
	assert.ErrorIs(t, err, ErrInvalidCookie)
}
