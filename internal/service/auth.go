package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-gin-shop/internal/domain"
	"go-gin-shop/internal/session"
	"go-gin-shop/pkg/utils"
)

const tokenBytes = 32

type AuthConfig struct {
	MaxAge  time.Duration
	Rolling bool
}

type AuthService struct {
	users    domain.UserRepository
	sessions session.Store
	cfg      AuthConfig
	now      func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users domain.UserRepository, sessions session.Store, cfg AuthConfig) *AuthService {
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 48 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, cfg: cfg, now: time.Now}
}

func (s *AuthService) MaxAge() time.Duration { return s.cfg.MaxAge }

// Login checks the credentials and persists a new session. Unknown names and
// wrong passwords both return ErrInvalidCredentials after a bcrypt compare.
func (s *AuthService) Login(ctx context.Context, name, password string) (domain.Session, *domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return domain.Session{}, nil, domain.ErrInvalidCredentials
	}
	u, err := s.users.FindByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		utils.CheckPassword(password, s.dummy())
		return domain.Session{}, nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Session{}, nil, err
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return domain.Session{}, nil, domain.ErrInvalidCredentials
	}

	token, err := utils.NewToken(tokenBytes)
	if err != nil {
		return domain.Session{}, nil, err
	}
	now := s.now()
	sess := domain.Session{
		Token:     token,
		UserID:    u.ID,
		UserName:  u.Name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.MaxAge),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return domain.Session{}, nil, err
	}
	return sess, u, nil
}

// RequireSession resolves a token to a live session. Expired sessions are
// removed; with rolling expiry a live one is extended.
func (s *AuthService) RequireSession(ctx context.Context, token string) (domain.Session, error) {
	if token == "" {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	sess, err := s.sessions.Get(ctx, token)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Session{}, err
	}

	now := s.now()
	if sess.Expired(now) {
		if err := s.sessions.Delete(ctx, token); err != nil {
			return domain.Session{}, err
		}
		return domain.Session{}, domain.ErrUnauthenticated
	}
	if s.cfg.Rolling {
		sess.ExpiresAt = now.Add(s.cfg.MaxAge)
		if err := s.sessions.Save(ctx, sess); err != nil {
			return domain.Session{}, err
		}
	}
	return sess, nil
}

// SeedUser creates the user unless the name is already taken.
func (s *AuthService) SeedUser(ctx context.Context, name, password string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return false, domain.InvalidInput("seed user needs a name and a password")
	}
	if _, err := s.users.FindByName(ctx, name); err == nil {
		return false, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return false, err
	}

	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return false, domain.InvalidInput(fmt.Sprintf("password must be at most %d bytes", utils.MaxPasswordBytes))
	}
	if err != nil {
		return false, err
	}
	u := domain.User{Name: name, PasswordHash: hash, CreatedAt: s.now()}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = utils.HashPassword("not-a-real-password")
	})
	return s.dummyHash
}
