package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"go-gin-shop/internal/domain"
)

const redisKeyPrefix = "sess:"

// RedisStore keeps each session as a JSON string whose redis TTL ends at the
// session's expiry.
type RedisStore struct {
	rdb *redis.Client
	now func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, now: time.Now}
}

func NewRedisClient(addr, pass string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})
}

func (s *RedisStore) Save(ctx context.Context, sess domain.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, sess.Token)
	}
	b, err := json.Marshal(sess)
	if err != nil {
		return domain.StoreError("encode session", err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+sess.Token, string(b), ttl).Err(); err != nil {
		return domain.StoreError("save session", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (domain.Session, error) {
	b, err := s.rdb.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, domain.StoreError("get session", err)
	}
	var sess domain.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return domain.Session{}, domain.StoreError("decode session", err)
	}
	return sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return domain.StoreError("delete session", err)
	}
	return nil
}
