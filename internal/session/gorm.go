package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-gin-shop/internal/domain"
)

// GormStore keeps one row per session in the sessions table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) Save(ctx context.Context, sess domain.Session) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expires_at"}),
		}).
		Create(&sess).Error
	if err != nil {
		return domain.StoreError("save session", err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, token string) (domain.Session, error) {
	var sess domain.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&sess).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, domain.StoreError("get session", err)
	}
	return sess, nil
}

func (s *GormStore) Delete(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&domain.Session{}).Error; err != nil {
		return domain.StoreError("delete session", err)
	}
	return nil
}

// PurgeExpired drops sessions that expired before now. Relational stores have
// no TTL index, so the api runs this periodically.
func (s *GormStore) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&domain.Session{})
	if res.Error != nil {
		return 0, domain.StoreError("purge sessions", res.Error)
	}
	return res.RowsAffected, nil
}
