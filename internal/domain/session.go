package domain

import "time"

type Session struct {
	Token     string    `gorm:"primaryKey;size:64" json:"token"`
	UserID    string    `gorm:"size:36;not null" json:"userId"`
	UserName  string    `gorm:"size:191;not null" json:"userName"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	ExpiresAt time.Time `gorm:"index;not null" json:"expiresAt"`
}

func (Session) TableName() string { return "sessions" }

func (s Session) Expired(now time.Time) bool { return !now.Before(s.ExpiresAt) }
