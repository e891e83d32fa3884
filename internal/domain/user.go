package domain

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"_id"`
	Name         string    `gorm:"uniqueIndex;size:191;not null" json:"name"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (User) TableName() string { return "users" }

func (u User) GetID() string     { return u.ID }
func (u *User) SetID(id string)  { u.ID = id }
func (u User) GetName() string   { return u.Name }
func (u *User) SetName(n string) { u.Name = n }

type UserRepository = NamedRepository[User]
