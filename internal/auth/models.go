package auth

import (
	"strconv"
	"time"
)

type Session struct {
	SessionID string    `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"uniqueIndex;not null" json:"-"`
	Name      string    `json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"-"`
}

type User struct {
	UserID         string `gorm:"primaryKey" json:"userId"`
	Username       string `gorm:"uniqueIndex;not null" json:"username"`
	HashedPassword string `json:"-"`
	Name           string `json:"name"`
}

func (Session) TableName() string { return "sessions" }
func (User) TableName() string    { return "users" }

// NewUserID generates the opaque, time-based user id. Registration is
// the only writer, so millisecond resolution is collision-safe enough.
func NewUserID() string {
	return "u" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
