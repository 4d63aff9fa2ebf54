package entities

import (
	"time"

	"github.com/personachat/server/internal/domain/user"
)

// User represents the database schema for identity-mapped users.
type User struct {
	ID         uint      `gorm:"primaryKey"`
	ExternalID string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	Email      string    `gorm:"type:varchar(256);not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	Conversations []Conversation `gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for User.
func (User) TableName() string {
	return "users"
}

// EtoD converts the database entity to the domain model.
func (u *User) EtoD() *user.User {
	return &user.User{
		ID:         u.ID,
		ExternalID: u.ExternalID,
		Email:      u.Email,
		CreatedAt:  u.CreatedAt,
	}
}
