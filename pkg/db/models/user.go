package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tlemoine/gamehaul-backend/pkg/enums"
)

// User represents the canonical identity entity. Users are never hard-deleted.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	Name          string         `gorm:"column:name;not null"`
	Role          enums.UserRole `gorm:"column:role;type:user_role;not null;default:'member'"`
	EmailVerified bool           `gorm:"column:email_verified;not null;default:false"`
	Image         *string        `gorm:"column:image"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
	Wishes        []Wish         `gorm:"foreignKey:UserID"`
	Notifications []Notification `gorm:"foreignKey:UserID"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
