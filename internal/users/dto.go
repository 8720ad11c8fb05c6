package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
)

// Filters describe the inputs supported by the members list.
type Filters struct {
	Role  *enums.UserRole
	Query string
}

// MemberSummary exposes the aggregated fields returned in the members list.
type MemberSummary struct {
	ID            uuid.UUID      `json:"id"`
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	Role          enums.UserRole `json:"role"`
	EmailVerified bool           `json:"email_verified"`
	LastLoginAt   *time.Time     `json:"last_login_at,omitempty"`
	WishCount     int64          `json:"wish_count"`
	CreatedAt     time.Time      `json:"created_at"`
}

// MemberList wraps the paginated members plus the next page cursor.
type MemberList struct {
	Members    []MemberSummary `json:"members"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

// UserDTO is the public shape of a user returned by auth endpoints.
type UserDTO struct {
	ID            uuid.UUID      `json:"id"`
	Email         string         `json:"email"`
	Name          string         `json:"name"`
	Role          enums.UserRole `json:"role"`
	EmailVerified bool           `json:"email_verified"`
	Image         *string        `json:"image,omitempty"`
	LastLoginAt   *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// FromModel converts a user row into its public DTO.
func FromModel(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	return &UserDTO{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Role:          user.Role,
		EmailVerified: user.EmailVerified,
		Image:         user.Image,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
	}
}
