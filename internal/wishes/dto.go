package wishes

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
)

// CreateInput carries the fields a member submits with a new wish.
type CreateInput struct {
	OrderID        uuid.UUID
	ProductName    string
	ProductURL     *string
	Quantity       int
	EstimatedPrice *decimal.Decimal
	MemberComment  *string
}

// UpdateInput carries the member-editable fields of a submitted wish. Nil
// pointers leave the column untouched.
type UpdateInput struct {
	ProductName    *string
	ProductURL     *string
	Quantity       *int
	EstimatedPrice *decimal.Decimal
	MemberComment  *string
}

// ReviewInput carries the admin decision on a wish.
type ReviewInput struct {
	Status         enums.WishStatus
	ValidatedPrice *decimal.Decimal
	AdminComment   *string
}

// List wraps the paginated wishes plus the next page cursor.
type List struct {
	Wishes     []models.Wish `json:"wishes"`
	NextCursor string        `json:"next_cursor,omitempty"`
}
