package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlemoine/gamehaul-backend/pkg/enums"
)

// Wish captures a member's product request within an order. The order and
// user references are immutable once created.
type Wish struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID        uuid.UUID        `gorm:"column:order_id;type:uuid;not null;index"`
	UserID         uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	ProductName    string           `gorm:"column:product_name;not null"`
	ProductURL     *string          `gorm:"column:product_url"`
	Quantity       int              `gorm:"column:quantity;not null;default:1"`
	EstimatedPrice *decimal.Decimal `gorm:"column:estimated_price;type:numeric(10,2)"`
	ValidatedPrice *decimal.Decimal `gorm:"column:validated_price;type:numeric(10,2)"`
	Status         enums.WishStatus `gorm:"column:status;type:wish_status;not null;default:'submitted'"`
	MemberComment  *string          `gorm:"column:member_comment"`
	AdminComment   *string          `gorm:"column:admin_comment"`
	User           *User            `gorm:"foreignKey:UserID"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
