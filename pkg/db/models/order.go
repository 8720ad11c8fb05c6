package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlemoine/gamehaul-backend/pkg/enums"
)

// Order represents a group purchase batch owned by the admins.
type Order struct {
	ID                 uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Type               enums.OrderType   `gorm:"column:type;type:order_type;not null"`
	Status             enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'planning'"`
	Title              string            `gorm:"column:title;not null"`
	Description        *string           `gorm:"column:description"`
	TargetDate         *time.Time        `gorm:"column:target_date"`
	OrderPlacedAt      *time.Time        `gorm:"column:order_placed_at"`
	DeliveryExpectedAt *time.Time        `gorm:"column:delivery_expected_at"`
	DeliveredAt        *time.Time        `gorm:"column:delivered_at"`
	CustomsFees        *decimal.Decimal  `gorm:"column:customs_fees;type:numeric(10,2)"`
	ShippingCost       *decimal.Decimal  `gorm:"column:shipping_cost;type:numeric(10,2)"`
	Wishes             []Wish            `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Items              []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Notifications      []Notification    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
