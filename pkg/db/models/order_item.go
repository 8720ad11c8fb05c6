package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is a priced line item actually purchased, derived from validated
// wishes. TotalPrice = UnitPrice*Quantity + AllocatedCustomsFee + AllocatedShipping.
type OrderItem struct {
	ID                  uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID             uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	ProductName         string          `gorm:"column:product_name;not null"`
	ProductURL          *string         `gorm:"column:product_url"`
	Quantity            int             `gorm:"column:quantity;not null;default:1"`
	UnitPrice           decimal.Decimal `gorm:"column:unit_price;type:numeric(10,2);not null"`
	AllocatedCustomsFee decimal.Decimal `gorm:"column:allocated_customs_fee;type:numeric(10,2);not null;default:0"`
	AllocatedShipping   decimal.Decimal `gorm:"column:allocated_shipping;type:numeric(10,2);not null;default:0"`
	TotalPrice          decimal.Decimal `gorm:"column:total_price;type:numeric(10,2);not null;default:0"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
