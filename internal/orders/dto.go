package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tlemoine/gamehaul-backend/pkg/db/models"
	"github.com/tlemoine/gamehaul-backend/pkg/enums"
	"github.com/tlemoine/gamehaul-backend/pkg/types"
)

// Filters describe the inputs supported by the orders list.
type Filters struct {
	Status *enums.OrderStatus
	Type   *enums.OrderType
	Query  string
}

// CreateInput carries the fields accepted when an admin opens a new order.
type CreateInput struct {
	Type         enums.OrderType
	Title        string
	Description  *string
	TargetDate   *time.Time
	CustomsFees  *decimal.Decimal
	ShippingCost *decimal.Decimal
}

// UpdateInput carries the optional fields of a partial order update. Unset
// fields leave the column untouched; an explicit null clears the nullable
// ones. Title is not nullable, so it stays a plain pointer.
type UpdateInput struct {
	Title              *string
	Description        types.Optional[string]
	TargetDate         types.Optional[time.Time]
	OrderPlacedAt      types.Optional[time.Time]
	DeliveryExpectedAt types.Optional[time.Time]
	DeliveredAt        types.Optional[time.Time]
	CustomsFees        types.Optional[decimal.Decimal]
	ShippingCost       types.Optional[decimal.Decimal]
}

// ItemInput carries the fields of a purchased line item.
type ItemInput struct {
	ProductName string
	ProductURL  *string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Summary exposes the aggregated fields returned in the orders list.
type Summary struct {
	ID                uuid.UUID         `json:"id"`
	Type              enums.OrderType   `json:"type"`
	Status            enums.OrderStatus `json:"status"`
	Title             string            `json:"title"`
	TargetDate        *time.Time        `json:"target_date,omitempty"`
	CustomsFees       *decimal.Decimal  `json:"customs_fees,omitempty"`
	ShippingCost      *decimal.Decimal  `json:"shipping_cost,omitempty"`
	WishCount         int               `json:"wish_count"`
	ItemCount         int               `json:"item_count"`
	NotificationCount int               `json:"notification_count"`
	CreatedAt         time.Time         `json:"created_at"`
}

// List wraps the paginated orders plus the next page cursor.
type List struct {
	Orders     []Summary `json:"orders"`
	NextCursor string    `json:"next_cursor,omitempty"`
}

// Detail is the full order payload returned to admins, items and wishes
// included.
type Detail struct {
	Order models.Order       `json:"order"`
	Items []models.OrderItem `json:"items"`
	// ItemsTotal sums TotalPrice across items, fees included.
	ItemsTotal decimal.Decimal `json:"items_total"`
}
