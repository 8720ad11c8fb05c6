package enums

import "fmt"

// OrderStatus tracks the lifecycle of a group purchase batch.
type OrderStatus string

const (
	OrderStatusPlanning   OrderStatus = "planning"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusInDelivery OrderStatus = "in_delivery"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPlanning,
	OrderStatusInProgress,
	OrderStatusInDelivery,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// orderStatusSuccessors encodes the forward path of the lifecycle. Cancellation
// is reachable from every non-terminal state.
var orderStatusSuccessors = map[OrderStatus][]OrderStatus{
	OrderStatusPlanning:   {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusInDelivery, OrderStatusCancelled},
	OrderStatusInDelivery: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave this status.
func (o OrderStatus) IsTerminal() bool {
	return o == OrderStatusCompleted || o == OrderStatusCancelled
}

// NextStatuses returns the statuses reachable from the current one.
func (o OrderStatus) NextStatuses() []OrderStatus {
	next, ok := orderStatusSuccessors[o]
	if !ok {
		return nil
	}
	return append([]OrderStatus(nil), next...)
}

// CanTransitionTo reports whether moving to next follows the documented
// lifecycle. Admin writes treat this as advisory: out-of-sequence jumps are
// persisted but logged.
func (o OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, candidate := range orderStatusSuccessors[o] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
