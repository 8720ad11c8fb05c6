package enums

import "fmt"

// WishStatus tracks a member wish from submission to confirmation.
type WishStatus string

const (
	WishStatusSubmitted WishStatus = "submitted"
	WishStatusValidated WishStatus = "validated"
	WishStatusRejected  WishStatus = "rejected"
	WishStatusConfirmed WishStatus = "confirmed"
	WishStatusCancelled WishStatus = "cancelled"
)

var validWishStatuses = []WishStatus{
	WishStatusSubmitted,
	WishStatusValidated,
	WishStatusRejected,
	WishStatusConfirmed,
	WishStatusCancelled,
}

var wishStatusSuccessors = map[WishStatus][]WishStatus{
	WishStatusSubmitted: {WishStatusValidated, WishStatusRejected, WishStatusCancelled},
	WishStatusValidated: {WishStatusConfirmed, WishStatusRejected, WishStatusCancelled},
	WishStatusRejected:  {},
	WishStatusConfirmed: {},
	WishStatusCancelled: {},
}

// String implements fmt.Stringer.
func (w WishStatus) String() string {
	return string(w)
}

// IsValid reports whether the value is a known WishStatus.
func (w WishStatus) IsValid() bool {
	for _, candidate := range validWishStatuses {
		if candidate == w {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions leave this status.
func (w WishStatus) IsTerminal() bool {
	return w == WishStatusConfirmed || w == WishStatusRejected || w == WishStatusCancelled
}

// NextStatuses returns the statuses reachable from the current one.
func (w WishStatus) NextStatuses() []WishStatus {
	next, ok := wishStatusSuccessors[w]
	if !ok {
		return nil
	}
	return append([]WishStatus(nil), next...)
}

// CanTransitionTo reports whether moving to next follows the documented
// lifecycle. Advisory on the write path, same as OrderStatus.
func (w WishStatus) CanTransitionTo(next WishStatus) bool {
	for _, candidate := range wishStatusSuccessors[w] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseWishStatus converts raw input into a WishStatus.
func ParseWishStatus(value string) (WishStatus, error) {
	for _, candidate := range validWishStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid wish status %q", value)
}
