package enums

import "testing"

func TestWishStatusTransitions(t *testing.T) {
	tests := []struct {
		from WishStatus
		to   WishStatus
		ok   bool
	}{
		{WishStatusSubmitted, WishStatusValidated, true},
		{WishStatusSubmitted, WishStatusRejected, true},
		{WishStatusSubmitted, WishStatusCancelled, true},
		{WishStatusSubmitted, WishStatusConfirmed, false},
		{WishStatusValidated, WishStatusConfirmed, true},
		{WishStatusValidated, WishStatusRejected, true},
		{WishStatusValidated, WishStatusCancelled, true},
		{WishStatusValidated, WishStatusSubmitted, false},
		{WishStatusConfirmed, WishStatusCancelled, false},
		{WishStatusRejected, WishStatusSubmitted, false},
		{WishStatusCancelled, WishStatusSubmitted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.ok {
			t.Fatalf("%s -> %s: expected %v got %v", tt.from, tt.to, tt.ok, got)
		}
	}
}

func TestWishStatusTerminal(t *testing.T) {
	for _, status := range []WishStatus{WishStatusConfirmed, WishStatusRejected, WishStatusCancelled} {
		if !status.IsTerminal() {
			t.Fatalf("%s should be terminal", status)
		}
	}
	if WishStatusSubmitted.IsTerminal() || WishStatusValidated.IsTerminal() {
		t.Fatal("submitted/validated should not be terminal")
	}
}
