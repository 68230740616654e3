package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from RideStatus
		to   RideStatus
		want bool
	}{
		{"pending to booked", StatusPending, StatusBooked, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to expired", StatusPending, StatusExpired, true},
		{"booked is terminal", StatusBooked, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"expired is terminal", StatusExpired, StatusBooked, false},
		{"no self transition", StatusPending, StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestTerminal(t *testing.T) {
	if StatusPending.Terminal() {
		t.Error("pending must not be terminal")
	}
	for _, s := range []RideStatus{StatusBooked, StatusCancelled, StatusExpired} {
		if !s.Terminal() {
			t.Errorf("%s must be terminal", s)
		}
	}
}
