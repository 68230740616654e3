// Package mirror pushes scheduled-ride records to the server-side table
// that gives operators visibility and survives device loss. The local
// store stays authoritative for scheduling decisions; mirror failures are
// surfaced as warnings, never rolled back into local state.
package mirror

import (
	"context"

	"prebook/pkg/model"
)

type Mirror interface {
	// Insert writes a newly created record. Called once per ride.
	Insert(ctx context.Context, ride *model.ScheduledRide) error

	// UpdateStatus applies a status transition, setting booking_id when
	// the new status is booked. The first terminal transition wins: an
	// update against a record that already left pending is rejected with
	// ErrTerminal rather than overwriting it.
	UpdateStatus(ctx context.Context, id string, status model.RideStatus, bookingID string) error
}

// Noop is used in tests and in deployments without a configured mirror.
type Noop struct{}

func (Noop) Insert(context.Context, *model.ScheduledRide) error { return nil }

func (Noop) UpdateStatus(context.Context, string, model.RideStatus, string) error { return nil }
