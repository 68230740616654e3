// Package booking submits a due scheduled ride to the real-time booking
// API. The executor is a pure request/response collaborator: it never
// touches scheduled-ride records.
package booking

import (
	"context"

	"prebook/pkg/model"
)

type SubmitRequest struct {
	OwnerID     string            `json:"owner_id"`
	Pickup      model.GeoPoint    `json:"pickup"`
	Drop        model.GeoPoint    `json:"drop"`
	VehicleType model.VehicleType `json:"vehicle_type"`
	Preferences map[string]any    `json:"preferences,omitempty"`
}

type SubmitResult struct {
	BookingID string `json:"booking_id"`
}

// Executor converts a scheduled ride into a live booking request. Any
// error (timeout, no drivers, rejection) means the caller leaves the
// record pending and retries on the next reconciliation pass.
type Executor interface {
	Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error)
}
