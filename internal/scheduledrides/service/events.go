package service

import (
	"context"
	"time"

	"prebook/pkg/kafka"
	"prebook/pkg/model"
)

// Lifecycle event types published to the ride event stream.
const (
	EventRideScheduled = "scheduled_ride.created"
	EventRideBooked    = "scheduled_ride.booked"
	EventRideCancelled = "scheduled_ride.cancelled"
	EventRideExpired   = "scheduled_ride.expired"
)

const eventSchemaVersion = "1"

// EventPublisher is satisfied by kafka.Producer.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type rideEvent struct {
	RideID        string    `json:"ride_id"`
	OwnerID       string    `json:"owner_id"`
	Status        string    `json:"status"`
	BookingID     string    `json:"booking_id,omitempty"`
	ScheduledTime time.Time `json:"scheduled_time"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// publishEvent emits a lifecycle event. The stream is operator-facing
// telemetry: failures are logged and never affect the ride record.
func (s *lifecycleService) publishEvent(ctx context.Context, eventType string, ride *model.ScheduledRide) {
	if s.publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(ride.ID).
		WithEventType(eventType).
		WithSource("scheduler").
		WithSchemaVersion(eventSchemaVersion).
		WithValue(rideEvent{
			RideID:        ride.ID,
			OwnerID:       ride.OwnerID,
			Status:        string(ride.Status),
			BookingID:     ride.BookingID,
			ScheduledTime: ride.ScheduledTime,
			OccurredAt:    s.now(),
		}).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Warn("Failed to publish ride lifecycle event",
			"ride_id", ride.ID,
			"event_type", eventType,
			"error", err,
		)
	}
}
