package model

import (
	"time"
)

type RideStatus string

const (
	StatusPending   RideStatus = "pending"
	StatusBooked    RideStatus = "booked"
	StatusCancelled RideStatus = "cancelled"
	StatusExpired   RideStatus = "expired"
)

// AllowedTransitions represents the scheduled-ride state flow as code.
// booked, cancelled and expired are terminal; records in those states are
// only ever removed by retention cleanup, never transitioned.
var AllowedTransitions = map[RideStatus][]RideStatus{
	StatusPending: {StatusBooked, StatusCancelled, StatusExpired},
}

func CanTransition(from, to RideStatus) bool {
	for _, s := range AllowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s RideStatus) Terminal() bool {
	return s == StatusBooked || s == StatusCancelled || s == StatusExpired
}

type VehicleType string

const (
	VehicleBike VehicleType = "bike"
	VehicleAuto VehicleType = "auto"
	VehicleCab  VehicleType = "cab"
)

type GeoPoint struct {
	Lat     float64 `json:"lat" bson:"lat" validate:"min=-90,max=90"`
	Lng     float64 `json:"lng" bson:"lng" validate:"min=-180,max=180"`
	Address string  `json:"address" bson:"address" validate:"required,min=3,max=200"`
}

// ScheduledRide is a future-dated ride request that has not yet been
// converted into a live booking. Pickup, drop, scheduled time and vehicle
// type are immutable after creation; cancel-and-recreate is the only way
// to change them.
type ScheduledRide struct {
	ID                  string         `json:"id" validate:"omitempty,uuid4"`
	OwnerID             string         `json:"owner_id" validate:"required,min=1,max=64"`
	Pickup              GeoPoint       `json:"pickup" validate:"required"`
	Drop                GeoPoint       `json:"drop" validate:"required"`
	ScheduledTime       time.Time      `json:"scheduled_time" validate:"required"`
	VehicleType         VehicleType    `json:"vehicle_type" validate:"required,oneof=bike auto cab"`
	Preferences         map[string]any `json:"preferences,omitempty"`
	NotificationHandles []string       `json:"notification_handles,omitempty"`
	Status              RideStatus     `json:"status" validate:"required,oneof=pending booked cancelled expired"`
	BookingID           string         `json:"booking_id,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
}

// CreateRideRequest is the inbound payload for scheduling a ride.
type CreateRideRequest struct {
	OwnerID       string         `json:"owner_id"`
	Pickup        GeoPoint       `json:"pickup"`
	Drop          GeoPoint       `json:"drop"`
	ScheduledTime time.Time      `json:"scheduled_time"`
	VehicleType   VehicleType    `json:"vehicle_type"`
	Preferences   map[string]any `json:"preferences,omitempty"`
}
