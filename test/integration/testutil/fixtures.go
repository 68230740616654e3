package testutil

import (
	"time"

	"prebook/pkg/model"
)

type RideBuilder struct {
	req model.CreateRideRequest
}

func NewRideBuilder() *RideBuilder {
	return &RideBuilder{
		req: model.CreateRideRequest{
			OwnerID: "integration-user",
			Pickup: model.GeoPoint{
				Lat:     12.9716,
				Lng:     77.5946,
				Address: "MG Road, Bengaluru",
			},
			Drop: model.GeoPoint{
				Lat:     12.9352,
				Lng:     77.6245,
				Address: "Koramangala, Bengaluru",
			},
			ScheduledTime: time.Now().Add(2 * time.Hour).UTC(),
			VehicleType:   model.VehicleCab,
			Preferences:   map[string]any{"ac": true},
		},
	}
}

func (b *RideBuilder) WithOwner(ownerID string) *RideBuilder {
	b.req.OwnerID = ownerID
	return b
}

func (b *RideBuilder) WithScheduledTime(at time.Time) *RideBuilder {
	b.req.ScheduledTime = at
	return b
}

func (b *RideBuilder) WithVehicleType(vt model.VehicleType) *RideBuilder {
	b.req.VehicleType = vt
	return b
}

func (b *RideBuilder) Build() model.CreateRideRequest {
	return b.req
}
