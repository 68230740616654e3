package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	ridererrors "prebook/internal/scheduledrides/errors"
	"prebook/pkg/config"
	"prebook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const CollectionName = "ScheduledRides"

// rideDoc is the mirror-side document shape. Locations are flattened so
// operator tooling can query lat/lng columns directly.
type rideDoc struct {
	ID             string         `bson:"_id"`
	UserID         string         `bson:"user_id"`
	PickupLocation string         `bson:"pickup_location"`
	PickupLat      float64        `bson:"pickup_lat"`
	PickupLng      float64        `bson:"pickup_lng"`
	DropLocation   string         `bson:"drop_location"`
	DropLat        float64        `bson:"drop_lat"`
	DropLng        float64        `bson:"drop_lng"`
	ScheduledTime  time.Time      `bson:"scheduled_time"`
	VehicleType    string         `bson:"vehicle_type"`
	Preferences    map[string]any `bson:"preferences,omitempty"`
	Status         string         `bson:"status"`
	BookingID      string         `bson:"booking_id,omitempty"`
	CreatedAt      time.Time      `bson:"created_at"`
}

type mongoMirror struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoMirror(cfg *config.Config) Mirror {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoMirror{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (m *mongoMirror) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (m *mongoMirror) Insert(ctx context.Context, ride *model.ScheduledRide) error {
	ctx, cancel := m.withTimeout(ctx, m.cfg.WriteTimeout)
	defer cancel()

	doc := rideDoc{
		ID:             ride.ID,
		UserID:         ride.OwnerID,
		PickupLocation: ride.Pickup.Address,
		PickupLat:      ride.Pickup.Lat,
		PickupLng:      ride.Pickup.Lng,
		DropLocation:   ride.Drop.Address,
		DropLat:        ride.Drop.Lat,
		DropLng:        ride.Drop.Lng,
		ScheduledTime:  ride.ScheduledTime,
		VehicleType:    string(ride.VehicleType),
		Preferences:    ride.Preferences,
		Status:         string(ride.Status),
		BookingID:      ride.BookingID,
		CreatedAt:      ride.CreatedAt,
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert scheduled ride mirror record: %w", err)
	}
	return nil
}

func (m *mongoMirror) UpdateStatus(ctx context.Context, id string, status model.RideStatus, bookingID string) error {
	ctx, cancel := m.withTimeout(ctx, m.cfg.WriteTimeout)
	defer cancel()

	set := bson.M{"status": string(status)}
	if bookingID != "" {
		set["booking_id"] = bookingID
	}

	// Conditional on the mirrored status still being pending: the first
	// terminal transition wins across devices, later conflicting writes
	// are rejected.
	filter := bson.M{
		"_id":    id,
		"status": string(model.StatusPending),
	}

	result, err := m.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update scheduled ride mirror record: %w", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// No pending record matched: either the ride is unknown to the
	// mirror or another device already advanced it.
	err = m.collection.FindOne(ctx, bson.M{"_id": id}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ridererrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check scheduled ride mirror record: %w", err)
	}
	return ridererrors.ErrTerminal
}
