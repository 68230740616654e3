package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	ridererrors "prebook/internal/scheduledrides/errors"
	"prebook/pkg/model"
)

func testRide(id string) *model.ScheduledRide {
	return &model.ScheduledRide{
		ID:                  id,
		OwnerID:             "user-1",
		Pickup:              model.GeoPoint{Lat: 12.97, Lng: 77.59, Address: "MG Road"},
		Drop:                model.GeoPoint{Lat: 12.93, Lng: 77.62, Address: "Koramangala"},
		ScheduledTime:       time.Now().Add(2 * time.Hour).UTC(),
		VehicleType:         model.VehicleCab,
		NotificationHandles: []string{"h1", "h2"},
		Status:              model.StatusPending,
		CreatedAt:           time.Now().UTC(),
	}
}

func TestFileStore_PutGetRemove(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rides.json")

	s, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	rides, err := s.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll on empty store: %v", err)
	}
	if len(rides) != 0 {
		t.Fatalf("expected empty store, got %d records", len(rides))
	}

	if err := s.Put(ctx, testRide("ride-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, testRide("ride-2")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Reopen to prove the records survived the process boundary.
	s2, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore reopen: %v", err)
	}
	rides, err = s2.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll after reopen: %v", err)
	}
	if len(rides) != 2 {
		t.Fatalf("expected 2 records after reopen, got %d", len(rides))
	}
	if len(rides[0].NotificationHandles) != 2 {
		t.Errorf("notification handles not round-tripped: %v", rides[0].NotificationHandles)
	}

	if err := s2.Remove(ctx, "ride-1"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := s2.Remove(ctx, "ride-1"); !errors.Is(err, ridererrors.ErrNotFound) {
		t.Errorf("Remove of missing id = %v, want ErrNotFound", err)
	}

	rides, _ = s2.GetAll(ctx)
	if len(rides) != 1 || rides[0].ID != "ride-2" {
		t.Fatalf("unexpected records after remove: %+v", rides)
	}
}

func TestFileStore_PutReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "rides.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ride := testRide("ride-1")
	if err := s.Put(ctx, ride); err != nil {
		t.Fatalf("Put: %v", err)
	}

	ride.Status = model.StatusBooked
	ride.BookingID = "bk-42"
	if err := s.Put(ctx, ride); err != nil {
		t.Fatalf("Put update: %v", err)
	}

	rides, _ := s.GetAll(ctx)
	if len(rides) != 1 {
		t.Fatalf("expected 1 record, got %d", len(rides))
	}
	if rides[0].Status != model.StatusBooked || rides[0].BookingID != "bk-42" {
		t.Errorf("update not applied: %+v", rides[0])
	}
}

func TestFileStore_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(filepath.Join(t.TempDir(), "rides.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	for _, id := range []string{"a", "b", "c"} {
		if err := s.Put(ctx, testRide(id)); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	if err := s.ReplaceAll(ctx, []*model.ScheduledRide{testRide("b")}); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	rides, _ := s.GetAll(ctx)
	if len(rides) != 1 || rides[0].ID != "b" {
		t.Fatalf("ReplaceAll did not replace the set: %+v", rides)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, testRide("ride-1")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	rides, _ := s.GetAll(ctx)
	rides[0].Status = model.StatusCancelled

	again, _ := s.GetAll(ctx)
	if again[0].Status != model.StatusPending {
		t.Error("mutating a returned record leaked into the store")
	}
}
