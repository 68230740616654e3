package store

import (
	"context"
	"sync"

	ridererrors "prebook/internal/scheduledrides/errors"
	"prebook/pkg/model"
)

// MemoryStore is an ephemeral RideStore used in tests and single-run
// deployments where durability is not required.
type MemoryStore struct {
	mu    sync.RWMutex
	rides []*model.ScheduledRide
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) GetAll(_ context.Context) ([]*model.ScheduledRide, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRides(s.rides), nil
}

func (s *MemoryStore) Put(_ context.Context, ride *model.ScheduledRide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rides {
		if r.ID == ride.ID {
			s.rides[i] = cloneRide(ride)
			return nil
		}
	}
	s.rides = append(s.rides, cloneRide(ride))
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.rides {
		if r.ID == id {
			s.rides = append(s.rides[:i], s.rides[i+1:]...)
			return nil
		}
	}
	return ridererrors.ErrNotFound
}

func (s *MemoryStore) ReplaceAll(_ context.Context, rides []*model.ScheduledRide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rides = cloneRides(rides)
	return nil
}
