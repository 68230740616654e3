package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	ridererrors "prebook/internal/scheduledrides/errors"
	"prebook/pkg/model"
)

// FileStore keeps the record set as a JSON list in a single file. Writes
// replace the whole file through a temp-file rename so a crash mid-write
// never leaves a truncated record set behind.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) GetAll(_ context.Context) ([]*model.ScheduledRide, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Put(_ context.Context, ride *model.ScheduledRide) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rides, err := s.load()
	if err != nil {
		return err
	}

	replaced := false
	for i, r := range rides {
		if r.ID == ride.ID {
			rides[i] = cloneRide(ride)
			replaced = true
			break
		}
	}
	if !replaced {
		rides = append(rides, cloneRide(ride))
	}

	return s.save(rides)
}

func (s *FileStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rides, err := s.load()
	if err != nil {
		return err
	}

	for i, r := range rides {
		if r.ID == id {
			rides = append(rides[:i], rides[i+1:]...)
			return s.save(rides)
		}
	}
	return ridererrors.ErrNotFound
}

func (s *FileStore) ReplaceAll(_ context.Context, rides []*model.ScheduledRide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(cloneRides(rides))
}

func (s *FileStore) load() ([]*model.ScheduledRide, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var rides []*model.ScheduledRide
	if err := json.Unmarshal(data, &rides); err != nil {
		return nil, fmt.Errorf("failed to decode store file: %w", err)
	}
	return rides, nil
}

func (s *FileStore) save(rides []*model.ScheduledRide) error {
	data, err := json.MarshalIndent(rides, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
