// Package store holds the durable local copy of scheduled rides. The whole
// record set is serialized under a single logical key, so implementations
// expose whole-set reads and a batch write for the reconciliation pass.
package store

import (
	"context"

	"prebook/pkg/model"
)

type RideStore interface {
	GetAll(ctx context.Context) ([]*model.ScheduledRide, error)
	Put(ctx context.Context, ride *model.ScheduledRide) error
	Remove(ctx context.Context, id string) error

	// ReplaceAll persists the full record set in one write. The
	// reconciliation pass uses it so a multi-record update lands atomically.
	ReplaceAll(ctx context.Context, rides []*model.ScheduledRide) error
}

// cloneRide returns a deep enough copy that callers cannot mutate stored
// state through returned pointers.
func cloneRide(r *model.ScheduledRide) *model.ScheduledRide {
	c := *r
	if r.NotificationHandles != nil {
		c.NotificationHandles = append([]string(nil), r.NotificationHandles...)
	}
	if r.Preferences != nil {
		c.Preferences = make(map[string]any, len(r.Preferences))
		for k, v := range r.Preferences {
			c.Preferences[k] = v
		}
	}
	return &c
}

func cloneRides(rides []*model.ScheduledRide) []*model.ScheduledRide {
	out := make([]*model.ScheduledRide, len(rides))
	for i, r := range rides {
		out[i] = cloneRide(r)
	}
	return out
}
