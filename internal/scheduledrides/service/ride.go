package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"prebook/internal/scheduledrides/booking"
	ridererrors "prebook/internal/scheduledrides/errors"
	"prebook/internal/scheduledrides/mirror"
	"prebook/internal/scheduledrides/notify"
	"prebook/internal/scheduledrides/store"
	"prebook/internal/scheduledrides/validator"
	"prebook/pkg/config"
	apperrors "prebook/pkg/errors"
	"prebook/pkg/model"
	"prebook/pkg/sanitizer"

	"github.com/google/uuid"
)

// WarnMirrorWrite is attached to otherwise-successful operations when the
// remote mirror could not be updated. The local record stands regardless.
const WarnMirrorWrite = "remote mirror write failed; record kept locally"

type LifecycleService interface {
	Create(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error)
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*model.ScheduledRide, error)
	ListByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.ScheduledRide, int64, error)

	// Reconcile runs one pass over all pending records, promoting those
	// inside the trigger window and expiring those past the stale
	// threshold. Safe to invoke from any trigger source; passes are
	// serialized.
	Reconcile(ctx context.Context) error

	// Cleanup prunes records whose scheduled time fell out of the
	// retention window, regardless of terminal status.
	Cleanup(ctx context.Context) error

	// RunReconcileLoop drives periodic passes until ctx is cancelled.
	RunReconcileLoop(ctx context.Context)

	// TriggerReconcile requests an extra pass outside the periodic
	// cadence (app foregrounding, reminder delivery).
	TriggerReconcile()

	// HandleNotification is the delivery sink for the notification
	// scheduler.
	HandleNotification(payload notify.Payload)
}

type lifecycleService struct {
	store     store.RideStore
	mirror    mirror.Mirror
	notifier  notify.Scheduler
	executor  booking.Executor
	publisher EventPublisher
	validator *validator.RideValidator
	cfg       *config.Config

	now  func() time.Time
	kick chan struct{}

	// Serializes every store writer, not just reconciliation passes. A
	// pass snapshots the store, does slow I/O, then writes the whole set
	// back; an API mutation landing in between would be overwritten by
	// that batch write, so Create, Cancel and Cleanup queue behind it.
	mu sync.Mutex
}

func NewLifecycleService(
	rideStore store.RideStore,
	rideMirror mirror.Mirror,
	notifier notify.Scheduler,
	executor booking.Executor,
	publisher EventPublisher,
	rideValidator *validator.RideValidator,
	cfg *config.Config,
) LifecycleService {
	return &lifecycleService{
		store:     rideStore,
		mirror:    rideMirror,
		notifier:  notifier,
		executor:  executor,
		publisher: publisher,
		validator: rideValidator,
		cfg:       cfg,
		now:       time.Now,
		kick:      make(chan struct{}, 1),
	}
}

func (s *lifecycleService) Create(ctx context.Context, req *model.CreateRideRequest) (*model.ScheduledRide, []string, error) {
	now := s.now()

	ride := &model.ScheduledRide{
		ID:            uuid.New().String(),
		OwnerID:       sanitizer.NormalizeOwnerID(req.OwnerID),
		Pickup:        req.Pickup,
		Drop:          req.Drop,
		ScheduledTime: req.ScheduledTime,
		VehicleType:   req.VehicleType,
		// Preferences are an opaque bag forwarded verbatim to booking;
		// the caller's keys survive as submitted.
		Preferences: req.Preferences,
		Status:      model.StatusPending,
		CreatedAt:   now,
	}
	ride.Pickup.Address = sanitizer.NormalizeAddress(ride.Pickup.Address)
	ride.Drop.Address = sanitizer.NormalizeAddress(ride.Drop.Address)

	if err := s.validator.ValidateCreate(ride, now); err != nil {
		return nil, nil, err
	}

	// Reminder offsets that already passed are skipped; a ride created
	// close to the lead-time floor may get only the nearest reminder,
	// or none at all.
	for _, offset := range s.cfg.ReminderOffsets {
		fireAt := ride.ScheduledTime.Add(-offset)
		if !fireAt.After(now) {
			continue
		}

		handle, err := s.notifier.Schedule(fireAt, notify.Payload{
			RideID: ride.ID,
			Kind:   notify.KindReminder,
			Title:  "Upcoming ride",
			Body:   fmt.Sprintf("Your ride from %s is scheduled for %s", ride.Pickup.Address, ride.ScheduledTime.Format(time.Kitchen)),
		})
		if err != nil {
			s.cfg.Log.Warn("Failed to schedule reminder",
				"ride_id", ride.ID,
				"fire_at", fireAt,
				"error", err,
			)
			continue
		}
		if handle != "" {
			ride.NotificationHandles = append(ride.NotificationHandles, handle)
		}
	}

	s.mu.Lock()
	err := s.store.Put(ctx, ride)
	s.mu.Unlock()
	if err != nil {
		// No record, no reminders: undo the handles so a stray alert
		// cannot fire for a ride that was never persisted.
		s.cancelHandles(ride)
		return nil, nil, apperrors.Internal("failed to persist scheduled ride", err)
	}

	var warnings []string
	if err := s.mirror.Insert(ctx, ride); err != nil {
		s.cfg.Log.Warn("Remote mirror insert failed",
			"ride_id", ride.ID,
			"error", err,
		)
		warnings = append(warnings, WarnMirrorWrite)
	}

	s.publishEvent(ctx, EventRideScheduled, ride)

	s.cfg.Log.Info("Scheduled ride created",
		"ride_id", ride.ID,
		"owner_id", ride.OwnerID,
		"scheduled_time", ride.ScheduledTime,
		"reminders", len(ride.NotificationHandles),
	)
	return ride, warnings, nil
}

func (s *lifecycleService) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ride, err := s.findByID(ctx, id)
	if err != nil {
		return err
	}

	// A stray notification for a cancelled ride is a nuisance, not a
	// correctness problem, so cancel failures are logged and ignored.
	s.cancelHandles(ride)

	if !model.CanTransition(ride.Status, model.StatusCancelled) {
		s.cfg.Log.Info("Cancel on non-pending ride is a no-op",
			"ride_id", id,
			"status", ride.Status,
		)
		return nil
	}

	ride.Status = model.StatusCancelled
	if err := s.store.Put(ctx, ride); err != nil {
		return apperrors.Internal("failed to persist cancellation", err)
	}

	s.pushMirrorStatus(ctx, ride)
	s.publishEvent(ctx, EventRideCancelled, ride)

	s.cfg.Log.Info("Scheduled ride cancelled", "ride_id", id)
	return nil
}

func (s *lifecycleService) Get(ctx context.Context, id string) (*model.ScheduledRide, error) {
	return s.findByID(ctx, id)
}

func (s *lifecycleService) ListByOwner(ctx context.Context, ownerID string, limit int, offset int64) ([]*model.ScheduledRide, int64, error) {
	rides, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to read scheduled rides", err)
	}

	var owned []*model.ScheduledRide
	for _, r := range rides {
		if r.OwnerID == ownerID {
			owned = append(owned, r)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].ScheduledTime.Before(owned[j].ScheduledTime)
	})

	total := int64(len(owned))
	if offset >= total {
		return []*model.ScheduledRide{}, total, nil
	}
	end := offset + int64(limit)
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (s *lifecycleService) Reconcile(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rides, err := s.store.GetAll(ctx)
	if err != nil {
		return apperrors.Internal("failed to read scheduled rides", err)
	}

	now := s.now()
	var changed []*model.ScheduledRide

	for _, ride := range rides {
		if ride.Status != model.StatusPending {
			continue
		}

		delta := ride.ScheduledTime.Sub(now)
		switch {
		case delta > 0 && delta <= s.cfg.TriggerWindow:
			if s.promote(ctx, ride) {
				changed = append(changed, ride)
			}
		case -delta >= s.cfg.StaleAfter:
			// Inclusive: a ride exactly staleAfter past its scheduled
			// time expires.
			ride.Status = model.StatusExpired
			changed = append(changed, ride)
			s.cfg.Log.Info("Scheduled ride expired",
				"ride_id", ride.ID,
				"scheduled_time", ride.ScheduledTime,
			)
		}
	}

	if len(changed) == 0 {
		return nil
	}

	// One batch write for the whole pass, then mirror pushes. mu keeps
	// other writers out, so the snapshot is still current here.
	if err := s.store.ReplaceAll(ctx, rides); err != nil {
		return apperrors.Internal("failed to persist reconciled rides", err)
	}

	for _, ride := range changed {
		s.pushMirrorStatus(ctx, ride)
		switch ride.Status {
		case model.StatusBooked:
			s.publishEvent(ctx, EventRideBooked, ride)
		case model.StatusExpired:
			s.publishEvent(ctx, EventRideExpired, ride)
		}
	}

	return nil
}

// promote attempts the pending-to-booked transition. It re-reads the
// record's current status right before submitting, so two passes racing
// through overlapping trigger sources cannot double-book the same ride.
// Returns true when the ride transitioned.
func (s *lifecycleService) promote(ctx context.Context, ride *model.ScheduledRide) bool {
	fresh, err := s.findByID(ctx, ride.ID)
	if err != nil || !model.CanTransition(fresh.Status, model.StatusBooked) {
		s.cfg.Log.Info("Skipping promotion, ride no longer pending",
			"ride_id", ride.ID,
		)
		return false
	}

	submitCtx, cancel := context.WithTimeout(ctx, s.cfg.BookingTimeout)
	defer cancel()

	result, err := s.executor.Submit(submitCtx, booking.SubmitRequest{
		OwnerID:     ride.OwnerID,
		Pickup:      ride.Pickup,
		Drop:        ride.Drop,
		VehicleType: ride.VehicleType,
		Preferences: ride.Preferences,
	})
	if err != nil {
		// Left pending: the next pass retries, and the stale threshold
		// bounds the retry window.
		s.cfg.Log.Warn("Booking submission failed, will retry",
			"ride_id", ride.ID,
			"error", err,
		)
		return false
	}

	ride.Status = model.StatusBooked
	ride.BookingID = result.BookingID

	s.notifier.Fire(notify.Payload{
		RideID: ride.ID,
		Kind:   notify.KindConfirmation,
		Title:  "Ride booked",
		Body:   fmt.Sprintf("Your scheduled ride is confirmed, booking %s", result.BookingID),
	})

	s.cfg.Log.Info("Scheduled ride promoted to booking",
		"ride_id", ride.ID,
		"booking_id", result.BookingID,
	)
	return true
}

func (s *lifecycleService) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rides, err := s.store.GetAll(ctx)
	if err != nil {
		return apperrors.Internal("failed to read scheduled rides", err)
	}

	now := s.now()
	kept := rides[:0]
	removed := 0
	for _, ride := range rides {
		if now.Sub(ride.ScheduledTime) > s.cfg.RetentionWindow {
			removed++
			continue
		}
		kept = append(kept, ride)
	}

	if removed == 0 {
		return nil
	}

	if err := s.store.ReplaceAll(ctx, kept); err != nil {
		return apperrors.Internal("failed to prune scheduled rides", err)
	}

	s.cfg.Log.Info("Pruned scheduled ride history", "removed", removed)
	return nil
}

func (s *lifecycleService) findByID(ctx context.Context, id string) (*model.ScheduledRide, error) {
	rides, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to read scheduled rides", err)
	}
	for _, r := range rides {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, apperrors.Wrap(ridererrors.ErrNotFound, apperrors.CodeNotFound, "scheduled ride not found", 404).
		WithDetails(map[string]any{"id": id})
}

func (s *lifecycleService) cancelHandles(ride *model.ScheduledRide) {
	for _, handle := range ride.NotificationHandles {
		if err := s.notifier.Cancel(handle); err != nil {
			if errors.Is(err, notify.ErrUnknownHandle) {
				continue
			}
			s.cfg.Log.Warn("Failed to cancel reminder",
				"ride_id", ride.ID,
				"handle", handle,
				"error", err,
			)
		}
	}
}

// pushMirrorStatus propagates a status transition to the remote mirror.
// A rejected conflicting write means another device got there first; both
// outcomes are logged, neither touches local state.
func (s *lifecycleService) pushMirrorStatus(ctx context.Context, ride *model.ScheduledRide) {
	err := s.mirror.UpdateStatus(ctx, ride.ID, ride.Status, ride.BookingID)
	if err == nil {
		return
	}
	if errors.Is(err, ridererrors.ErrTerminal) {
		s.cfg.Log.Warn("Mirror already holds a terminal status for ride",
			"ride_id", ride.ID,
			"local_status", ride.Status,
		)
		return
	}
	s.cfg.Log.Warn("Remote mirror update failed",
		"ride_id", ride.ID,
		"status", ride.Status,
		"error", err,
	)
}
