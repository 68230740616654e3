package service

import (
	"context"
	"time"

	"prebook/internal/scheduledrides/notify"
)

// RunReconcileLoop drives the periodic reconciliation cadence. Extra
// passes arrive through the kick channel when a reminder fires or the
// caller requests one; the cadence is best-effort, not a precise cron,
// which is why promotion works on a window rather than an instant.
func (s *lifecycleService) RunReconcileLoop(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.ReconcileInterval)
	defer ticker.Stop()

	s.cfg.Log.Info("Reconcile loop started", "interval", s.cfg.ReconcileInterval)

	for {
		select {
		case <-ctx.Done():
			s.cfg.Log.Info("Reconcile loop stopped")
			return
		case <-ticker.C:
			s.runPass(ctx, true)
		case <-s.kick:
			s.runPass(ctx, false)
		}
	}
}

func (s *lifecycleService) runPass(ctx context.Context, withCleanup bool) {
	if err := s.Reconcile(ctx); err != nil {
		s.cfg.Log.Error("Reconcile pass failed", "error", err)
	}
	if withCleanup {
		if err := s.Cleanup(ctx); err != nil {
			s.cfg.Log.Error("Cleanup pass failed", "error", err)
		}
	}
}

// TriggerReconcile coalesces: a pass already requested absorbs further
// triggers until the loop picks it up.
func (s *lifecycleService) TriggerReconcile() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// HandleNotification is wired as the notification scheduler's delivery
// sink. A delivered reminder is one of the trigger sources for a pass.
func (s *lifecycleService) HandleNotification(payload notify.Payload) {
	if payload.Kind != notify.KindReminder {
		return
	}
	s.cfg.Log.Debug("Reminder delivered, requesting reconcile pass",
		"ride_id", payload.RideID,
	)
	s.TriggerReconcile()
}
