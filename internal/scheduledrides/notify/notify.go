// Package notify arranges point-in-time reminder alerts. It knows nothing
// about ride semantics beyond the opaque payload it delivers.
package notify

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Payload struct {
	RideID string `json:"ride_id"`
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

const (
	KindReminder     = "reminder"
	KindConfirmation = "confirmation"
)

var ErrUnknownHandle = errors.New("unknown notification handle")

type Scheduler interface {
	// Schedule arranges delivery at fireAt and returns an opaque handle.
	// A fireAt that has already passed is a no-op: no handle, no delivery.
	Schedule(fireAt time.Time, payload Payload) (string, error)

	// Cancel revokes a previously scheduled delivery. Delivery is
	// best-effort, so a stray fire after Cancel is tolerated upstream.
	Cancel(handle string) error

	// Fire delivers a payload immediately, without scheduling.
	Fire(payload Payload)
}

// DeliveryFunc receives fired payloads. The lifecycle manager wires this
// to kick a reconciliation pass when a reminder lands.
type DeliveryFunc func(payload Payload)

// TimerScheduler backs the scheduler with in-process timers. Timers do not
// survive a restart; the periodic reconciliation pass is the safety net
// for deliveries lost that way.
type TimerScheduler struct {
	deliver DeliveryFunc
	now     func() time.Time

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTimerScheduler(deliver DeliveryFunc) *TimerScheduler {
	if deliver == nil {
		deliver = func(Payload) {}
	}
	return &TimerScheduler{
		deliver: deliver,
		now:     time.Now,
		timers:  make(map[string]*time.Timer),
	}
}

func (s *TimerScheduler) Schedule(fireAt time.Time, payload Payload) (string, error) {
	delay := fireAt.Sub(s.now())
	if delay <= 0 {
		return "", nil
	}

	handle := uuid.New().String()

	s.mu.Lock()
	s.timers[handle] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		delete(s.timers, handle)
		s.mu.Unlock()
		s.deliver(payload)
	})
	s.mu.Unlock()

	return handle, nil
}

func (s *TimerScheduler) Cancel(handle string) error {
	s.mu.Lock()
	timer, ok := s.timers[handle]
	if ok {
		delete(s.timers, handle)
	}
	s.mu.Unlock()

	if !ok {
		return ErrUnknownHandle
	}
	timer.Stop()
	return nil
}

func (s *TimerScheduler) Fire(payload Payload) {
	s.deliver(payload)
}

// Stop cancels every pending timer. Used on shutdown.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for handle, timer := range s.timers {
		timer.Stop()
		delete(s.timers, handle)
	}
}

// Pending reports how many deliveries are currently scheduled.
func (s *TimerScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}
