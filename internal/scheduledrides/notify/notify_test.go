package notify

import (
	"errors"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu       sync.Mutex
	payloads []Payload
}

func (r *recorder) deliver(p Payload) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.payloads = append(r.payloads, p)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func TestSchedule_PastFireAtIsNoOp(t *testing.T) {
	rec := &recorder{}
	s := NewTimerScheduler(rec.deliver)
	defer s.Stop()

	handle, err := s.Schedule(time.Now().Add(-1*time.Minute), Payload{RideID: "r1", Kind: KindReminder})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if handle != "" {
		t.Errorf("expected empty handle for past fireAt, got %q", handle)
	}
	if s.Pending() != 0 {
		t.Errorf("expected no pending timers, got %d", s.Pending())
	}
}

func TestSchedule_DeliversAndForgetsHandle(t *testing.T) {
	rec := &recorder{}
	s := NewTimerScheduler(rec.deliver)
	defer s.Stop()

	handle, err := s.Schedule(time.Now().Add(10*time.Millisecond), Payload{RideID: "r1", Kind: KindReminder})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if handle == "" {
		t.Fatal("expected a handle for a future fireAt")
	}

	deadline := time.Now().Add(2 * time.Second)
	for rec.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if rec.count() != 1 {
		t.Fatalf("expected 1 delivery, got %d", rec.count())
	}
	if err := s.Cancel(handle); !errors.Is(err, ErrUnknownHandle) {
		t.Errorf("Cancel after fire = %v, want ErrUnknownHandle", err)
	}
}

func TestCancel_PreventsDelivery(t *testing.T) {
	rec := &recorder{}
	s := NewTimerScheduler(rec.deliver)
	defer s.Stop()

	handle, err := s.Schedule(time.Now().Add(50*time.Millisecond), Payload{RideID: "r1", Kind: KindReminder})
	if err != nil {
		t.Fatalf("Schedule: %v", err)
	}
	if err := s.Cancel(handle); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	if rec.count() != 0 {
		t.Errorf("cancelled timer still delivered %d payload(s)", rec.count())
	}
}

func TestFire_DeliversImmediately(t *testing.T) {
	rec := &recorder{}
	s := NewTimerScheduler(rec.deliver)
	defer s.Stop()

	s.Fire(Payload{RideID: "r1", Kind: KindConfirmation})
	if rec.count() != 1 {
		t.Fatalf("expected immediate delivery, got %d", rec.count())
	}
}
