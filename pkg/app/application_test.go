package app

import (
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"prebook/pkg/client"
	"prebook/pkg/config"
	"prebook/pkg/logger"
)

type noopHandler struct{}

func (noopHandler) RegisterRoutes(_ *httprouter.Router) {}

// Hook order is load-bearing: the reconcile loop's stop hook must run
// before the hooks that close its collaborators.
func TestShutdownHooksRunInRegistrationOrder(t *testing.T) {
	cfg := &config.Config{
		Port:            "8080",
		RequestTimeout:  5 * time.Second,
		IdempotencyTTL:  time.Minute,
		MaxRequestSize:  1 << 20,
		ShutdownTimeout: time.Second,
		Client:          client.NewClient(),
		Log:             logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"}),
	}

	a := NewApplication(cfg)

	var order []string
	a.OnShutdown(func() { order = append(order, "loop") })
	a.OnShutdown(func() { order = append(order, "notifier") })
	a.OnShutdown(func() { order = append(order, "producer") })

	a.SetApp(noopHandler{})
	a.gracefulShutdown()

	want := []string{"loop", "notifier", "producer"}
	if len(order) != len(want) {
		t.Fatalf("ran %d hooks, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("hook order = %v, want %v", order, want)
		}
	}
}
