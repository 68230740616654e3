package main

import (
	"context"

	"prebook/internal/scheduledrides/booking"
	"prebook/internal/scheduledrides/handler"
	"prebook/internal/scheduledrides/mirror"
	"prebook/internal/scheduledrides/notify"
	"prebook/internal/scheduledrides/service"
	"prebook/internal/scheduledrides/store"
	"prebook/internal/scheduledrides/validator"
	"prebook/pkg/app"
	"prebook/pkg/config"
	"prebook/pkg/kafka"
	kafka_config "prebook/pkg/kafka/config"
)

const ServiceName = "scheduler"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Scheduler service")

	serverApp := app.NewApplication(cfg)

	// Registered before initServices hooks its collaborators, so the
	// loop stops and drains its in-flight pass ahead of the notifier
	// and event producer closing.
	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	serverApp.OnShutdown(func() {
		cancelLoop()
		<-loopDone
	})

	rideService := initServices(cfg, serverApp)
	go func() {
		rideService.RunReconcileLoop(loopCtx)
		close(loopDone)
	}()
	serverApp.OnShutdown(cfg.GracefulShutdown)

	serverApp.SetApp(handler.NewRideHandler(rideService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config, serverApp *app.Application) service.LifecycleService {
	rideStore, err := store.NewFileStore(cfg.StorePath)
	if err != nil {
		cfg.Log.Fatal("Failed to open ride store", "path", cfg.StorePath, "error", err)
	}

	// Delivered notifications feed back into the service, which does not
	// exist yet when the scheduler is constructed. Bind late.
	var rideService service.LifecycleService
	notifier := notify.NewTimerScheduler(func(payload notify.Payload) {
		if rideService != nil {
			rideService.HandleNotification(payload)
		}
	})
	serverApp.OnShutdown(notifier.Stop)

	rideService = service.NewLifecycleService(
		rideStore,
		mirror.NewMongoMirror(cfg),
		notifier,
		booking.NewHTTPExecutor(cfg.BookingAPIBaseURL, cfg.BookingTimeout),
		initPublisher(cfg, serverApp),
		validator.NewRideValidator(cfg.MinLeadTime, cfg.MaxHorizon, cfg.Log),
		cfg,
	)

	cfg.Log.Info("Scheduler service initialized",
		"store_path", cfg.StorePath,
		"booking_api", cfg.BookingAPIBaseURL,
	)
	return rideService
}

// initPublisher wires the ride event stream. The stream is operator
// visibility, not correctness, so a bad event configuration downgrades
// to no events rather than failing the service.
func initPublisher(cfg *config.Config, serverApp *app.Application) service.EventPublisher {
	producer, err := kafka.NewProducer(kafka_config.Load(), cfg.RideEventsTopic)
	if err != nil {
		cfg.Log.Warn("Event producer unavailable, ride events disabled", "error", err)
		return nil
	}

	serverApp.OnShutdown(func() {
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close event producer", "error", err)
		}
	})
	return producer
}
