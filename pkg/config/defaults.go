package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "prebook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultStorePath = "scheduled_rides.json"

	DefaultBookingAPIBaseURL = "http://localhost:8081"
	DefaultBookingTimeout    = 10 * time.Second

	DefaultRideEventsTopic = "scheduled-ride-events"

	// Scheduling windows. MaxHorizon is product-configurable up to
	// MaxHorizonCap; everything else is a plain default.
	DefaultMinLeadTime       = 30 * time.Minute
	DefaultMaxHorizon        = 7 * 24 * time.Hour
	MaxHorizonCap            = 30 * 24 * time.Hour
	DefaultReminderOffsets   = "60m,15m"
	DefaultTriggerWindow     = 15 * time.Minute
	DefaultStaleAfter        = 60 * time.Minute
	DefaultRetentionWindow   = 30 * 24 * time.Hour
	DefaultReconcileInterval = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
	DefaultLogLevel        = "info"
)
