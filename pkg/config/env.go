package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvStorePath = "STORE_PATH"

	EnvBookingAPIBaseURL = "BOOKING_API_BASE_URL"
	EnvBookingTimeout    = "BOOKING_TIMEOUT"

	EnvRideEventsTopic = "RIDE_EVENTS_TOPIC"

	EnvMinLeadTime       = "MIN_LEAD_TIME"
	EnvMaxHorizon        = "MAX_HORIZON"
	EnvReminderOffsets   = "REMINDER_OFFSETS"
	EnvTriggerWindow     = "TRIGGER_WINDOW"
	EnvStaleAfter        = "STALE_AFTER"
	EnvRetentionWindow   = "RETENTION_WINDOW"
	EnvReconcileInterval = "RECONCILE_INTERVAL"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
