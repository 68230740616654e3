package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"prebook/pkg/client"
	"prebook/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	StorePath string

	BookingAPIBaseURL string
	BookingTimeout    time.Duration

	RideEventsTopic string

	MinLeadTime       time.Duration
	MaxHorizon        time.Duration
	ReminderOffsets   []time.Duration
	TriggerWindow     time.Duration
	StaleAfter        time.Duration
	RetentionWindow   time.Duration
	ReconcileInterval time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		StorePath: getEnvStr(EnvStorePath, DefaultStorePath),

		BookingAPIBaseURL: getEnvStr(EnvBookingAPIBaseURL, DefaultBookingAPIBaseURL),
		BookingTimeout:    getEnvDuration(EnvBookingTimeout, DefaultBookingTimeout),

		RideEventsTopic: getEnvStr(EnvRideEventsTopic, DefaultRideEventsTopic),

		MinLeadTime:       getEnvDuration(EnvMinLeadTime, DefaultMinLeadTime),
		MaxHorizon:        getEnvDuration(EnvMaxHorizon, DefaultMaxHorizon),
		ReminderOffsets:   getEnvDurationList(EnvReminderOffsets, DefaultReminderOffsets),
		TriggerWindow:     getEnvDuration(EnvTriggerWindow, DefaultTriggerWindow),
		StaleAfter:        getEnvDuration(EnvStaleAfter, DefaultStaleAfter),
		RetentionWindow:   getEnvDuration(EnvRetentionWindow, DefaultRetentionWindow),
		ReconcileInterval: getEnvDuration(EnvReconcileInterval, DefaultReconcileInterval),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.StorePath == "" {
		errors = append(errors, "StorePath cannot be empty")
	}

	if cfg.BookingAPIBaseURL == "" {
		errors = append(errors, "BookingAPIBaseURL cannot be empty")
	}
	if cfg.BookingTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("BookingTimeout must be positive, got: %s", cfg.BookingTimeout))
	}

	if cfg.MinLeadTime <= 0 {
		errors = append(errors, fmt.Sprintf("MinLeadTime must be positive, got: %s", cfg.MinLeadTime))
	}
	if cfg.MaxHorizon <= cfg.MinLeadTime {
		errors = append(errors, fmt.Sprintf("MaxHorizon (%s) must be greater than MinLeadTime (%s)", cfg.MaxHorizon, cfg.MinLeadTime))
	}
	if cfg.MaxHorizon > MaxHorizonCap {
		errors = append(errors, fmt.Sprintf("MaxHorizon (%s) must not exceed %s", cfg.MaxHorizon, time.Duration(MaxHorizonCap)))
	}
	if len(cfg.ReminderOffsets) == 0 {
		errors = append(errors, "ReminderOffsets cannot be empty")
	}
	for i, offset := range cfg.ReminderOffsets {
		if offset <= 0 {
			errors = append(errors, fmt.Sprintf("ReminderOffsets[%d] must be positive, got: %s", i, offset))
		}
	}
	if cfg.TriggerWindow <= 0 {
		errors = append(errors, fmt.Sprintf("TriggerWindow must be positive, got: %s", cfg.TriggerWindow))
	}
	if cfg.StaleAfter <= 0 {
		errors = append(errors, fmt.Sprintf("StaleAfter must be positive, got: %s", cfg.StaleAfter))
	}
	if cfg.RetentionWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RetentionWindow must be positive, got: %s", cfg.RetentionWindow))
	}
	if cfg.ReconcileInterval <= 0 {
		errors = append(errors, fmt.Sprintf("ReconcileInterval must be positive, got: %s", cfg.ReconcileInterval))
	}

	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	offsets := make([]string, len(cfg.ReminderOffsets))
	for i, o := range cfg.ReminderOffsets {
		offsets[i] = o.String()
	}

	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"store_path", cfg.StorePath,
		"booking_api_base_url", cfg.BookingAPIBaseURL,
		"booking_timeout", cfg.BookingTimeout,
		"ride_events_topic", cfg.RideEventsTopic,
		"min_lead_time", cfg.MinLeadTime,
		"max_horizon", cfg.MaxHorizon,
		"reminder_offsets", strings.Join(offsets, ","),
		"trigger_window", cfg.TriggerWindow,
		"stale_after", cfg.StaleAfter,
		"retention_window", cfg.RetentionWindow,
		"reconcile_interval", cfg.ReconcileInterval,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvDurationList parses a comma-separated list of durations,
// e.g. "60m,15m". Falls back wholesale on any parse error.
func getEnvDurationList(key, fallback string) []time.Duration {
	value := os.Getenv(key)
	if value == "" {
		value = fallback
	}

	parts := strings.Split(value, ",")
	durations := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		d, err := time.ParseDuration(strings.TrimSpace(part))
		if err != nil {
			return parseDurationList(fallback)
		}
		durations = append(durations, d)
	}
	return durations
}

func parseDurationList(value string) []time.Duration {
	parts := strings.Split(value, ",")
	durations := make([]time.Duration, 0, len(parts))
	for _, part := range parts {
		if d, err := time.ParseDuration(strings.TrimSpace(part)); err == nil {
			durations = append(durations, d)
		}
	}
	return durations
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	if offset < 0 {
		return 0
	}
	return offset
}
