package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvProviderBaseURL  = "PROVIDER_BASE_URL"
	EnvProviderTimeout  = "PROVIDER_TIMEOUT"
	EnvProviderTimezone = "PROVIDER_TIMEZONE"

	EnvTokenSalt         = "TOKEN_SALT"
	EnvTokenTTL          = "TOKEN_TTL"
	EnvHideWindowMinutes = "HIDE_WINDOW_MINUTES"

	EnvExcludedProgramIDs = "EXCLUDED_PROGRAM_IDS"
	EnvReservedStaffID    = "RESERVED_STAFF_ID"
	EnvInternalAPIToken   = "INTERNAL_API_TOKEN"

	EnvSearchEventsTopic = "SEARCH_EVENTS_TOPIC"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
