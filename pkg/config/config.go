package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"carve/pkg/client"
	"carve/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	ProviderBaseURL  string
	ProviderTimeout  time.Duration
	ProviderTimezone string

	TokenSalt  string
	TokenTTL   time.Duration
	HideWindow time.Duration

	ExcludedProgramIDs []string
	ReservedStaffID    string
	InternalAPIToken   string

	SearchEventsTopic string

	RateLimitRequests int
	RateLimitWindow   time.Duration

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

		ProviderBaseURL:  getEnvStr(EnvProviderBaseURL, ""),
		ProviderTimeout:  getEnvDuration(EnvProviderTimeout, DefaultProviderTimeout),
		ProviderTimezone: getEnvStr(EnvProviderTimezone, DefaultProviderTimezone),

		TokenSalt:  getEnvStr(EnvTokenSalt, ""),
		TokenTTL:   getEnvDuration(EnvTokenTTL, DefaultTokenTTL),
		HideWindow: time.Duration(getEnvNum(EnvHideWindowMinutes, DefaultHideWindowMinutes)) * time.Minute,

		ExcludedProgramIDs: getEnvList(EnvExcludedProgramIDs, nil),
		ReservedStaffID:    getEnvStr(EnvReservedStaffID, ""),
		InternalAPIToken:   getEnvStr(EnvInternalAPIToken, ""),

		SearchEventsTopic: getEnvStr(EnvSearchEventsTopic, DefaultSearchEventsTopic),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.FormatJSON,
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

func (cfg *Config) Validate() error {
	if cfg.TokenSalt == "" {
		return fmt.Errorf("%s is required: booking tokens cannot be signed without a salt", EnvTokenSalt)
	}
	if cfg.ProviderBaseURL == "" {
		return fmt.Errorf("%s is required", EnvProviderBaseURL)
	}
	if _, err := time.LoadLocation(cfg.ProviderTimezone); err != nil {
		return fmt.Errorf("invalid %s %q: %v", EnvProviderTimezone, cfg.ProviderTimezone, err)
	}
	if cfg.TokenTTL <= 0 {
		return fmt.Errorf("%s must be positive, got %s", EnvTokenTTL, cfg.TokenTTL)
	}
	if cfg.RateLimitRequests <= 0 {
		return fmt.Errorf("%s must be positive, got %d", EnvRateLimitRequests, cfg.RateLimitRequests)
	}
	return nil
}

// LogConfiguration logs all non-secret configuration values at startup.
func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"mongo_database", cfg.MongoDatabaseName,
		"port", cfg.Port,
		"provider_base_url", cfg.ProviderBaseURL,
		"provider_timeout", cfg.ProviderTimeout,
		"provider_timezone", cfg.ProviderTimezone,
		"token_ttl", cfg.TokenTTL,
		"hide_window", cfg.HideWindow,
		"excluded_program_ids", cfg.ExcludedProgramIDs,
		"reserved_staff_id", cfg.ReservedStaffID,
		"search_events_topic", cfg.SearchEventsTopic,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
	)
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.CloseMongo(cfg.Log, cfg.ShutdownTimeout)
}

// ProviderLocation resolves the provider timezone. Validate has already
// checked it, so failures here fall back to UTC instead of erroring.
func (cfg *Config) ProviderLocation() *time.Location {
	loc, err := time.LoadLocation(cfg.ProviderTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnvStr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
