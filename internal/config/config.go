// Package config provides configuration loading and management for the application.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/yourorg/swap-quote-ea/internal/types"
)

// Config holds all application configuration
type Config struct {
	// HTTP server port
	Port string

	// Base URL of the upstream DEX aggregator API
	UpstreamURL string

	// Optional API key sent as a Bearer token to the upstream
	UpstreamAPIKey string

	// OpenTelemetry endpoint for observability
	OtelEndpoint string

	// Timeout applied to each quote request
	RequestTimeout time.Duration

	// Slippage tolerance applied when the caller supplies none, basis points
	DefaultSlippageBps int64

	// Exchange-rate plausibility threshold: reject quotes whose normalized
	// output exceeds the input by more than this multiple
	MaxRateMultiple int64

	// Circuit breaker settings for upstream health
	BreakerFailureThreshold int
	BreakerCooldown         time.Duration

	// Rate limiting for the /quote endpoint
	RateLimitRPS   float64
	RateLimitBurst int
}

// Load creates a new Config from environment variables
func Load() Config {
	return Config{
		Port:                    GetEnvOrDefault("PORT", "8080"),
		UpstreamURL:             GetEnvOrDefault("OPENOCEAN_BASE_URL", "https://open-api.openocean.finance/v4"),
		UpstreamAPIKey:          os.Getenv("OPENOCEAN_API_KEY"),
		OtelEndpoint:            GetEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		RequestTimeout:          GetEnvAsDuration("REQUEST_TIMEOUT", 15*time.Second),
		DefaultSlippageBps:      int64(GetEnvAsInt("DEFAULT_SLIPPAGE_BPS", 100)),
		MaxRateMultiple:         int64(GetEnvAsInt("MAX_RATE_MULTIPLE", 1000)),
		BreakerFailureThreshold: GetEnvAsInt("BREAKER_FAILURE_THRESHOLD", 5),
		BreakerCooldown:         GetEnvAsDuration("BREAKER_COOLDOWN", 1*time.Minute),
		RateLimitRPS:            GetEnvAsFloat("RATE_LIMIT_RPS", 10.0),
		RateLimitBurst:          GetEnvAsInt("RATE_LIMIT_BURST", 20),
	}
}

// RPCEndpoint returns the RPC URL for a chain, honoring the per-chain
// environment override before falling back to the public default.
func RPCEndpoint(chain types.Chain) string {
	if url, exists := GetEnv(chain.RPCEnv); exists && url != "" {
		return url
	}
	return chain.DefaultRPC
}

// GetEnv retrieves an environment variable and whether it exists
func GetEnv(key string) (string, bool) {
	value, exists := os.LookupEnv(key)
	return value, exists
}

// GetEnvOrDefault retrieves an environment variable or returns the default value if not set
func GetEnvOrDefault(key, defaultValue string) string {
	if value, exists := GetEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt retrieves an environment variable as an integer with a default value
func GetEnvAsInt(key string, defaultValue int) int {
	if value, exists := GetEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// GetEnvAsFloat retrieves an environment variable as a float with a default value
func GetEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := GetEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// GetEnvAsDuration retrieves an environment variable as a duration with a default value
func GetEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := GetEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
