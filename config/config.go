// Package config provides configuration management for the cargo service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DateLayout is the layout of SIMULATION_START_DATE.
const DateLayout = "2006-01-02"

// Config holds the complete application configuration.
type Config struct {
	Server     ServerConfig
	Log        LogConfig
	Cache      CacheConfig
	Database   DatabaseConfig
	Planner    PlannerConfig
	Simulation SimulationConfig
	Tracing    TracingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port           string
	RateLimit      int
	RateWindow     time.Duration
	UserRateLimit  int
	RequestTimeout time.Duration
	MaxUploadBytes int64
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig holds the item lookup cache configuration. A zero size disables it.
type CacheConfig struct {
	ItemSize int
	ItemTTL  time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// PlannerConfig tunes the placement and return planners.
type PlannerConfig struct {
	// LockTimeout bounds container lock waits when the request carries no deadline.
	LockTimeout             time.Duration
	AccessPriorityThreshold int
	RearrangeMaxMoves       int
	KnapsackMassResolution  float64
}

// SimulationConfig holds the simulated clock configuration.
type SimulationConfig struct {
	StartDate time.Time
}

// TracingConfig holds OpenTelemetry configuration.
type TracingConfig struct {
	Enabled     bool
	Exporter    string
	Endpoint    string
	SampleRatio float64
	ServiceName string
}

// Load creates a Config from environment variables. Variables from the file
// named by ENV_FILE (default .env) are applied first without overriding the
// process environment.
func Load() Config {
	loadEnvFile(getEnv("ENV_FILE", ".env"))

	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			UserRateLimit:  getEnvInt("USER_RATE_LIMIT", 0),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:    getEnv("SWAGGER_USER", ""),
			SwaggerPass:    getEnv("SWAGGER_PASS", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Cache: CacheConfig{
			ItemSize: getEnvInt("ITEM_CACHE_SIZE", 1000),
			ItemTTL:  getEnvDuration("ITEM_CACHE_TTL", 5*time.Minute),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "cargo_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Planner: PlannerConfig{
			LockTimeout:             getEnvDuration("LOCK_TIMEOUT", 2*time.Second),
			AccessPriorityThreshold: getEnvInt("ACCESS_PRIORITY_THRESHOLD", 80),
			RearrangeMaxMoves:       getEnvInt("REARRANGE_MAX_MOVES", 5),
			KnapsackMassResolution:  getEnvFloat("KNAPSACK_MASS_RESOLUTION", 0.1),
		},
		Simulation: SimulationConfig{
			StartDate: getEnvDate("SIMULATION_START_DATE", today()),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvBool("TRACING_ENABLED", false),
			Exporter:    getEnv("TRACING_EXPORTER", "stdout"),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1),
			ServiceName: getEnv("SERVICE_NAME", "cargo-service"),
		},
	}
}

func loadEnvFile(path string) {
	if path == "" {
		return
	}
	// Missing or malformed files leave the process environment as is.
	_ = godotenv.Load(path)
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvDate(key string, defaultValue time.Time) time.Time {
	if v := os.Getenv(key); v != "" {
		if d, err := time.Parse(DateLayout, v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
