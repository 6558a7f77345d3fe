package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	strs "nameorigin/pkg/platform/strings"
)

// Cache backends.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultCacheTTL is how long name and country lookups stay fresh.
const DefaultCacheTTL = 24 * time.Hour

// Server captures process level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	APIPrefix string

	Auth       AuthConfig
	Upstream   UpstreamConfig
	Cache      CacheConfig
	Redis      RedisConfig
	Postgres   PostgresConfig
	Popularity PopularityConfig
}

// AuthConfig configures bearer token verification.
type AuthConfig struct {
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
}

// UpstreamConfig points at the name-origin and country-metadata services.
type UpstreamConfig struct {
	NationalizeURL    string
	NationalizeAPIKey string
	RestCountriesURL  string
	Timeout           time.Duration
}

// CacheConfig selects and sizes the lookup cache.
type CacheConfig struct {
	Backend    string
	TTL        time.Duration
	MaxEntries int
	KeyPrefix  string
}

// RedisConfig configures the shared Redis client.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the shared database handle.
type PostgresConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// PopularityConfig configures popularity tracking. A zero Window counts all-time.
type PopularityConfig struct {
	Backend      string
	Window       time.Duration
	KafkaBrokers []string
	KafkaTopic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present.
func FromEnv() (Server, error) {
	_ = godotenv.Load()

	cfg := Server{
		Addr:      getEnv("ADDR", ":8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		APIPrefix: strings.TrimRight(getEnv("API_PREFIX", "/api/v1"), "/"),
		Auth: AuthConfig{
			// Use a default for development - should be overridden in production
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     os.Getenv("JWT_ISSUER"),
			JWTAudience:   os.Getenv("JWT_AUDIENCE"),
		},
		Upstream: UpstreamConfig{
			NationalizeURL:    getEnv("NATIONALIZE_URL", "https://api.nationalize.io"),
			NationalizeAPIKey: os.Getenv("NATIONALIZE_API_KEY"),
			RestCountriesURL:  getEnv("RESTCOUNTRIES_URL", "https://restcountries.com/v3.1"),
			Timeout:           getDurationEnv("UPSTREAM_TIMEOUT", 5*time.Second),
		},
		Cache: CacheConfig{
			Backend:    strings.ToLower(getEnv("CACHE_BACKEND", BackendMemory)),
			TTL:        getDurationEnv("CACHE_TTL", DefaultCacheTTL),
			MaxEntries: getIntEnv("CACHE_MAX_ENTRIES", 10000),
			KeyPrefix:  getEnv("CACHE_KEY_PREFIX", "nameorigin:"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getIntEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: getIntEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDurationEnv("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  getDurationEnv("REDIS_READ_TIMEOUT", time.Second),
			WriteTimeout: getDurationEnv("REDIS_WRITE_TIMEOUT", time.Second),
		},
		Postgres: PostgresConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getIntEnv("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("DATABASE_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DATABASE_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Popularity: PopularityConfig{
			Backend:      strings.ToLower(getEnv("POPULARITY_BACKEND", BackendMemory)),
			Window:       getDurationEnv("POPULARITY_WINDOW", 0),
			KafkaBrokers: strs.SplitList(os.Getenv("POPULARITY_KAFKA_BROKERS"), ","),
			KafkaTopic:   getEnv("POPULARITY_KAFKA_TOPIC", "name-lookups"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate rejects combinations that cannot start.
func (c Server) Validate() error {
	switch c.Cache.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("CACHE_BACKEND=redis requires REDIS_URL")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("CACHE_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.Cache.Backend)
	}

	switch c.Popularity.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("POPULARITY_BACKEND=postgres requires DATABASE_URL")
		}
	default:
		return fmt.Errorf("unknown POPULARITY_BACKEND %q", c.Popularity.Backend)
	}

	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive")
	}
	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if c.Popularity.Window < 0 {
		return fmt.Errorf("POPULARITY_WINDOW must not be negative")
	}
	if c.Auth.JWTSigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
