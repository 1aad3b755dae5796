package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	DatabaseURL   string
	Redis         RedisConfig
	PassSystem    PassSystemConfig
	KafkaBrokers  []string
	AuditTopic    string
}

// RedisConfig holds Redis connection settings. An empty URL means Redis is
// not configured and the speaker cache is skipped.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PassSystemConfig holds the remote quota oracle endpoint settings.
// An empty URL means the in-process oracle backed by the request store is
// used instead (development and tests).
type PassSystemConfig struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// SpeakerCacheTTL bounds how long resolved speaker records may be served from
// Redis before the directory is consulted again.
var SpeakerCacheTTL = 5 * time.Minute

// SpeakerSourceTimeout bounds each attempt against the primary speaker
// directory before the resolver falls back to the bundled dataset.
var SpeakerSourceTimeout = 5 * time.Second

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("HASHPASS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		for _, b := range strings.Split(raw, ",") {
			if b = strings.TrimSpace(b); b != "" {
				brokers = append(brokers, b)
			}
		}
	}

	auditTopic := os.Getenv("AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "matchmaking.audit"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		PassSystem: PassSystemConfig{
			URL:     os.Getenv("PASS_SYSTEM_URL"),
			APIKey:  os.Getenv("PASS_SYSTEM_API_KEY"),
			Timeout: envDuration("PASS_SYSTEM_TIMEOUT", 5*time.Second),
		},
		KafkaBrokers: brokers,
		AuditTopic:   auditTopic,
	}
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil {
			return v
		}
	}
	return fallback
}
