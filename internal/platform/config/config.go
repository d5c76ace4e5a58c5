package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultHeightsPerDay matches a five-second tick: 17280 heights per day.
const DefaultHeightsPerDay = 17280

// Server captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string

	// GenesisAdmin is the deploying identity seeded as the first admin.
	// This identity can never be removed from the admin set.
	GenesisAdmin string

	// HeightsPerDay converts validity periods in days into height units.
	HeightsPerDay uint64

	PostgresURL    string
	Redis          RedisConfig
	Kafka          KafkaConfig
	VerifyCacheTTL time.Duration

	// VerifyRateLimit caps anonymous verification lookups per client IP per
	// minute. Zero disables the limiter.
	VerifyRateLimit int
}

// RedisConfig configures the optional verification cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event sink.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func FromEnv() Server {
	addr := os.Getenv("ATTEST_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("ATTEST_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	heightsPerDay := uint64(DefaultHeightsPerDay)
	if raw := os.Getenv("ATTEST_HEIGHTS_PER_DAY"); raw != "" {
		if v, err := strconv.ParseUint(raw, 10, 64); err == nil && v > 0 {
			heightsPerDay = v
		}
	}

	cacheTTL := 30 * time.Second
	if raw := os.Getenv("ATTEST_VERIFY_CACHE_TTL"); raw != "" {
		if v, err := time.ParseDuration(raw); err == nil && v > 0 {
			cacheTTL = v
		}
	}

	verifyRateLimit := 120
	if raw := os.Getenv("ATTEST_VERIFY_RATE_LIMIT"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			verifyRateLimit = v
		}
	}

	var brokers []string
	if raw := os.Getenv("ATTEST_KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}
	topic := os.Getenv("ATTEST_KAFKA_TOPIC")
	if topic == "" {
		topic = "attest.audit"
	}

	return Server{
		Addr:          addr,
		JWTSigningKey: jwtSigningKey,
		GenesisAdmin:  os.Getenv("ATTEST_GENESIS_ADMIN"),
		HeightsPerDay: heightsPerDay,
		PostgresURL:   os.Getenv("ATTEST_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("ATTEST_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   topic,
		},
		VerifyCacheTTL:  cacheTTL,
		VerifyRateLimit: verifyRateLimit,
	}
}
