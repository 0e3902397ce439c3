package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Config is the service configuration, read from environment variables.
// A .env file in the working directory is loaded by godotenv/autoload in
// cmd/api before Load runs.
type Config struct {
	Port        string
	ServiceName string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	DynamoDBEndpoint   string
	OrdersTable        string

	// RedisAddr empty disables the distributed lock; an in-process lock is
	// used instead.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	OrderLockTTL  time.Duration

	// KafkaBrokers empty disables status events.
	KafkaBrokers     []string
	KafkaStatusTopic string

	// JaegerEndpoint empty disables trace export.
	JaegerEndpoint string

	LogLevel  string
	LogFormat string
}

func Load() (Config, error) {
	cfg := Config{
		Port:               getenvDefault("PORT", "8080"),
		ServiceName:        getenvDefault("SERVICE_NAME", "atelier-lag"),
		AWSRegion:          getenvDefault("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:     getenvDefault("AWS_ACCESS_KEY_ID", "local"),
		AWSSecretAccessKey: getenvDefault("AWS_SECRET_ACCESS_KEY", "local"),
		DynamoDBEndpoint:   strings.TrimSpace(os.Getenv("DYNAMODB_ENDPOINT")),
		OrdersTable:        getenvDefault("ORDERS_TABLE", "orders"),
		RedisAddr:          strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		KafkaBrokers:       splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaStatusTopic:   getenvDefault("KAFKA_STATUS_TOPIC", "order-status-changed"),
		JaegerEndpoint:     strings.TrimSpace(os.Getenv("JAEGER_ENDPOINT")),
		LogLevel:           strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		LogFormat:          strings.ToLower(getenvDefault("LOG_FORMAT", "json")),
	}

	db, err := strconv.Atoi(getenvDefault("REDIS_DB", "0"))
	if err != nil || db < 0 {
		return Config{}, errors.Errorf("invalid REDIS_DB %q", os.Getenv("REDIS_DB"))
	}
	cfg.RedisDB = db

	ttl, err := time.ParseDuration(getenvDefault("ORDER_LOCK_TTL", "5s"))
	if err != nil {
		return Config{}, errors.Wrap(err, "invalid ORDER_LOCK_TTL")
	}
	if ttl <= 0 {
		return Config{}, errors.Errorf("ORDER_LOCK_TTL must be positive, got %s", ttl)
	}
	cfg.OrderLockTTL = ttl

	switch cfg.LogFormat {
	case "json", "console":
	default:
		return Config{}, errors.Errorf("invalid LOG_FORMAT %q", cfg.LogFormat)
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
