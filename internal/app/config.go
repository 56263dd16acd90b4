package app

import (
	"os"
	"time"
)

// Config is read from the environment once at startup; godotenv in main
// fills the environment from .env during local development.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	JWTSecret      string
	GoogleClientID string

	RBACModelPath  string
	RBACPolicyPath string

	Timezone string

	OutboxPollInterval time.Duration
	ConsumerGroupID    string
}

func LoadConfig() Config {
	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "studygroup"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		JWTSecret:      os.Getenv("JWT_SECRET"),
		GoogleClientID: os.Getenv("GOOGLE_CLIENT_ID"),

		RBACModelPath:  getEnv("RBAC_MODEL_PATH", "config/rbac/model.conf"),
		RBACPolicyPath: getEnv("RBAC_POLICY_PATH", "config/rbac/policy.csv"),

		Timezone: getEnv("TZ", "Asia/Seoul"),

		OutboxPollInterval: getDurationEnv("OUTBOX_POLL_INTERVAL", 3*time.Second),
		ConsumerGroupID:    getEnv("CONSUMER_GROUP_ID", "study-dashboard-stats"),
	}
}

func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
