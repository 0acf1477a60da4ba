package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Mongo  MongoConfig
	Server ServerConfig
	Auth   AuthConfig
	Admin  AdminConfig
	Kafka  KafkaConfig
	Upload UploadConfig
	SMTP   SMTPConfig
}

type MongoConfig struct {
	URI     string
	DBName  string
	Timeout time.Duration
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	WebDir       string
}

type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
	CookieName  string
}

// AdminConfig seeds the administrative account at startup. The account
// is a regular user document with the admin role, not a login bypass.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// KafkaConfig controls order event publishing. Publishing is disabled
// when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

type UploadConfig struct {
	Dir     string
	BaseURL string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// Load reads configuration from the environment, honoring a .env file
// when present.
func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		Mongo: MongoConfig{
			URI:     getEnv("MONGO_URI", "mongodb://localhost:27017"),
			DBName:  getEnv("MONGO_DBNAME", "ecshop"),
			Timeout: getEnvDuration("MONGO_TIMEOUT", 10*time.Second),
		},
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			WebDir:       os.Getenv("WEB_DIR"),
		},
		Auth: AuthConfig{
			JWTSecret:   os.Getenv("JWT_SECRET"),
			TokenExpiry: getEnvDuration("TOKEN_EXPIRY", time.Hour),
			CookieName:  getEnv("AUTH_COOKIE_NAME", "token"),
		},
		Admin: AdminConfig{
			Email:    os.Getenv("ADMIN_EMAIL"),
			Password: os.Getenv("ADMIN_PASSWORD"),
			Name:     getEnv("ADMIN_NAME", "Admin User"),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "order-events"),
			GroupID: getEnv("KAFKA_GROUP_ID", "order-notifier"),
		},
		Upload: UploadConfig{
			Dir:     getEnv("UPLOAD_DIR", "./uploads"),
			BaseURL: getEnv("UPLOAD_BASE_URL", "/static"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getEnv("SMTP_FROM", "no-reply@ec-shop.local"),
		},
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters long")
	}

	return cfg, nil
}

// EventsEnabled reports whether order events should be published.
func (c *Config) EventsEnabled() bool {
	return len(c.Kafka.Brokers) > 0
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitNonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
