package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendSQL   = "sql"
	BackendLocal = "local"

	DefaultPort           = 8930
	DefaultLocalStorePath = "dentalsimple.db"
	SessionKeyLength      = 32
)

// AppConfig holds the application configuration
type AppConfig struct {
	Env            string
	Port           int
	BearerToken    string
	SessionKey     []byte
	StoreBackend   string
	DBDriver       string
	DBURL          string
	LocalStorePath string
	RedisAddress   string
	RateLimitRPS   float64
	RateLimitBurst int
	CorsOrigins    []string
	SMTP           SMTPConfig
}

// SMTPConfig holds the outgoing mail settings. An empty Host disables mail.
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
}

// GetBearerToken returns the BearerToken from the config
func (c *AppConfig) GetBearerToken() string {
	return c.BearerToken
}

// IsDevelopment reports whether verbose logging should be enabled.
func (c *AppConfig) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and builds the AppConfig from environment variables.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the AppConfig from the current environment only.
func FromEnv() (*AppConfig, error) {
	bearerToken := os.Getenv("BEARER_TOKEN")
	if bearerToken == "" {
		return nil, errors.New("missing BEARER_TOKEN environment variable")
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if len(sessionKey) != SessionKeyLength {
		return nil, fmt.Errorf("SESSION_KEY must be %d bytes long, got %d", SessionKeyLength, len(sessionKey))
	}

	cfg := &AppConfig{
		Env:            os.Getenv("ENV"),
		Port:           getEnvAsInt("PORT", DefaultPort),
		BearerToken:    bearerToken,
		SessionKey:     []byte(sessionKey),
		StoreBackend:   getEnv("STORE_BACKEND", BackendSQL),
		DBDriver:       getEnv("DB_DRIVER", "postgres"),
		DBURL:          os.Getenv("DB_URL"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", DefaultLocalStorePath),
		RedisAddress:   os.Getenv("REDIS_URL"),
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 15),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 30),
		CorsOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvAsInt("SMTP_PORT", 587),
			User:     os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASS"),
		},
	}

	switch cfg.StoreBackend {
	case BackendSQL:
		if cfg.DBURL == "" {
			return nil, errors.New("missing DB_URL environment variable")
		}
	case BackendLocal:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
	}

	return cfg, nil
}

func getEnv(name, defaultValue string) string {
	if value, exists := os.LookupEnv(name); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if value, exists := os.LookupEnv(name); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Warn().Str("key", name).Int("default", defaultValue).Msg("invalid integer value, using default")
	}
	return defaultValue
}

func getEnvAsFloat(name string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(name); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
		log.Warn().Str("key", name).Float64("default", defaultValue).Msg("invalid float value, using default")
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
