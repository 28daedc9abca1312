package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string // "json" or "text"
	LogDir      string
	ServiceName string
	Version     string
	Environment string // "dev", "staging", "prod"

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey string // API key for authentication

	// TrustedProxies lists proxy IPs whose X-Forwarded-For headers are honored
	TrustedProxies []string

	// MaxSessionHours bounds open-ended vocational sessions
	MaxSessionHours int

	// BaseCapacity is the slot count of a fresh inventory before equipment bonuses
	BaseCapacity int

	// DeadLetterPath is where events that exhaust publish retries are written
	DeadLetterPath string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		LogDir:         getEnv("LOG_DIR", "logs"),
		ServiceName:    getEnv("SERVICE_NAME", "wayfarer"),
		Version:        getEnv("SERVICE_VERSION", "dev"),
		Environment:    getEnv("ENVIRONMENT", "dev"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "wayfarer"),
		APIKey:         getEnv("API_KEY", ""),
		DeadLetterPath: getEnv("EVENT_DEAD_LETTER_PATH", "logs/deadletter.jsonl"),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	maxSession, err := getEnvInt("ACTIVITY_MAX_SESSION_HOURS", DefaultMaxSessionHours)
	if err != nil {
		return nil, err
	}
	if maxSession <= 0 {
		return nil, fmt.Errorf("ACTIVITY_MAX_SESSION_HOURS must be positive, got %d", maxSession)
	}
	cfg.MaxSessionHours = maxSession

	baseCapacity, err := getEnvInt("INVENTORY_BASE_CAPACITY", DefaultBaseCapacity)
	if err != nil {
		return nil, err
	}
	if baseCapacity <= 0 {
		return nil, fmt.Errorf("INVENTORY_BASE_CAPACITY must be positive, got %d", baseCapacity)
	}
	cfg.BaseCapacity = baseCapacity

	// Validate API key is set
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, trimmed)
			}
		}
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
