package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port     int
	LogLevel string
	LogDir   string

	// Database is optional: without it the app runs on the in-memory store.
	DBEnabled  bool
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	CatalogPath string

	// APIKey protects the HTTP API. Empty disables auth for local
	// single-user use.
	APIKey string

	// Persona backend. Without an API key the scripted client serves all
	// messages.
	GenAIAPIKey string
	GenAIModel  string

	AgentHourlyBudget int
	AgentCallTimeout  time.Duration

	SyncInterval time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogDir:      getEnv("LOG_DIR", "logs"),
		DBEnabled:   getEnv("DB_ENABLED", "false") == "true",
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "stackgarden"),
		CatalogPath: getEnv("CATALOG_PATH", ConfigPathCatalog),
		APIKey:      getEnv("API_KEY", ""),
		GenAIAPIKey: getEnv("GENAI_API_KEY", ""),
		GenAIModel:  getEnv("GENAI_MODEL", ""),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	budgetStr := getEnv("AGENT_HOURLY_BUDGET", "20")
	budget, err := strconv.Atoi(budgetStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AGENT_HOURLY_BUDGET value: %w", err)
	}
	cfg.AgentHourlyBudget = budget

	timeoutStr := getEnv("AGENT_CALL_TIMEOUT", "3s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AGENT_CALL_TIMEOUT value: %w", err)
	}
	cfg.AgentCallTimeout = timeout

	syncStr := getEnv("SYNC_INTERVAL", "30s")
	syncInterval, err := time.ParseDuration(syncStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL value: %w", err)
	}
	cfg.SyncInterval = syncInterval

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
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
