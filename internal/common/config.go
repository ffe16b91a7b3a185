package common

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Ledger   LedgerConfig
	Intake   IntakeConfig
	Registry RegistryConfig
	LLM      LLMConfig
	// BusinessConfigPath points to the optional YAML with the rep roster
	// and equipment table. Empty means compiled-in defaults.
	BusinessConfigPath string
}

// DatabaseConfig holds the Postgres ledger backend configuration
type DatabaseConfig struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	DialTimeout     time.Duration
}

// LedgerConfig selects and configures the ledger backend
type LedgerConfig struct {
	Backend  string // "xlsx" or "postgres"
	XLSXPath string
}

// IntakeConfig holds the contract intake directory configuration
type IntakeConfig struct {
	Roots        []string
	Debounce     time.Duration
	PollInterval time.Duration
	Workers      int
}

// RegistryConfig holds the processed-file registry configuration
type RegistryConfig struct {
	Path string
}

// LLMConfig holds the AI extraction pass configuration
type LLMConfig struct {
	Enabled     bool
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			DSN:             getEnv("DB_URL", ""),
			MaxConns:        getEnvAsInt32("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt32("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
			DialTimeout:     getEnvAsDuration("DB_DIAL_TIMEOUT", 3*time.Second),
		},
		Ledger: LedgerConfig{
			Backend:  getEnv("LEDGER_BACKEND", "xlsx"),
			XLSXPath: getEnv("LEDGER_XLSX_PATH", "./ledgers.xlsx"),
		},
		Intake: IntakeConfig{
			Roots:        getEnvAsList("CONTRACTS_DIRS", []string{"./contracts"}),
			Debounce:     getEnvAsDuration("INTAKE_DEBOUNCE", 2*time.Second),
			PollInterval: getEnvAsDuration("INTAKE_POLL_INTERVAL", 5*time.Minute),
			Workers:      getEnvAsInt("INTAKE_WORKERS", 2),
		},
		Registry: RegistryConfig{
			Path: getEnv("REGISTRY_PATH", "./processed.db"),
		},
		LLM: LLMConfig{
			Enabled:     getEnvAsBool("OPENAI_ENABLED", true),
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 60*time.Second),
		},
		BusinessConfigPath: getEnv("BUSINESS_CONFIG", ""),
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		var out []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	switch c.Ledger.Backend {
	case "xlsx":
		if c.Ledger.XLSXPath == "" {
			return NewAppError("CONFIG_ERROR", "LEDGER_XLSX_PATH is required for the xlsx backend", ErrInvalidInput)
		}
	case "postgres":
		if c.Database.DSN == "" {
			return NewAppError("CONFIG_ERROR", "DB_URL is required for the postgres backend", ErrInvalidInput)
		}
	default:
		return NewAppError("CONFIG_ERROR", "LEDGER_BACKEND must be xlsx or postgres", ErrInvalidInput)
	}
	if c.LLM.Enabled && c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required when the AI pass is enabled", ErrInvalidInput)
	}
	if len(c.Intake.Roots) == 0 {
		return NewAppError("CONFIG_ERROR", "CONTRACTS_DIRS is required", ErrInvalidInput)
	}
	if c.Registry.Path == "" {
		return NewAppError("CONFIG_ERROR", "REGISTRY_PATH is required", ErrInvalidInput)
	}
	return nil
}
