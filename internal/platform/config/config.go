package config

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds application configuration. It is built once at startup and passed
// explicitly to the components that need it.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      slog.Level
	StorageDriver string
	DatabaseURL   string
	EnableDBCheck bool
	AutoMigrate   bool

	CORSAllowedOrigins []string

	// Auth is disabled when JWTSecret is empty.
	JWTSecret         string
	JWTIssuer         string
	JWTExpiryDuration time.Duration

	// Language model integration. The assistant endpoints answer 503 when OpenAIAPIKey is empty,
	// except categorization which falls back to the local classifier.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMTimeout    time.Duration
	LLMCacheTTL   time.Duration
	AIRateLimit   string

	InvoiceStorageDir string

	PosthogAPIKey   string
	PosthogEndpoint string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORAGE_DRIVER", StorageDriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "simplefi")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("OPENAI_MODEL", "gpt-4")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("LLM_CACHE_TTL", "10m")
	v.SetDefault("AI_RATE_LIMIT", "20-M")
	v.SetDefault("INVOICE_STORAGE_DIR", "./invoices")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:              v.GetString("PORT"),
		IsProduction:      v.GetBool("IS_PRODUCTION"),
		StorageDriver:     strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		DatabaseURL:       v.GetString("PGSQL_URL"),
		EnableDBCheck:     v.GetBool("ENABLE_DB_CHECK"),
		AutoMigrate:       v.GetBool("AUTO_MIGRATE"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		JWTIssuer:         v.GetString("JWT_ISSUER"),
		OpenAIAPIKey:      v.GetString("OPENAI_API_KEY"),
		OpenAIBaseURL:     strings.TrimRight(v.GetString("OPENAI_BASE_URL"), "/"),
		OpenAIModel:       v.GetString("OPENAI_MODEL"),
		AIRateLimit:       v.GetString("AI_RATE_LIMIT"),
		InvoiceStorageDir: v.GetString("INVOICE_STORAGE_DIR"),
		PosthogAPIKey:     v.GetString("POSTHOG_API_KEY"),
		PosthogEndpoint:   v.GetString("POSTHOG_ENDPOINT"),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid LOG_LEVEL ('%s'). Defaulting to info.\n", v.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.LLMTimeout = durationOrDefault(v, "LLM_TIMEOUT", 30*time.Second)
	cfg.LLMCacheTTL = durationOrDefault(v, "LLM_CACHE_TTL", 10*time.Minute)

	for _, origin := range strings.Split(v.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API authentication is disabled.")
	}
	if cfg.OpenAIAPIKey == "" {
		log.Println("Warning: OPENAI_API_KEY not set. Assistant endpoints will be unavailable.")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks option combinations that would fail later at startup.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverPostgres:
		if c.DatabaseURL == "" {
			return errors.New("PGSQL_URL must be set when STORAGE_DRIVER is postgres")
		}
	case StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (expected %s or %s)", c.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}
	if c.Port == "" {
		return errors.New("PORT must not be empty")
	}
	if c.IsProduction && c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set in production")
	}
	return nil
}

func durationOrDefault(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}
