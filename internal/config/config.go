package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	Gemini  GeminiConfig
	Route   RouteConfig
	Cache   CacheConfig
	Sheets  SheetsConfig
	MongoDB MongoDBConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// GeminiConfig contains credentials and options for the Gemini API.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RouteConfig describes the fixed origin airport every route is planned from.
type RouteConfig struct {
	OriginIATA    string
	OriginCity    string
	OriginCountry string
}

// CacheConfig holds evaluation-cache settings.
type CacheConfig struct {
	TTL       time.Duration
	SweepCron string
}

// SheetsConfig contains configuration for the optional decision log
// spreadsheet. Both fields must be set for the log to be enabled.
type SheetsConfig struct {
	CredentialsPath string
	SpreadsheetID   string
}

// Enabled reports whether the spreadsheet decision log is configured.
func (c SheetsConfig) Enabled() bool {
	return c.CredentialsPath != "" && c.SpreadsheetID != ""
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	ttl, err := time.ParseDuration(getenvWithDefault("EVALUATION_CACHE_TTL", "30m"))
	if err != nil {
		return nil, fmt.Errorf("invalid EVALUATION_CACHE_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Gemini: GeminiConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Model:   getenvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
			BaseURL: getenvWithDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		},
		Route: RouteConfig{
			OriginIATA:    getenvWithDefault("ORIGIN_IATA", "BKK"),
			OriginCity:    getenvWithDefault("ORIGIN_CITY", "Bangkok"),
			OriginCountry: getenvWithDefault("ORIGIN_COUNTRY", "Thailand"),
		},
		Cache: CacheConfig{
			TTL:       ttl,
			SweepCron: getenvWithDefault("CACHE_SWEEP_CRON", "*/15 * * * *"),
		},
		Sheets: SheetsConfig{
			CredentialsPath: os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH"),
			SpreadsheetID:   os.Getenv("GOOGLE_SHEET_DECISION_LOG_ID"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "airline_calculate"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Gemini.APIKey == "":
		return errors.New("GEMINI_API_KEY must be provided")
	case c.Gemini.Model == "":
		return errors.New("GEMINI_MODEL must not be empty")
	case c.Gemini.BaseURL == "":
		return errors.New("GEMINI_BASE_URL must not be empty")
	}

	switch {
	case c.Route.OriginIATA == "":
		return errors.New("ORIGIN_IATA must be provided")
	case c.Route.OriginCity == "":
		return errors.New("ORIGIN_CITY must be provided")
	case c.Route.OriginCountry == "":
		return errors.New("ORIGIN_COUNTRY must be provided")
	}
	if len(c.Route.OriginIATA) != 3 {
		return fmt.Errorf("ORIGIN_IATA must be a 3-letter IATA code, got %q", c.Route.OriginIATA)
	}

	if c.Cache.TTL <= 0 {
		return errors.New("EVALUATION_CACHE_TTL must be positive")
	}
	if c.Cache.SweepCron == "" {
		return errors.New("CACHE_SWEEP_CRON must be provided")
	}

	// The spreadsheet decision log is optional, but half a configuration is a
	// deployment mistake worth failing on.
	if (c.Sheets.CredentialsPath != "" || c.Sheets.SpreadsheetID != "") && !c.Sheets.Enabled() {
		return errors.New("GOOGLE_SHEETS_CREDENTIALS_PATH and GOOGLE_SHEET_DECISION_LOG_ID must be set together")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
