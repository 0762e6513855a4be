package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Store driver names accepted by STORE_DRIVER.
const (
	DriverSheets = "sheets"
	DriverMemory = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Sheets  SheetsConfig
	Storage StorageConfig
	CORS    CORSConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string
	Env  string
}

// SheetsConfig holds the connection settings for the backing spreadsheet.
// The private key may carry literal `\n` sequences (the usual way it is
// pasted into env vars); the sheets client normalizes them.
type SheetsConfig struct {
	Driver        string
	SpreadsheetID string
	ClientEmail   string
	PrivateKey    string
}

// StorageConfig holds the object storage settings used for signed uploads.
type StorageConfig struct {
	Bucket    string
	UploadTTL time.Duration
}

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	Origins []string
}

// Load reads configuration from environment variables.
// It uses viper to read values and provides sensible defaults for development.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_DRIVER", DriverSheets)
	v.SetDefault("UPLOAD_URL_TTL_MINUTES", 15)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000,http://localhost:3001")

	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
			Env:  v.GetString("ENV"),
		},
		Sheets: SheetsConfig{
			Driver:        strings.ToLower(v.GetString("STORE_DRIVER")),
			SpreadsheetID: v.GetString("SPREADSHEET_ID"),
			ClientEmail:   v.GetString("GOOGLE_CLIENT_EMAIL"),
			PrivateKey:    v.GetString("GOOGLE_PRIVATE_KEY"),
		},
		Storage: StorageConfig{
			Bucket:    v.GetString("GCS_BUCKET"),
			UploadTTL: time.Duration(v.GetInt("UPLOAD_URL_TTL_MINUTES")) * time.Minute,
		},
		CORS: CORSConfig{
			Origins: parseOrigins(v.GetString("CORS_ORIGINS")),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present and valid.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Sheets.Driver {
	case DriverMemory:
		// Nothing else to check; the in-memory store needs no credentials.
	case DriverSheets:
		if c.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("SPREADSHEET_ID is required")
		}
		if c.Sheets.ClientEmail == "" {
			return fmt.Errorf("GOOGLE_CLIENT_EMAIL is required")
		}
		if c.Sheets.PrivateKey == "" {
			return fmt.Errorf("GOOGLE_PRIVATE_KEY is required")
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", DriverSheets, DriverMemory)
	}

	if c.Storage.UploadTTL <= 0 {
		return fmt.Errorf("UPLOAD_URL_TTL_MINUTES must be positive")
	}

	if len(c.CORS.Origins) == 0 {
		return fmt.Errorf("CORS_ORIGINS is required")
	}

	return nil
}

// parseOrigins splits a comma-separated string of origins into a slice.
func parseOrigins(origins string) []string {
	if origins == "" {
		return []string{}
	}

	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
