package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Transport constants
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// BackendSettings configuration for the catalog HTTP backend
type BackendSettings struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 means no timeout
}

// CatalogSettings configuration for filtering, pagination and option loading
type CatalogSettings struct {
	PageSize         int  `mapstructure:"page_size"`
	VisiblePages     int  `mapstructure:"visible_pages"`
	CompactWidth     int  `mapstructure:"compact_width"`
	MaxParallelLoads int  `mapstructure:"max_parallel_loads"`
	Preload          bool `mapstructure:"preload"`
}

// Settings application settings
type Settings struct {
	Transport string          `mapstructure:"transport"`
	Host      string          `mapstructure:"host"`
	Port      int             `mapstructure:"port"`
	Backend   BackendSettings `mapstructure:"backend"`
	Catalog   CatalogSettings `mapstructure:"catalog"`
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > .env file > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("transport", TransportStdio)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)

	v.SetDefault("backend.base_url", "http://localhost:8000")
	v.SetDefault("backend.timeout", time.Duration(0))

	v.SetDefault("catalog.page_size", 15)
	v.SetDefault("catalog.visible_pages", 5)
	v.SetDefault("catalog.compact_width", 768)
	v.SetDefault("catalog.max_parallel_loads", 4)
	v.SetDefault("catalog.preload", true)

	// Environment variables
	v.SetEnvPrefix("ELAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Nested keys are not picked up by AutomaticEnv during Unmarshal
	_ = v.BindEnv("backend.base_url", "ELAN_BACKEND_BASE_URL")
	_ = v.BindEnv("backend.timeout", "ELAN_BACKEND_TIMEOUT")
	_ = v.BindEnv("catalog.page_size", "ELAN_CATALOG_PAGE_SIZE")
	_ = v.BindEnv("catalog.visible_pages", "ELAN_CATALOG_VISIBLE_PAGES")
	_ = v.BindEnv("catalog.compact_width", "ELAN_CATALOG_COMPACT_WIDTH")
	_ = v.BindEnv("catalog.max_parallel_loads", "ELAN_CATALOG_MAX_PARALLEL_LOADS")
	_ = v.BindEnv("catalog.preload", "ELAN_CATALOG_PRELOAD")

	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		_ = v.BindPFlag("transport", flags.Lookup("transport"))
		_ = v.BindPFlag("host", flags.Lookup("host"))
		_ = v.BindPFlag("port", flags.Lookup("port"))
		_ = v.BindPFlag("backend.base_url", flags.Lookup("backend-url"))
		_ = v.BindPFlag("backend.timeout", flags.Lookup("backend-timeout"))
		_ = v.BindPFlag("catalog.page_size", flags.Lookup("page-size"))
		_ = v.BindPFlag("catalog.visible_pages", flags.Lookup("visible-pages"))
		_ = v.BindPFlag("catalog.compact_width", flags.Lookup("compact-width"))
		_ = v.BindPFlag("catalog.max_parallel_loads", flags.Lookup("max-parallel-loads"))
		_ = v.BindPFlag("catalog.preload", flags.Lookup("preload"))
	}

	// Helper to look for .env file
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // Ignore error if .env doesn't exist

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	settings.Backend.BaseURL = strings.TrimRight(strings.TrimSpace(settings.Backend.BaseURL), "/")

	return &settings, nil
}

// ValidateSettings checks for invalid or conflicting configurations.
func ValidateSettings(s *Settings) error {
	switch s.Transport {
	case TransportStdio, TransportSSE:
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	if err := validateBackendSettings(&s.Backend); err != nil {
		return err
	}

	return validateCatalogSettings(&s.Catalog)
}

// validateBackendSettings validates the backend configuration
func validateBackendSettings(b *BackendSettings) error {
	if b.BaseURL == "" {
		return errors.New("backend-url cannot be empty")
	}

	u, err := url.Parse(b.BaseURL)
	if err != nil {
		return fmt.Errorf("backend-url is invalid: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("backend-url must use http or https, got: " + b.BaseURL)
	}
	if u.Host == "" {
		return errors.New("backend-url must include a host, got: " + b.BaseURL)
	}

	if b.Timeout < 0 {
		return errors.New("backend-timeout cannot be negative")
	}

	return nil
}

// validateCatalogSettings validates the catalog configuration
func validateCatalogSettings(c *CatalogSettings) error {
	if c.PageSize <= 0 {
		return errors.New("page-size must be positive")
	}

	if c.VisiblePages <= 0 {
		return errors.New("visible-pages must be positive")
	}

	if c.CompactWidth < 0 {
		return errors.New("compact-width cannot be negative")
	}

	if c.MaxParallelLoads <= 0 {
		return errors.New("max-parallel-loads must be positive")
	}

	return nil
}
