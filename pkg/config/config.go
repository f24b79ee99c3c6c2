// Package config loads the SEDIA client configuration from the environment
// or an optional .env file.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Defaults for the public SEDIA search API.
const (
	// DefaultBaseURL is the EU Commission funding & tenders search endpoint.
	DefaultBaseURL = "https://api.tech.ec.europa.eu/search-api/prod/rest/search"

	// DefaultAPIKey is the public key accepted by the SEDIA search API.
	DefaultAPIKey = "SEDIA"

	// DefaultPageSize is the maximum number of results the API returns per page.
	DefaultPageSize = 100
)

// Config stores all configuration for the SEDIA client.
// Both the page fetcher and the pagination driver receive it at
// construction time; there is no process-wide lookup.
type Config struct {
	BaseURL     string        `mapstructure:"SEDIA_BASE_URL"`
	APIKey      string        `mapstructure:"SEDIA_API_KEY"`
	SearchText  string        `mapstructure:"SEDIA_SEARCH_TEXT"`
	PageSize    int           `mapstructure:"SEDIA_PAGE_SIZE"`
	Delay       time.Duration `mapstructure:"SEDIA_PAGE_DELAY"`
	HTTPTimeout time.Duration `mapstructure:"SEDIA_HTTP_TIMEOUT"`
	LogLevel    string        `mapstructure:"LOG_LEVEL"`

	// RequestHeaders are sent with every page request. The SEDIA API
	// expects a form-encoded body and answers with JSON.
	RequestHeaders map[string]string `mapstructure:"-"`
}

// DefaultRequestHeaders returns the static header set sent with every request.
func DefaultRequestHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/x-www-form-urlencoded",
		"Accept":       "application/json",
	}
}

// Load reads configuration from a .env file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present.
	// This allows configuration purely through environment variables.
	_ = viper.ReadInConfig()

	viper.SetDefault("SEDIA_BASE_URL", DefaultBaseURL)
	viper.SetDefault("SEDIA_API_KEY", DefaultAPIKey)
	viper.SetDefault("SEDIA_SEARCH_TEXT", `"tenders"`)
	viper.SetDefault("SEDIA_PAGE_SIZE", DefaultPageSize)
	viper.SetDefault("SEDIA_PAGE_DELAY", "1s")
	viper.SetDefault("SEDIA_HTTP_TIMEOUT", "30s")
	viper.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.RequestHeaders = DefaultRequestHeaders()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration can drive requests.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required")
	}
	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		return fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	if c.APIKey == "" {
		return fmt.Errorf("API key is required")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page size must be >= 1 (got %d)", c.PageSize)
	}
	if c.Delay < 0 {
		return fmt.Errorf("page delay must not be negative (got %v)", c.Delay)
	}
	return nil
}
