package wiki

import (
	"errors"
	"os"
	"strconv"
	"time"
)

const (
	// DefaultTimeout for API requests
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent identifies the tool to the wiki
	DefaultUserAgent = "MediaWikiDeleteCategory/1.0 (https://github.com/olgasafonova/mediawiki-delete-category)"
)

// Config holds MediaWiki connection settings
type Config struct {
	// BaseURL is the wiki API endpoint (e.g., https://wiki.example.com/w/api.php)
	BaseURL string

	// Username for bot password authentication
	Username string

	// Password for bot password authentication
	Password string

	// Timeout for API requests
	Timeout time.Duration

	// UserAgent identifies the client to the wiki
	UserAgent string

	// MaxRetries for failed requests. Zero means a failed request aborts immediately.
	MaxRetries int

	// RateLimit caps API requests per second. Zero means unlimited.
	RateLimit float64
}

// NewConfig returns a Config for the given endpoint and credentials with default settings.
func NewConfig(baseURL, username, password string) *Config {
	return &Config{
		BaseURL:   baseURL,
		Username:  username,
		Password:  password,
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	baseURL := os.Getenv("MEDIAWIKI_URL")
	if baseURL == "" {
		return nil, errors.New("MEDIAWIKI_URL environment variable is required")
	}

	cfg := NewConfig(baseURL, os.Getenv("MEDIAWIKI_USERNAME"), os.Getenv("MEDIAWIKI_PASSWORD"))

	if t := os.Getenv("MEDIAWIKI_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			cfg.Timeout = d
		}
	}

	if r := os.Getenv("MEDIAWIKI_MAX_RETRIES"); r != "" {
		if n, err := strconv.Atoi(r); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	if r := os.Getenv("MEDIAWIKI_RATE_LIMIT"); r != "" {
		if n, err := strconv.ParseFloat(r, 64); err == nil && n >= 0 {
			cfg.RateLimit = n
		}
	}

	if ua := os.Getenv("MEDIAWIKI_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}

	return cfg, nil
}

// HasCredentials returns true if authentication credentials are configured
func (c *Config) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}
