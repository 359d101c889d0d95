package main

import (
	"errors"
	"slices"
	"time"

	"github.com/olgasafonova/mediawiki-delete-category/internal/cleanup"
	"github.com/olgasafonova/mediawiki-delete-category/internal/config"
	apperrors "github.com/olgasafonova/mediawiki-delete-category/internal/errors"
	"github.com/olgasafonova/mediawiki-delete-category/internal/report"
	"github.com/olgasafonova/mediawiki-delete-category/wiki"
	"github.com/spf13/pflag"
)

const (
	defaultAPIURL   = "https://shinycolors.wiki/w/api.php"
	defaultCategory = "Category:Candidates for deletion"
	defaultReason   = "Automatically Deleted by Tool"
)

// RunConfig holds everything a cleanup run needs, gathered from arguments and flags
type RunConfig struct {
	Username string
	Password string

	APIURL   string
	Category string
	Auto     bool
	Force    bool
	Reason   string

	Format      string
	Timeout     time.Duration
	UserAgent   string
	MaxRetries  int
	RateLimit   float64
	Debug       bool
	MetricsFile string
}

// Validate rejects flag combinations the run cannot honour
func (c *RunConfig) Validate() error {
	if c.Username == "" {
		return apperrors.NewValidationError("username", "", "username is required")
	}
	if c.Password == "" {
		return apperrors.NewValidationError("password", "", "password is required")
	}
	if c.Force && !c.Auto {
		return apperrors.NewValidationError("force", "true", "--force requires --auto")
	}
	if c.APIURL == "" {
		return apperrors.NewValidationError("api", "", "API endpoint is required")
	}
	if c.Category == "" {
		return apperrors.NewValidationError("category", "", "category is required")
	}
	if !slices.Contains(report.Formats, c.Format) {
		return apperrors.NewValidationError("format", c.Format, "must be one of text, markdown, json")
	}
	if c.Timeout <= 0 {
		return apperrors.NewValidationError("timeout", c.Timeout.String(), "must be positive")
	}
	if c.MaxRetries < 0 {
		return apperrors.NewValidationError("max-retries", "", "must not be negative")
	}
	if c.RateLimit < 0 {
		return apperrors.NewValidationError("rate-limit", "", "must not be negative")
	}
	return nil
}

// WikiConfig returns the client settings for this run
func (c *RunConfig) WikiConfig() *wiki.Config {
	cfg := wiki.NewConfig(c.APIURL, c.Username, c.Password)
	cfg.Timeout = c.Timeout
	cfg.MaxRetries = c.MaxRetries
	cfg.RateLimit = c.RateLimit
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	return cfg
}

// Options returns the engine options for this run
func (c *RunConfig) Options() cleanup.Options {
	return cleanup.Options{
		Category: c.Category,
		Auto:     c.Auto,
		Force:    c.Force,
		Reason:   c.Reason,
	}
}

// applyConfigFile fills every flag the user did not set from the
// configuration file, if one is found. An explicit path that does not exist
// is an error; a missing default file is not.
func applyConfigFile(flags *pflag.FlagSet, explicit string) error {
	path := config.Find(explicit)
	if path == "" {
		if explicit != "" {
			return apperrors.NewValidationError("config", explicit, "file not found")
		}
		return nil
	}

	f, err := config.Load(path)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return apperrors.NewValidationError("config", path, "file not found")
		}
		return apperrors.NewValidationError("config", path, err.Error())
	}

	for name, value := range f.Values() {
		flag := flags.Lookup(name)
		if flag == nil || flag.Changed {
			continue
		}
		if err := flags.Set(name, value); err != nil {
			return apperrors.NewValidationError(name, value, "invalid value in "+path)
		}
	}
	return nil
}
