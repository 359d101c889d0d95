// Package config loads optional defaults for the command line from a YAML file.
// Credentials are never read from the file; they stay on the command line or
// in the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG config directory
const AppName = "mediawiki-delete-category"

// DefaultConfigFile is looked up in the current directory
const DefaultConfigFile = ".mediawiki-delete-category.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the content of a configuration file. Unset fields leave the
// corresponding flag at its built-in default.
type File struct {
	API        string   `yaml:"api"`
	Category   string   `yaml:"category"`
	Reason     string   `yaml:"reason"`
	Format     string   `yaml:"format"`
	Timeout    string   `yaml:"timeout"`
	UserAgent  string   `yaml:"user_agent"`
	MaxRetries *int     `yaml:"max_retries"`
	RateLimit  *float64 `yaml:"rate_limit"`
}

// Load parses the YAML file at path.
// If the file does not exist, it returns ErrConfigNotFound.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Dir returns the XDG config directory, e.g. ~/.config/mediawiki-delete-category on Linux.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Find returns the configuration file to use, or "" if there is none:
// explicit when given, else DefaultConfigFile in the current directory,
// else config.yaml in Dir().
func Find(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	path := filepath.Join(Dir(), "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// Values maps flag names to the values set in the file
func (f *File) Values() map[string]string {
	values := make(map[string]string)
	set := func(flag, value string) {
		if value != "" {
			values[flag] = value
		}
	}

	set("api", f.API)
	set("category", f.Category)
	set("reason", f.Reason)
	set("format", f.Format)
	set("timeout", f.Timeout)
	set("user-agent", f.UserAgent)
	if f.MaxRetries != nil {
		values["max-retries"] = strconv.Itoa(*f.MaxRetries)
	}
	if f.RateLimit != nil {
		values["rate-limit"] = strconv.FormatFloat(*f.RateLimit, 'f', -1, 64)
	}
	return values
}
