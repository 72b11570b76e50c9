package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".dorkscan"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .dorkscan configuration file.
// Everything in it can also be set via CLI flags; flags take precedence.
type File struct {
	// Proxies is the egress proxy pool in URL form.
	Proxies []string `yaml:"proxies,omitempty"`

	// Mode is the proxy selection mode: fixed, round-robin, or random.
	Mode string `yaml:"mode,omitempty"`

	// Catalog is the path to a YAML signature catalog file.
	Catalog string `yaml:"catalog,omitempty"`

	// UserAgent overrides the User-Agent header for all fetches.
	UserAgent string `yaml:"userAgent,omitempty"`

	// RateLimit caps requests per second per target host.
	RateLimit float64 `yaml:"rateLimit,omitempty"`
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// Apply copies file settings onto the config for every field the user
// did not already set via flags. Flags win over the file.
func (cf *File) Apply(c *Config) {
	if len(c.Proxies) == 0 && len(cf.Proxies) > 0 {
		c.Proxies = append(c.Proxies, cf.Proxies...)
	}
	if c.ProxyMode == DefaultProxyMode && cf.Mode != "" {
		c.ProxyMode = cf.Mode
	}
	if c.CatalogPath == "" && cf.Catalog != "" {
		c.CatalogPath = cf.Catalog
	}
	if c.UserAgent == "" && cf.UserAgent != "" {
		c.UserAgent = cf.UserAgent
	}
	if c.RateLimit == 0 && cf.RateLimit > 0 {
		c.RateLimit = cf.RateLimit
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .dorkscan in the current directory
// 3. Look for .dorkscan in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
