package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These values mirror typical clearnet scanning behavior: candidate pages
// are ordinary websites, so timeouts are far shorter than a Tor scanner
// would need.
const (
	// DefaultTimeout is the per-request timeout. 12 seconds covers slow
	// shared-hosting sites without letting a single dead host stall a
	// worker for long.
	DefaultTimeout = 12 * time.Second

	// DefaultConcurrency is the number of URLs fetched in parallel.
	// Fetch latency dominates run time; five workers recover most of the
	// available speedup without drawing attention to the egress.
	DefaultConcurrency = 5

	// DefaultMaxRedirects bounds redirect chains per fetch. Ten matches
	// what mainstream HTTP clients allow before declaring a loop.
	DefaultMaxRedirects = 10

	// DefaultMaxBodySize limits the maximum response body size to read.
	// 5MB is sufficient for most HTML pages while preventing memory
	// exhaustion from unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultProxyMode is the selection policy when a proxy pool is
	// configured. Round-robin spreads load evenly across the pool.
	DefaultProxyMode = "round-robin"

	// DefaultTorStartupTimeout is the maximum time to wait for the
	// embedded Tor daemon to bootstrap when --tor is used.
	DefaultTorStartupTimeout = 3 * time.Minute

	// AppName is the application name used for XDG directory paths.
	AppName = "dorkscan"
)

// Config holds all configuration options for dorkscan.
// This struct is designed to be populated from CLI flags and the optional
// config file and passed through the application via dependency injection
// rather than global state.
//
// Design decision: a single flat struct instead of nested sub-structs.
// The number of options is manageable, and nesting would add complexity
// without significant benefit.
type Config struct {
	// Query is the search query whose candidate URLs are being processed.
	// Dedup state is keyed by this exact string.
	Query string

	// Candidates is the list of candidate URLs to filter, fetch, and
	// classify. Populated from positional arguments or --list.
	Candidates []string

	// Limit caps how many new URLs are processed in this run after
	// dedup filtering. Zero means no cap.
	Limit int

	// Proxies is the egress proxy pool in URL form
	// (http://, https://, or socks5://). Empty means direct connections.
	Proxies []string

	// ProxyMode selects how an egress is chosen per fetch:
	// "fixed", "round-robin" (alias "rr"), or "random".
	// Ignored when Proxies is empty.
	ProxyMode string

	// UseEmbeddedTor starts an embedded Tor daemon and routes all
	// fetches through its SOCKS port. Mutually exclusive with Proxies.
	UseEmbeddedTor bool

	// TorStartupTimeout is the maximum time to wait for the embedded
	// Tor daemon to bootstrap. Only used when UseEmbeddedTor is true.
	TorStartupTimeout time.Duration

	// Timeout is the per-request timeout covering connect, TLS, and
	// body read for a single fetch.
	Timeout time.Duration

	// Concurrency is the number of URLs fetched in parallel.
	Concurrency int

	// MaxRedirects bounds the redirect chain for a single fetch.
	MaxRedirects int

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Zero means the default.
	MaxBodySize int64

	// UserAgent is the User-Agent header sent with HTTP requests.
	// Empty means the built-in browser-like default.
	UserAgent string

	// RateLimit caps requests per second per target host. Zero disables
	// rate limiting.
	RateLimit float64

	// CatalogPath is the path to a YAML signature catalog. Empty means
	// the built-in catalog.
	CatalogPath string

	// DBDir is the directory holding the dedup SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .dorkscan in the current directory
	// and then in the user's home directory.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
func NewConfig() *Config {
	return &Config{
		Limit:             0,
		ProxyMode:         DefaultProxyMode,
		TorStartupTimeout: DefaultTorStartupTimeout,
		Timeout:           DefaultTimeout,
		Concurrency:       DefaultConcurrency,
		MaxRedirects:      DefaultMaxRedirects,
		MaxBodySize:       DefaultMaxBodySize,
		DBDir:             XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for dorkscan.
// On Linux: ~/.local/share/dorkscan
// On macOS: ~/Library/Application Support/dorkscan
// On Windows: %LOCALAPPDATA%\dorkscan
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for dorkscan.
// On Linux: ~/.config/dorkscan
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// validProxyModes are the accepted --mode values, including aliases.
var validProxyModes = map[string]bool{
	"":            true, // resolved to the default later
	"fixed":       true,
	"round-robin": true,
	"rr":          true,
	"random":      true,
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Validation happens once after CLI parsing, before any network or
// database work begins, so users get a clear message upfront. The first
// error found is returned because fixing one error often makes others
// irrelevant.
func (c *Config) Validate() error {
	if c.Query == "" {
		return ErrNoQuery
	}

	if len(c.Candidates) == 0 {
		return ErrNoCandidates
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.Limit < 0 {
		return ErrInvalidLimit
	}

	if c.MaxRedirects < 0 {
		return ErrInvalidMaxRedirects
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.RateLimit < 0 {
		return ErrInvalidRateLimit
	}

	if !validProxyModes[c.ProxyMode] {
		return ErrInvalidProxyMode
	}

	if c.UseEmbeddedTor && len(c.Proxies) > 0 {
		return ErrConflictingEgress
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
