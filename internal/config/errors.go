package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: package-level sentinel errors rather than fresh error
// instances in Validate(). Callers can use errors.Is() for programmatic
// handling while the messages stay human-readable.
var (
	// ErrNoQuery is returned when no search query is specified.
	ErrNoQuery = errors.New("no query specified: provide a search query with --query")

	// ErrNoCandidates is returned when no candidate URLs are provided.
	// Candidates come from positional arguments or --list.
	ErrNoCandidates = errors.New("no candidate URLs: provide URLs as arguments or use --list")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A timeout of zero or negative would cause immediate fetch failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidConcurrency is returned when the worker count is not positive.
	// Zero workers would mean no fetching at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrInvalidLimit is returned when the per-run URL cap is negative.
	// Use 0 for no cap.
	ErrInvalidLimit = errors.New("invalid limit: must be non-negative")

	// ErrInvalidMaxRedirects is returned when the redirect bound is negative.
	ErrInvalidMaxRedirects = errors.New("invalid max redirects: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to use the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrInvalidRateLimit is returned when the per-host rate limit is negative.
	// Use 0 to disable rate limiting.
	ErrInvalidRateLimit = errors.New("invalid rate limit: must be non-negative")

	// ErrInvalidProxyMode is returned for an unknown proxy selection mode.
	// Valid modes are "fixed", "round-robin" (alias "rr"), and "random".
	ErrInvalidProxyMode = errors.New("invalid proxy mode: must be fixed, round-robin, or random")

	// ErrConflictingEgress is returned when both --tor and --proxy are
	// specified. The embedded Tor daemon and an explicit proxy pool are
	// mutually exclusive egress choices.
	ErrConflictingEgress = errors.New("conflicting egress: --tor and --proxy cannot be used together")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")
)
