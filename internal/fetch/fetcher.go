package fetch

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dorkscan/dorkscan/internal/proxy"
)

// Default fetcher settings.
const (
	// DefaultTimeout bounds one request including redirects and body read.
	// Candidate sites are clearnet; 12 seconds is generous without letting
	// a single slow page stall a batch slot for long.
	DefaultTimeout = 12 * time.Second

	// DefaultMaxRedirects bounds redirect chains. Ten matches what
	// browsers tolerate before giving up.
	DefaultMaxRedirects = 10

	// DefaultMaxBodySize limits the response body read. Pages larger than
	// this are truncated; the normalizer caps again at its own budget.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent mimics Chrome on Linux. Sites that block on a
	// missing or tool-like User-Agent then behave normally.
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	// defaultAccept is the Accept header sent with every request.
	defaultAccept = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
)

// ErrTooManyRedirects is returned (wrapped) when a redirect chain exceeds
// the configured bound.
var ErrTooManyRedirects = errors.New("stopped after too many redirects")

// FailureKind classifies a transport-level fetch failure.
type FailureKind string

// Failure kind constants.
const (
	// FailureTimeout means the request exceeded its deadline.
	FailureTimeout FailureKind = "timeout"
	// FailureRefused means the TCP connection was refused.
	FailureRefused FailureKind = "connection_refused"
	// FailureDNS means name resolution failed.
	FailureDNS FailureKind = "dns"
	// FailureTLS means the TLS handshake or certificate check failed.
	FailureTLS FailureKind = "tls"
	// FailureProxy means the egress proxy itself failed.
	FailureProxy FailureKind = "proxy"
	// FailureRedirects means the redirect bound was exceeded.
	FailureRedirects FailureKind = "too_many_redirects"
	// FailureOther covers transport errors outside the named kinds.
	FailureOther FailureKind = "other"
)

// Failure is a typed transport failure attached to a Result.
type Failure struct {
	// Kind is the failure classification.
	Kind FailureKind

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (f *Failure) Unwrap() error {
	return f.Err
}

// Result is the outcome of one fetch attempt. Either Failure is nil and
// the response fields are populated, or Failure describes why there is
// no response. Results are ephemeral: produced and consumed within one
// pipeline pass, never persisted.
type Result struct {
	// URL is the requested URL (before redirects).
	URL string

	// StatusCode is the HTTP status code of the final response.
	StatusCode int

	// Headers are the response headers of the final response.
	Headers http.Header

	// Body is the response body, truncated to the configured cap.
	Body []byte

	// ContentType is the declared Content-Type of the response.
	ContentType string

	// Proxy is the masked egress identifier used, empty for direct.
	Proxy string

	// Failure is non-nil when the fetch failed at the transport level.
	Failure *Failure
}

// Fetcher performs HTTP GETs through the selector's egress pool.
//
// Design decision: The fetcher builds a client per request from the
// selected proxy rather than holding one shared client, because the
// egress changes between calls under round-robin and random modes.
// Candidate URLs rarely repeat a host, so losing cross-call connection
// reuse costs little.
type Fetcher struct {
	selector     *proxy.Selector
	timeout      time.Duration
	maxRedirects int
	maxBodySize  int64
	userAgent    string
	limiter      *Limiter
	logger       *slog.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxRedirects sets the redirect bound.
func WithMaxRedirects(n int) Option {
	return func(f *Fetcher) {
		f.maxRedirects = n
	}
}

// WithMaxBodySize sets the response body read cap.
func WithMaxBodySize(size int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = size
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithLimiter sets a per-host rate limiter applied before each request.
func WithLimiter(l *Limiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// New creates a Fetcher that selects its egress from the given selector.
func New(selector *proxy.Selector, opts ...Option) *Fetcher {
	f := &Fetcher{
		selector:     selector,
		timeout:      DefaultTimeout,
		maxRedirects: DefaultMaxRedirects,
		maxBodySize:  DefaultMaxBodySize,
		userAgent:    DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	return f
}

// Fetch performs one GET of url through the next selected egress.
//
// Transport failures come back inside the Result, not as the error
// return; the error return is reserved for malformed input such as an
// unparseable URL. The caller decides whether a failed URL is retried.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	egress := f.selector.Select()
	result := &Result{URL: url, Proxy: egress.String()}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, url); err != nil {
			result.Failure = classifyError(err)
			return result, nil
		}
	}

	transport, err := egress.Transport()
	if err != nil {
		// A proxy that validated at configuration time but cannot build
		// a transport is an egress problem, not a caller bug.
		result.Failure = &Failure{Kind: FailureProxy, Err: err}
		return result, nil
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   f.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= f.maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %q: %w", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		result.Failure = classifyError(err)
		f.logger.Debug("fetch failed",
			"url", url,
			"proxy", result.Proxy,
			"kind", string(result.Failure.Kind),
			"error", err,
		)
		return result, nil
	}
	defer resp.Body.Close() //nolint:errcheck // Read errors surface via io.ReadAll below

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		result.Failure = classifyError(err)
		return result, nil
	}

	result.StatusCode = resp.StatusCode
	result.Headers = resp.Header
	result.Body = body
	result.ContentType = resp.Header.Get("Content-Type")

	f.logger.Debug("fetched",
		"url", url,
		"proxy", result.Proxy,
		"status", resp.StatusCode,
		"bytes", len(body),
	)
	return result, nil
}

// OK reports whether the fetch produced a response.
func (r *Result) OK() bool {
	return r.Failure == nil
}

// classifyError maps a transport error onto a FailureKind.
//
// Order matters: url.Error wraps most of these, and a timeout inside a
// proxy dial should still read as a timeout.
func classifyError(err error) *Failure {
	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return &Failure{Kind: FailureRedirects, Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Failure{Kind: FailureTimeout, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Failure{Kind: FailureTimeout, Err: err}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &Failure{Kind: FailureDNS, Err: err}
	}

	var certErr *tls.CertificateVerificationError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostnameErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &unknownAuthErr) || errors.As(err, &hostnameErr) {
		return &Failure{Kind: FailureTLS, Err: err}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "tls:"):
		return &Failure{Kind: FailureTLS, Err: err}
	case strings.Contains(msg, "socks"), strings.Contains(msg, "proxyconnect"):
		return &Failure{Kind: FailureProxy, Err: err}
	case strings.Contains(msg, "connection refused"):
		return &Failure{Kind: FailureRefused, Err: err}
	}

	return &Failure{Kind: FailureOther, Err: err}
}
