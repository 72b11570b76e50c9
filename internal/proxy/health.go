package proxy

import (
	"context"
	"net/http"
	"time"
)

// DefaultCheckTimeout bounds a single health-check request. Short on
// purpose: the check answers "is this proxy reachable right now", not
// "is it fast".
const DefaultCheckTimeout = 6 * time.Second

// DefaultCheckTarget is the known-reachable URL used when the caller
// does not supply one.
const DefaultCheckTarget = "https://example.com"

// HealthResult reports the outcome of one health check.
type HealthResult struct {
	// Proxy is the masked identifier that was checked.
	Proxy string

	// Reachable is true when one request through the proxy succeeded.
	Reachable bool

	// Detail holds the failure description when Reachable is false.
	Detail string
}

// Check attempts one GET of testURL through the given proxy and reports
// the result.
//
// The check is advisory only: a failing proxy is never removed from the
// pool automatically. Flaky proxies are expected; the caller's own retry
// policy decides what to do with an unreachable one.
func Check(ctx context.Context, p *Proxy, testURL string, timeout time.Duration) HealthResult {
	result := HealthResult{Proxy: p.String()}

	if testURL == "" {
		testURL = DefaultCheckTarget
	}
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}

	transport, err := p.Transport()
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
	defer client.CloseIdleConnections()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, testURL, nil)
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	resp, err := client.Do(req)
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	defer resp.Body.Close() //nolint:errcheck // Body content is irrelevant for a reachability check

	result.Reachable = true
	return result
}
