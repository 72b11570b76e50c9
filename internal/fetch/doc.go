// Package fetch performs single HTTP GETs through the configured egress.
//
// Every call asks the proxy selector for an egress identifier, builds a
// client for it, and reads a size-capped response. Transport problems are
// recovered into typed failures on the result instead of being raised:
// the orchestrator owns the retry decision, the fetcher never retries.
//
// Requests carry a realistic browser header set. Sites commonly reject
// headerless clients outright, which would make classification impossible
// rather than merely incomplete.
package fetch
