// Package proxy manages the egress pool: validated proxy identifiers,
// the selection policy (fixed, round-robin, random), and an advisory
// health check.
//
// Selection is total: an empty pool yields the "no proxy" (direct)
// identifier instead of an error. The round-robin cursor is advanced
// atomically so concurrent fetches never observe the same position.
//
// The package also provides an optional embedded Tor egress built on
// tornago: the launched daemon's SOCKS port becomes a regular socks5
// pool entry and is handled like any other proxy from there on.
package proxy
