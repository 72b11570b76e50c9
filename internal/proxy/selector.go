package proxy

import (
	"errors"
	"math/rand/v2"
	"sync"
	"sync/atomic"
)

// Mode is the pool selection policy.
type Mode string

// Selection mode constants.
const (
	// ModeFixed always selects the first pool entry.
	ModeFixed Mode = "fixed"
	// ModeRoundRobin cycles through the pool in order.
	ModeRoundRobin Mode = "round-robin"
	// ModeRandom selects a uniformly random entry; repeats permitted.
	ModeRandom Mode = "random"
)

// ErrInvalidMode is returned when a mode string is not one of the three
// named policies. Rejected at configuration time.
var ErrInvalidMode = errors.New("invalid selection mode: must be fixed, round-robin, or random")

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fixed", "":
		return ModeFixed, nil
	case "round-robin", "rr":
		return ModeRoundRobin, nil
	case "random":
		return ModeRandom, nil
	default:
		return "", ErrInvalidMode
	}
}

// String returns the mode name.
func (m Mode) String() string {
	return string(m)
}

// Selector chooses an egress identifier per outbound request.
//
// Design decision: The round-robin cursor is an explicit field owned by
// the Selector and advanced with an atomic increment. No two concurrent
// callers can observe and advance from the same cursor value, and there
// is no process-wide singleton. The cursor resets to zero on restart;
// the starting position is undefined across runs on purpose.
type Selector struct {
	// mu guards pool and mode against administrative replacement.
	// Selection itself only takes a read lock.
	mu sync.RWMutex

	pool []*Proxy
	mode Mode

	// cursor is the round-robin position. Advanced atomically.
	cursor atomic.Uint64
}

// NewSelector creates a Selector over the given pool.
// An empty or nil pool is valid: Select then always returns nil (direct).
func NewSelector(pool []*Proxy, mode Mode) *Selector {
	return &Selector{pool: pool, mode: mode}
}

// Select returns the proxy to use for the next request, or nil for a
// direct connection. Selection never fails.
//
// Under round-robin the internal cursor advances exactly once per call,
// so every pool entry is used once per len(pool) consecutive calls.
func (s *Selector) Select() *Proxy {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.pool) == 0 {
		return nil
	}

	switch s.mode {
	case ModeRoundRobin:
		n := s.cursor.Add(1) - 1
		return s.pool[n%uint64(len(s.pool))]
	case ModeRandom:
		return s.pool[rand.IntN(len(s.pool))]
	default:
		return s.pool[0]
	}
}

// Mode returns the current selection mode.
func (s *Selector) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode changes the selection policy. Administrative operation.
func (s *Selector) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// SetPool replaces the pool and resets the round-robin cursor.
// Administrative operation; in-flight Select calls see either the old
// pool or the new one, never a mix.
func (s *Selector) SetPool(pool []*Proxy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pool = pool
	s.cursor.Store(0)
}

// PoolSize returns the number of configured proxies.
func (s *Selector) PoolSize() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pool)
}
