// Package database provides the durable per-query deduplication store.
//
// The store records which (query, URL) pairs have already been surfaced
// so repeated runs of the same query only report new sites. Entries are
// append-only: never updated, never expired. Operators who want rotation
// prune the SQLite file out-of-band.
//
// Design decision: SQLite with a composite primary key gives us the
// uniqueness constraint and durability the contract needs without a
// server dependency, and INSERT OR IGNORE makes recording idempotent by
// construction.
package database
