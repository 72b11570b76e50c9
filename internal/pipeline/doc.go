// Package pipeline orchestrates the fetch-classify run for one query.
//
// A run filters the candidate list against the dedup store, durably
// records the survivors BEFORE any fetch starts, then processes each URL
// independently through fetch, normalize, and classify with a bounded
// worker pool. Per-URL failures land in that URL's verdict and never
// abort the batch; store failures abort the whole run because the
// orchestrator cannot proceed safely without a durable seen-set.
//
// Design decision: recording before fetching gives at-most-once-surfaced
// semantics. A crash mid-batch leaves some URLs marked seen without a
// verdict, and they are not re-offered later. That trade-off is
// deliberate: the system's purpose is surfacing new candidates, not
// guaranteeing every candidate is eventually classified.
package pipeline
