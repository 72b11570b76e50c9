// Package model defines the core data structures used throughout dorkscan.
//
// This package contains the following main types:
//   - Verdict: The per-URL classification outcome with pipeline status
//   - Status: The pipeline status enum (ok, fetch failed, skipped)
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (pipeline, classify, report) need to use
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output.
package model
