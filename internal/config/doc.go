// Package config provides configuration structures and utilities for dorkscan.
// It defines the main options for proxy selection, fetching, classification,
// dedup storage, and report generation preferences.
package config
