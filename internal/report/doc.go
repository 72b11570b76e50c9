// Package report provides output formatting for classification runs.
// It supports human-readable text for terminal use, JSON for tool
// integration, and Markdown for sharing and documentation.
package report
