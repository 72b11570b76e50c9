// Package main provides the entry point for the dorkscan CLI.
//
// Dorkscan filters, fetches, and classifies candidate URLs collected
// from search queries. It remembers which (query, URL) pairs it has
// already surfaced so repeated runs only process new results.
//
// Usage:
//
//	dorkscan scan --query '<query>' <url>...
//	dorkscan scan --query '<query>' --list urls.txt
//
// See --help for all available options.
package main

// main is the entry point for dorkscan.
func main() {
	Execute()
}
