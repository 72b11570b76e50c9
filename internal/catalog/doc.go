// Package catalog defines the signature catalog: named groups of regular
// expression patterns organized into categories (payment gateways, challenge
// systems, commerce platforms, and ad hoc single-pattern checks).
//
// A catalog is configuration data. It is loaded once at process start, either
// from a YAML file or from the built-in default, validated and compiled at
// load time, and immutable afterwards. Malformed patterns are load-time
// errors, never discovered mid-scan.
//
// Design decision: Categories and signatures are ordered slices rather than
// maps so that classification output is stable across runs. The classifier
// iterates the data; adding a category never requires touching matching code.
package catalog
