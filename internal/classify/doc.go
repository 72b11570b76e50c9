// Package classify evaluates a signature catalog against a matchable
// surface and produces a per-category list of matched signature names.
//
// Classification is pure: identical (surface, catalog) input always yields
// identical output, and every declared category is always present in the
// result even when nothing matched. The classifier iterates catalog data;
// it has no knowledge of individual categories.
package classify
