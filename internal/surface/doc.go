// Package surface turns a fetched HTML response into a bounded matchable
// surface for the classifier.
//
// The surface is the newline-joined list of link/asset/action attribute
// values and interactive element text, followed by the truncated raw
// markup. Extracted fragments let signatures hit narrow structural
// signals; the appended markup lets them hit anything the extraction
// does not model.
//
// Design decision: We use golang.org/x/net/html rather than regex
// because it correctly handles the malformed HTML common on the web and
// degrades gracefully instead of failing the pipeline on a broken
// document.
package surface
