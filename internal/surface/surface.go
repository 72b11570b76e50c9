package surface

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"

	"github.com/dorkscan/dorkscan/internal/fetch"
)

// MaxSurfaceSize caps the markup fed to extraction and appended to the
// surface. Bounds worst-case classifier cost on pathological pages.
const MaxSurfaceSize = 1_200_000 // ~1.2MB

// surfaceElements are the elements whose reference attributes carry
// classification signal.
var surfaceElements = map[string]bool{
	"script": true,
	"link":   true,
	"img":    true,
	"iframe": true,
	"form":   true,
	"a":      true,
	"button": true,
}

// surfaceAttrs are the attribute keys extracted from surface elements.
var surfaceAttrs = []string{"src", "href", "data-src", "action"}

// IsHTML reports whether a declared content type is a markup type.
// An empty declaration does not count: a response without a Content-Type
// header is skipped rather than classified.
func IsHTML(contentType string) bool {
	ct := strings.ToLower(contentType)
	return strings.Contains(ct, "html") || strings.Contains(ct, "xhtml")
}

// Extract builds the matchable surface from a fetch result.
//
// Returns ok=false when the response content type is not markup;
// classification is only meaningful for HTML-like content. Malformed
// markup never fails: html.Parse recovers from anything, and in the
// worst case the surface is just the truncated raw bytes.
func Extract(res *fetch.Result) (string, bool) {
	if !IsHTML(res.ContentType) {
		return "", false
	}

	raw := res.Body
	if len(raw) > MaxSurfaceSize {
		raw = raw[:MaxSurfaceSize]
	}

	fragments := extractFragments(raw)

	var b strings.Builder
	b.Grow(len(raw) + 256)
	for _, f := range fragments {
		b.WriteString(f)
		b.WriteString("\n")
	}
	b.Write(raw)

	return b.String(), true
}

// extractFragments walks the parsed document and collects reference
// attribute values plus anchor/button text.
func extractFragments(raw []byte) []string {
	doc, err := html.Parse(bytes.NewReader(raw))
	if err != nil {
		// html.Parse only fails on reader errors, which a bytes.Reader
		// never produces; treat it as "no fragments" regardless.
		return nil
	}

	var fragments []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && surfaceElements[n.Data] {
			for _, key := range surfaceAttrs {
				if v := getAttr(n, key); v != "" {
					fragments = append(fragments, v)
				}
			}
			if n.Data == "a" || n.Data == "button" {
				if text := strings.TrimSpace(nodeText(n)); text != "" {
					fragments = append(fragments, text)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return fragments
}

// nodeText concatenates the text content beneath a node.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
