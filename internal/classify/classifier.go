package classify

import (
	"github.com/dorkscan/dorkscan/internal/catalog"
)

// Classifier matches a compiled catalog against matchable surfaces.
// The catalog is immutable after load and shared across all URLs in a run.
type Classifier struct {
	catalog *catalog.Catalog
}

// New creates a Classifier over an already compiled catalog.
func New(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Categories returns the catalog's category names in declaration order.
func (c *Classifier) Categories() []string {
	return c.catalog.CategoryNames()
}

// Classify evaluates every signature in every category against the surface.
//
// The result always contains a key for every declared category; categories
// with no matches map to an empty (non-nil) slice. Matched signature names
// appear in catalog declaration order. Every category is evaluated fully:
// no category short-circuits another, which keeps output deterministic.
func (c *Classifier) Classify(surface string) map[string][]string {
	result := make(map[string][]string, len(c.catalog.Categories))

	for i := range c.catalog.Categories {
		cat := &c.catalog.Categories[i]
		matched := make([]string, 0)
		for j := range cat.Signatures {
			if cat.Signatures[j].Matches(surface) {
				matched = append(matched, cat.Signatures[j].Name)
			}
		}
		result[cat.Name] = matched
	}

	return result
}
