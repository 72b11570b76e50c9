package catalog

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Catalog validation errors.
var (
	// ErrEmptyCatalog is returned when a catalog declares no categories.
	ErrEmptyCatalog = errors.New("catalog has no categories")

	// ErrDuplicateSignature is returned when two signatures in the same
	// category share a name. Signature names are unique per category.
	ErrDuplicateSignature = errors.New("duplicate signature name in category")

	// ErrEmptySignature is returned when a signature declares no patterns.
	ErrEmptySignature = errors.New("signature has no patterns")
)

// Signature is a named group of patterns. A signature matches a surface
// when any one of its patterns matches anywhere in it.
type Signature struct {
	// Name identifies the signature (e.g. "Stripe"). Unique per category.
	Name string `yaml:"name"`

	// Patterns are regular expressions, matched case-insensitively as
	// substring searches.
	Patterns []string `yaml:"patterns"`

	// compiled holds the patterns compiled with case folding.
	// Populated by Compile; nil until then.
	compiled []*regexp.Regexp
}

// Matches reports whether any pattern of this signature matches the surface.
// The signature must have been compiled first.
func (s *Signature) Matches(surface string) bool {
	for _, re := range s.compiled {
		if re.MatchString(surface) {
			return true
		}
	}
	return false
}

// Category is a named, ordered group of signatures. Categories are
// independent: no shared state and no ordering dependency between them.
type Category struct {
	// Name identifies the category (e.g. "payment gateway").
	Name string `yaml:"name"`

	// Signatures are evaluated and reported in declaration order.
	Signatures []Signature `yaml:"signatures"`
}

// Catalog is the full signature catalog. Immutable after Load.
type Catalog struct {
	// Categories in declaration order.
	Categories []Category `yaml:"categories"`
}

// CategoryNames returns the category names in declaration order.
func (c *Catalog) CategoryNames() []string {
	names := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// Compile validates the catalog and compiles every pattern.
// It returns a specific error for the first problem found: an empty
// catalog, a duplicate signature name, an empty signature, or a pattern
// that does not compile.
//
// Patterns are compiled with the case-insensitive flag so the classifier
// never has to lowercase the surface.
func (c *Catalog) Compile() error {
	if len(c.Categories) == 0 {
		return ErrEmptyCatalog
	}

	for ci := range c.Categories {
		cat := &c.Categories[ci]
		seen := make(map[string]bool, len(cat.Signatures))

		for si := range cat.Signatures {
			sig := &cat.Signatures[si]

			if seen[sig.Name] {
				return fmt.Errorf("%w: %q in %q", ErrDuplicateSignature, sig.Name, cat.Name)
			}
			seen[sig.Name] = true

			if len(sig.Patterns) == 0 {
				return fmt.Errorf("%w: %q in %q", ErrEmptySignature, sig.Name, cat.Name)
			}

			sig.compiled = make([]*regexp.Regexp, 0, len(sig.Patterns))
			for _, p := range sig.Patterns {
				re, err := regexp.Compile("(?i)" + p)
				if err != nil {
					return fmt.Errorf("invalid pattern %q in signature %q (%s): %w", p, sig.Name, cat.Name, err)
				}
				sig.compiled = append(sig.compiled, re)
			}
		}
	}

	return nil
}

// LoadFile loads and compiles a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided catalog path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Load(data)
}

// Load parses and compiles a catalog from YAML bytes.
func Load(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.Compile(); err != nil {
		return nil, err
	}
	return &c, nil
}
