package classify

import (
	"reflect"
	"testing"

	"github.com/dorkscan/dorkscan/internal/catalog"
)

// testCatalog builds a small compiled catalog for classifier tests.
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c := &catalog.Catalog{
		Categories: []catalog.Category{
			{
				Name: "payment gateway",
				Signatures: []catalog.Signature{
					{Name: "Stripe", Patterns: []string{`js\.stripe\.com`}},
					{Name: "PayPal", Patterns: []string{`www\.paypal\.com/sdk/js`}},
				},
			},
			{
				Name: "challenge system",
				Signatures: []catalog.Signature{
					{Name: "hCaptcha", Patterns: []string{`hcaptcha\.com/1/api\.js`}},
				},
			},
		},
	}
	if err := c.Compile(); err != nil {
		t.Fatalf("failed to compile test catalog: %v", err)
	}
	return c
}

// TestClassify tests the core matching contract.
func TestClassify(t *testing.T) {
	t.Parallel()

	t.Run("literal Stripe scenario", func(t *testing.T) {
		t.Parallel()
		c := &catalog.Catalog{
			Categories: []catalog.Category{{
				Name: "payment gateway",
				Signatures: []catalog.Signature{
					{Name: "Stripe", Patterns: []string{`js\.stripe\.com`}},
				},
			}},
		}
		if err := c.Compile(); err != nil {
			t.Fatalf("compile failed: %v", err)
		}

		got := New(c).Classify(`<script src="https://js.stripe.com/v3/"></script>`)
		want := map[string][]string{"payment gateway": {"Stripe"}}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Classify = %v, want %v", got, want)
		}
	})

	t.Run("every category is present even without matches", func(t *testing.T) {
		t.Parallel()
		cls := New(testCatalog(t))

		got := cls.Classify("plain page with no signals at all")
		if len(got) != 2 {
			t.Fatalf("expected 2 categories in result, got %d", len(got))
		}
		for _, category := range []string{"payment gateway", "challenge system"} {
			names, ok := got[category]
			if !ok {
				t.Errorf("category %q missing from result", category)
				continue
			}
			if names == nil {
				t.Errorf("category %q should map to empty slice, not nil", category)
			}
			if len(names) != 0 {
				t.Errorf("category %q should be empty, got %v", category, names)
			}
		}
	})

	t.Run("matched names follow declaration order", func(t *testing.T) {
		t.Parallel()
		cls := New(testCatalog(t))

		surface := `<script src="https://www.paypal.com/sdk/js"></script>` +
			`<script src="https://js.stripe.com/v3/"></script>`
		got := cls.Classify(surface)
		want := []string{"Stripe", "PayPal"}
		if !reflect.DeepEqual(got["payment gateway"], want) {
			t.Errorf("expected declaration order %v, got %v", want, got["payment gateway"])
		}
	})

	t.Run("classification is deterministic", func(t *testing.T) {
		t.Parallel()
		cls := New(testCatalog(t))

		surface := `hcaptcha.com/1/api.js and js.stripe.com together`
		first := cls.Classify(surface)
		for i := 0; i < 50; i++ {
			if got := cls.Classify(surface); !reflect.DeepEqual(got, first) {
				t.Fatalf("run %d diverged: %v vs %v", i, got, first)
			}
		}
	})

	t.Run("empty surface matches nothing", func(t *testing.T) {
		t.Parallel()
		cls := New(testCatalog(t))
		got := cls.Classify("")
		for category, names := range got {
			if len(names) != 0 {
				t.Errorf("category %q matched on empty surface: %v", category, names)
			}
		}
	})
}

// TestCategories verifies category names come back in declaration order.
func TestCategories(t *testing.T) {
	t.Parallel()

	cls := New(testCatalog(t))
	got := cls.Categories()
	want := []string{"payment gateway", "challenge system"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories = %v, want %v", got, want)
	}
}

// TestClassifyDefaultCatalog exercises the built-in catalog end to end.
func TestClassifyDefaultCatalog(t *testing.T) {
	t.Parallel()

	cls := New(catalog.Default())

	surface := `<form action="/cart/add">` +
		`<script src="https://js.stripe.com/v3/"></script>` +
		`<script src="https://challenges.cloudflare.com/turnstile/v0/api.js"></script>` +
		`<a href="/wp-content/plugins/woocommerce/assets/js/cart.js">cart</a>`

	got := cls.Classify(surface)

	if !reflect.DeepEqual(got[catalog.CategoryPayment], []string{"Stripe"}) {
		t.Errorf("payment: got %v", got[catalog.CategoryPayment])
	}
	if !reflect.DeepEqual(got[catalog.CategoryChallenge], []string{"Cloudflare Turnstile"}) {
		t.Errorf("challenge: got %v", got[catalog.CategoryChallenge])
	}
	if !reflect.DeepEqual(got[catalog.CategoryPlatform], []string{"WooCommerce", "WordPress"}) {
		t.Errorf("platform: got %v", got[catalog.CategoryPlatform])
	}
	if len(got[catalog.CategoryCart]) == 0 {
		t.Error("expected add-to-cart to match")
	}
}
