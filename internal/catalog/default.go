package catalog

// Category name constants for the built-in catalog.
// Callers use these to read specific entries out of a verdict without
// hard-coding strings at every call site.
const (
	// CategoryChallenge groups bot-challenge and captcha systems.
	CategoryChallenge = "challenge system"

	// CategoryPayment groups payment gateway integrations.
	CategoryPayment = "payment gateway"

	// CategoryPlatform groups commerce/CMS platforms.
	CategoryPlatform = "platform"

	// CategoryGraphQL is a degenerate single-signature category that
	// flags GraphQL endpoints referenced by the page.
	CategoryGraphQL = "graphql"

	// CategoryCart flags add-to-cart flows.
	CategoryCart = "add to cart"

	// CategoryAccount flags customer account areas.
	CategoryAccount = "account area"
)

// Default returns the built-in, already compiled signature catalog.
//
// The pattern set covers the major hosted captcha services, the payment
// gateways most commonly embedded via script tags, and the platforms that
// leave recognizable paths in markup. Single-pattern categories (graphql,
// add to cart, account area) use the same matching contract as the rest;
// they are not special-cased anywhere.
func Default() *Catalog {
	c := &Catalog{
		Categories: []Category{
			{
				Name: CategoryChallenge,
				Signatures: []Signature{
					{Name: "Google reCAPTCHA", Patterns: []string{
						`www\.google\.com/recaptcha/`,
						`www\.recaptcha\.net/recaptcha/`,
						`grecaptcha\.render`,
					}},
					{Name: "hCaptcha", Patterns: []string{
						`hcaptcha\.com/1/api\.js`,
						`new hcaptcha`,
						`data-sitekey=.*?hcaptcha`,
					}},
					{Name: "Cloudflare Turnstile", Patterns: []string{
						`challenges\.cloudflare\.com/turnstile`,
						`data-sitekey=.*?turnstile`,
					}},
				},
			},
			{
				Name: CategoryPayment,
				Signatures: []Signature{
					{Name: "Stripe", Patterns: []string{
						`js\.stripe\.com`,
						`stripe\.elements`,
						`stripe\.checkout`,
						`stripe\.payment`,
					}},
					{Name: "PayPal", Patterns: []string{
						`www\.paypal\.com/sdk/js`,
						`www\.paypalobjects\.com`,
					}},
					{Name: "Razorpay", Patterns: []string{
						`checkout\.razorpay\.com`,
					}},
					{Name: "Braintree", Patterns: []string{
						`js\.braintreegateway\.com`,
						`braintreeweb`,
					}},
					{Name: "Adyen", Patterns: []string{
						`checkoutshopper(-\w+)?\.adyen\.com`,
						`adyencomponent`,
						`adyen\.encrypt`,
					}},
					{Name: "Checkout.com", Patterns: []string{
						`pay\.checkout\.com`,
						`frames\.js`,
					}},
					{Name: "Square", Patterns: []string{
						`js\.squareup\.com`,
						`js\.squareupsandbox\.com`,
						`web-payments-sdk`,
					}},
					{Name: "PayU", Patterns: []string{
						`secure\.payu\.`,
						`api\.payu\.`,
						`payumoney`,
						`payumin`,
					}},
					{Name: "CCAvenue", Patterns: []string{
						`secure\.ccavenue\.com`,
						`\bccavenue\b`,
					}},
					{Name: "Paystack", Patterns: []string{
						`js\.paystack\.co`,
					}},
					{Name: "Flutterwave", Patterns: []string{
						`checkout\.flutterwave\.com`,
						`ravepay`,
					}},
					{Name: "Authorize.Net", Patterns: []string{
						`authorize\.net`,
						`acceptjs`,
					}},
				},
			},
			{
				Name: CategoryPlatform,
				Signatures: []Signature{
					{Name: "WooCommerce", Patterns: []string{
						`\bwoocommerce\b`,
						`wp-content/plugins/woocommerce`,
					}},
					{Name: "WordPress", Patterns: []string{
						`content="WordPress`,
						`wp-content/`,
						`wp-includes/`,
					}},
					{Name: "Magento", Patterns: []string{
						`\bMagento\b`,
						`/static/frontend/|/skin/frontend/`,
					}},
					{Name: "Shopify", Patterns: []string{
						`cdn\.shopify\.com`,
						`\bshopify\b`,
					}},
				},
			},
			{
				Name: CategoryGraphQL,
				Signatures: []Signature{
					{Name: "GraphQL", Patterns: []string{
						`/graphql`,
						`\bgraphql\b`,
					}},
				},
			},
			{
				Name: CategoryCart,
				Signatures: []Signature{
					{Name: "Add to Cart", Patterns: []string{
						`add[\s_-]?to[\s_-]?cart`,
						`cart/add`,
					}},
				},
			},
			{
				Name: CategoryAccount,
				Signatures: []Signature{
					{Name: "My Account", Patterns: []string{
						`my[\s_-]?account`,
						`/customer/account`,
						`/account/login`,
					}},
				},
			},
		},
	}

	// The built-in patterns are constants; a compile failure here is a bug.
	if err := c.Compile(); err != nil {
		panic("catalog: built-in catalog failed to compile: " + err.Error())
	}
	return c
}
