package proxy

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	xproxy "golang.org/x/net/proxy"
)

// Proxy configuration errors.
var (
	// ErrInvalidScheme is returned for proxy URLs with a scheme outside
	// http, https, and socks5. Rejected at configuration time, never at
	// selection time.
	ErrInvalidScheme = errors.New("invalid proxy scheme: must be http, https, or socks5")

	// ErrMissingHost is returned for proxy URLs without a host component.
	ErrMissingHost = errors.New("invalid proxy URL: missing host")
)

// Proxy is a validated egress identifier: scheme://host:port with an
// optional userinfo component for authenticated proxies.
//
// Design decision: Proxies are validated at construction so that a bad
// entry fails the run before any fetch begins. After Parse succeeds the
// value is safe to use anywhere without rechecking.
type Proxy struct {
	url *url.URL
}

// Parse validates a raw proxy URL and returns a Proxy.
func Parse(raw string) (*Proxy, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid proxy URL %q: %w", raw, err)
	}

	switch u.Scheme {
	case "http", "https", "socks5":
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidScheme, raw)
	}

	if u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrMissingHost, raw)
	}

	return &Proxy{url: u}, nil
}

// ParseAll validates a list of raw proxy URLs.
// It returns an error naming the first invalid entry.
func ParseAll(raws []string) ([]*Proxy, error) {
	proxies := make([]*Proxy, 0, len(raws))
	for _, raw := range raws {
		p, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		proxies = append(proxies, p)
	}
	return proxies, nil
}

// Scheme returns the proxy scheme (http, https, or socks5).
func (p *Proxy) Scheme() string {
	return p.url.Scheme
}

// String returns the proxy URL with any userinfo masked.
// Use this for logging and verdicts; credentials never leave the type.
func (p *Proxy) String() string {
	if p == nil {
		return ""
	}
	if p.url.User == nil {
		return p.url.String()
	}
	masked := *p.url
	masked.User = url.User("***")
	return masked.String()
}

// Transport builds an http.Transport that routes through this proxy.
// A nil receiver yields a direct transport.
//
// socks5 proxies use golang.org/x/net/proxy's SOCKS5 dialer; http and
// https proxies use the transport's own Proxy hook. TLS verification
// stays enabled: unlike onion endpoints, candidate sites are expected
// to present valid certificates, and a TLS failure is a typed fetch
// failure the caller can inspect.
func (p *Proxy) Transport() (*http.Transport, error) {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{MinVersion: tls.VersionTLS12},
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}

	if p == nil {
		transport.Proxy = http.ProxyFromEnvironment
		return transport, nil
	}

	switch p.url.Scheme {
	case "socks5":
		var auth *xproxy.Auth
		if p.url.User != nil {
			password, _ := p.url.User.Password()
			auth = &xproxy.Auth{User: p.url.User.Username(), Password: password}
		}
		dialer, err := xproxy.SOCKS5("tcp", p.url.Host, auth, xproxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.Dial = func(network, addr string) (net.Conn, error) { //nolint:staticcheck // proxy.Dialer has no context variant
			return dialer.Dial(network, addr)
		}
	default:
		proxyURL := p.url
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return transport, nil
}
