package httpclient

import (
	"net/http"
	"net/url"
	"time"
)

// New returns a client with its own transport, routed through proxyURL when set.
// An unparsable proxy URL is ignored and the client connects directly.
func New(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
