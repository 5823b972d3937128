package transport

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"

	"golang.org/x/net/http2"
)

// http2RoundTripper picks the HTTP/2 flavour from the request scheme: TLS with
// ALPN for https, prior knowledge h2c over plain TCP for http.
type http2RoundTripper struct {
	secure    *http2.Transport
	cleartext *http2.Transport
}

func newHTTP2RoundTripper(tlsConfig *tls.Config) *http2RoundTripper {
	return &http2RoundTripper{
		secure: &http2.Transport{
			TLSClientConfig: tlsConfig,
		},
		cleartext: &http2.Transport{
			AllowHTTP: true,
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				var d net.Dialer
				return d.DialContext(ctx, network, addr)
			},
		},
	}
}

func (rt *http2RoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme == "http" {
		return rt.cleartext.RoundTrip(req)
	}
	return rt.secure.RoundTrip(req)
}
