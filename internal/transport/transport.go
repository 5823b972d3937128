package transport

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultTimeout = 30 * time.Second

	// MaxPayloadBytes bounds how much of a response body is kept.
	MaxPayloadBytes = 1 << 20

	userAgent = "ping-keeper"
)

// Config controls the underlying http.Client.
type Config struct {
	// Timeout bounds a whole request. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTP2 forces HTTP/2: over TLS for https targets and cleartext (h2c)
	// for http targets.
	HTTP2 bool

	// TLSConfig overrides the TLS settings for https targets.
	TLSConfig *tls.Config
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %s", e.Status)
}

// Client performs probe requests.
type Client struct {
	client *http.Client
}

// New builds a Client from cfg.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{
		Timeout: timeout,
	}

	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if cfg.TLSConfig != nil {
		tlsConfig = cfg.TLSConfig.Clone()
	}

	switch {
	case cfg.HTTP2:
		client.Transport = newHTTP2RoundTripper(tlsConfig)
	case cfg.TLSConfig != nil:
		t := http.DefaultTransport.(*http.Transport).Clone()
		t.TLSClientConfig = tlsConfig
		client.Transport = t
	}

	return &Client{client: client}
}

// NewWithClient wraps an existing http.Client.
func NewWithClient(client *http.Client) *Client {
	return &Client{client: client}
}

// Get issues a GET to url and returns the response body.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build ping request")
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "ping %s", url)
	}
	defer res.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(res.Body, MaxPayloadBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read ping response")
	}

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status}
	}

	return payload, nil
}
