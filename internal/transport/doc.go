// Package transport issues the keepalive GET request. Non-2xx responses are
// reported as *StatusError and the response body is returned as the payload.
package transport
