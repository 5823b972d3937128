// Package handler exposes the prober state over HTTP.
package handler
