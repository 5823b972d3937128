package prober

import (
	"fmt"
	"time"
)

// ConfigError is returned by New when the configuration is rejected.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid prober config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ProbeError describes a failed probe. It is only ever delivered through the
// OnError and OnCycle hooks.
type ProbeError struct {
	URL     string
	Latency time.Duration
	Err     error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe %s failed after %s: %v", e.URL, e.Latency, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
