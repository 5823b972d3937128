package prober

import (
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Config is the immutable input of a Prober.
type Config struct {
	// URL is the endpoint to ping.
	URL string

	// IntervalMinutes is the baseline delay between probes. Must be at least
	// MinIntervalMinutes.
	IntervalMinutes int

	// IntervalMinutesOnTraffic caps interval growth under sustained high
	// latency. Zero means DefaultIntervalMinutesOnTraffic.
	IntervalMinutesOnTraffic int

	// Fixed disables the interval policy; every wake-up uses IntervalMinutes.
	Fixed bool

	OnSuccess func(payload []byte)
	OnError   func(err error)

	// OnCycle observes every completed probe after the interval was adjusted.
	OnCycle func(Cycle)
}

// Validate checks the configuration without touching the network.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URL,
			validation.Required,
			validation.By(validateProbeURL),
		),
		validation.Field(&c.IntervalMinutes,
			validation.Required.Error("must be at least 5 minutes to prevent server abuse"),
			validation.Min(MinIntervalMinutes).Error("must be at least 5 minutes to prevent server abuse"),
		),
		validation.Field(&c.IntervalMinutesOnTraffic,
			validation.Min(MinIntervalMinutes),
		),
	)
}

// ceiling returns the effective high traffic ceiling.
func (c Config) ceiling() int {
	if c.IntervalMinutesOnTraffic == 0 {
		return DefaultIntervalMinutesOnTraffic
	}
	return c.IntervalMinutesOnTraffic
}

func validateProbeURL(value interface{}) error {
	rawURL, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}

	if parsedURL.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}

	return nil
}
