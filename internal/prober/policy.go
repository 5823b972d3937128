package prober

const (
	// MinIntervalMinutes is the floor for both the configured and the live interval.
	MinIntervalMinutes = 5

	// DefaultIntervalMinutesOnTraffic is the ceiling used when none is configured.
	DefaultIntervalMinutesOnTraffic = 10

	slowResponseMs = 1000
	fastResponseMs = 500
)

// Adjust returns the next interval in minutes for a latency sample.
//
// A sample above one second grows the interval by one, capped at ceiling.
// A sample below half a second shrinks it by one, floored at MinIntervalMinutes.
// Anything in between leaves it unchanged. The ceiling always wins, even when
// it is lower than the current value.
func Adjust(current, ceiling int, sampleMs int64) int {
	switch {
	case sampleMs > slowResponseMs:
		return min(current+1, ceiling)
	case sampleMs < fastResponseMs && current > MinIntervalMinutes:
		return max(current-1, MinIntervalMinutes)
	default:
		return current
	}
}
