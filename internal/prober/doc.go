// Package prober implements a self-scheduling keepalive loop that pings a
// single URL and adapts the delay between pings to the observed latency.
//
// A Prober issues one probe at a time. After each outcome it feeds a latency
// sample into the interval policy and arms exactly one deferred wake-up for
// the next probe. Slow responses grow the interval by one minute up to the
// configured ceiling; fast responses shrink it by one minute down to a fixed
// five minute floor. Failed probes count as a sample of twice the previous
// latency.
//
// Example usage:
//
//	p, err := prober.New(prober.Config{
//		URL:             "https://example.com/health",
//		IntervalMinutes: 5,
//		OnError: func(err error) {
//			log.Warn("ping failed", slog.Any("err", err))
//		},
//	})
//	if err != nil {
//		return err
//	}
//	p.Start()
//	defer p.Stop()
package prober
