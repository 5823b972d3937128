// Package metrics collects probe outcomes for the keepalive daemon.
//
// It uses a channel-based event pipeline to asynchronously record:
//   - Successful and failed probe counts
//   - Probe latency with percentile calculations (P50, P95, P99)
//   - The last error and the live ping interval
//
// The collector runs in a dedicated goroutine. Publish never blocks the probe
// loop; events that do not fit in the buffer are counted as dropped.
//
// Example usage:
//
//	collector := metrics.NewCollector(100, logger)
//	collector.Start(ctx)
//
//	collector.Publish(metrics.Event{
//		Type:    metrics.EventProbeSucceeded,
//		Latency: 150 * time.Millisecond,
//	})
//
//	snapshot := collector.Snapshot()
//
// Remaining events are drained when the context is cancelled.
package metrics
