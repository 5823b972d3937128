package metrics

import (
	"context"
	"log/slog"
	"time"

	"go.uber.org/atomic"
)

type EventType string

const (
	EventProbeSucceeded  EventType = "probe_succeeded"
	EventProbeFailed     EventType = "probe_failed"
	EventIntervalChanged EventType = "interval_changed"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Latency   time.Duration
	Err       error
	Interval  time.Duration
	Changed   bool
}

type Collector struct {
	eventCh chan Event
	metrics *Metrics
	dropped *atomic.Int64
	logger  *slog.Logger
}

func NewCollector(target string, bufferSize int, logger *slog.Logger) *Collector {
	return &Collector{
		eventCh: make(chan Event, bufferSize),
		metrics: NewMetrics(target),
		dropped: atomic.NewInt64(0),
		logger:  logger,
	}
}

// Publish queues an event without blocking. It reports false when the buffer
// is full and the event was dropped.
func (c *Collector) Publish(event Event) bool {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case c.eventCh <- event:
		return true
	default:
		c.dropped.Inc()
		return false
	}
}

func (c *Collector) Start(ctx context.Context) {
	go c.run(ctx)
}

func (c *Collector) run(ctx context.Context) {
	c.logger.Info("Metrics collector started")
	defer c.logger.Info("Metrics collector stopped")

	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		case <-ctx.Done():
			c.drain()
			return
		}
	}
}

func (c *Collector) processEvent(event Event) {
	switch event.Type {
	case EventProbeSucceeded:
		c.metrics.RecordSuccess(event.Timestamp, event.Latency)

	case EventProbeFailed:
		var msg string
		if event.Err != nil {
			msg = event.Err.Error()
		}
		c.metrics.RecordFailure(event.Timestamp, event.Latency, msg)

	case EventIntervalChanged:
		c.metrics.UpdateInterval(event.Interval, event.Changed)

	default:
		c.logger.Warn("Unknown metric event", slog.String("type", string(event.Type)))
	}
}

func (c *Collector) drain() {
	for {
		select {
		case event := <-c.eventCh:
			c.processEvent(event)
		default:
			return
		}
	}
}

func (c *Collector) Snapshot() Snapshot {
	snap := c.metrics.Snapshot()
	snap.Dropped = c.dropped.Load()
	return snap
}
