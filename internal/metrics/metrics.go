package metrics

import (
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// maxSamples bounds the latency window used for percentiles.
const maxSamples = 1000

type Metrics struct {
	mutex     sync.RWMutex
	target    string
	successes int64
	failures  int64
	latencies []time.Duration
	last      time.Duration
	lastError string
	lastProbe time.Time
	interval  time.Duration
	changes   int64
	startTime time.Time
}

type Snapshot struct {
	Target          string        `json:"target"`
	TotalProbes     int64         `json:"total_probes"`
	Successes       int64         `json:"successes"`
	Failures        int64         `json:"failures"`
	Uptime          time.Duration `json:"uptime"`
	LastLatency     time.Duration `json:"last_latency"`
	LastError       string        `json:"last_error,omitempty"`
	LastProbe       time.Time     `json:"last_probe"`
	Interval        time.Duration `json:"interval"`
	IntervalChanges int64         `json:"interval_changes"`
	AvgLatency      time.Duration `json:"avg_latency"`
	P50Latency      time.Duration `json:"p50_latency"`
	P95Latency      time.Duration `json:"p95_latency"`
	P99Latency      time.Duration `json:"p99_latency"`
	Dropped         int64         `json:"dropped_events"`
}

func NewMetrics(target string) *Metrics {
	return &Metrics{
		target:    target,
		startTime: time.Now(),
	}
}

func (m *Metrics) RecordSuccess(at time.Time, latency time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.successes++
	m.last = latency
	m.lastProbe = at
	m.lastError = ""

	m.latencies = append(m.latencies, latency)
	if len(m.latencies) > maxSamples {
		m.latencies = m.latencies[1:]
	}
}

// RecordFailure counts a failed probe. Failed latencies stay out of the
// percentile window.
func (m *Metrics) RecordFailure(at time.Time, latency time.Duration, err string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.failures++
	m.last = latency
	m.lastProbe = at
	m.lastError = err
}

func (m *Metrics) UpdateInterval(interval time.Duration, changed bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.interval = interval
	if changed {
		m.changes++
	}
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Target:          m.target,
		TotalProbes:     m.successes + m.failures,
		Successes:       m.successes,
		Failures:        m.failures,
		Uptime:          time.Since(m.startTime),
		LastLatency:     m.last,
		LastError:       m.lastError,
		LastProbe:       m.lastProbe,
		Interval:        m.interval,
		IntervalChanges: m.changes,
	}

	if len(m.latencies) > 0 {
		sorted := make([]float64, len(m.latencies))
		for i, d := range m.latencies {
			sorted[i] = float64(d)
		}
		sort.Float64s(sorted)

		snap.AvgLatency = time.Duration(stat.Mean(sorted, nil))
		snap.P50Latency = quantile(sorted, 0.50)
		snap.P95Latency = quantile(sorted, 0.95)
		snap.P99Latency = quantile(sorted, 0.99)
	}

	return snap
}

func quantile(sorted []float64, p float64) time.Duration {
	return time.Duration(stat.Quantile(p, stat.Empirical, sorted, nil))
}
