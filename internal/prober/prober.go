package prober

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/angeloszaimis/ping-keeper/internal/transport"
)

// Transport issues the probe request and returns the response payload.
type Transport interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Cycle is the outcome of one probe as seen by OnCycle.
type Cycle struct {
	Latency time.Duration
	// Sample is the latency in milliseconds fed to the interval policy.
	Sample int64
	Err    error
	// Interval is the delay before the next probe.
	Interval time.Duration
	// Changed reports whether this cycle moved the interval.
	Changed bool
}

// State is a point in time view of a Prober.
type State struct {
	URL                    string `json:"url"`
	Running                bool   `json:"running"`
	Fixed                  bool   `json:"fixed"`
	IntervalMinutes        int    `json:"interval_minutes"`
	IntervalMs             int64  `json:"interval_ms"`
	CeilingMinutes         int    `json:"ceiling_minutes"`
	PreviousResponseTimeMs int64  `json:"previous_response_time_ms"`
}

// Option customises a Prober.
type Option func(*Prober)

// WithTransport replaces the default HTTP transport.
func WithTransport(t Transport) Option {
	return func(p *Prober) {
		p.transport = t
	}
}

// WithScheduler replaces the time.AfterFunc based scheduler.
func WithScheduler(s Scheduler) Option {
	return func(p *Prober) {
		p.scheduler = s
	}
}

// WithLogger sets the logger used for probe diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Prober) {
		p.logger = logger
	}
}

// WithClock replaces time.Now for latency measurement.
func WithClock(now func() time.Time) Option {
	return func(p *Prober) {
		p.now = now
	}
}

// Prober pings one URL on a self-rearming schedule.
type Prober struct {
	cfg       Config
	ceiling   int
	transport Transport
	scheduler Scheduler
	logger    *slog.Logger
	now       func() time.Time

	mutex           sync.Mutex
	running         bool
	inFlight        bool
	generation      uint64
	intervalMinutes int
	previousMs      int64
	timer           Timer
}

// New validates cfg and returns an idle Prober. It returns a *ConfigError
// when the configuration is rejected.
func New(cfg Config, opts ...Option) (*Prober, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	p := &Prober{
		cfg:             cfg,
		ceiling:         cfg.ceiling(),
		scheduler:       SystemScheduler(),
		logger:          slog.Default(),
		now:             time.Now,
		intervalMinutes: cfg.IntervalMinutes,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.transport == nil {
		p.transport = transport.New(transport.Config{})
	}

	p.logger = p.logger.With(slog.String("target", cfg.URL))
	p.logger.Info("Prober initialized",
		slog.Int("interval_minutes", cfg.IntervalMinutes),
		slog.Int("ceiling_minutes", p.ceiling),
		slog.Bool("fixed", cfg.Fixed))

	return p, nil
}

// Start arms the first probe with no delay. Calling Start on a running
// Prober does nothing. When a request from an earlier run is still in
// flight, the first probe is armed as soon as that request returns.
func (p *Prober) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.running {
		p.logger.Debug("Prober is already running")
		return
	}

	p.running = true
	p.generation++
	if !p.inFlight {
		p.arm(0)
	}

	p.logger.Info("Prober started")
}

// Stop cancels the pending wake-up. A probe already in flight completes and
// reports through the hooks, but does not schedule another one.
func (p *Prober) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.running {
		return
	}

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.running = false

	p.logger.Info("Prober stopped")
}

// Interval returns the delay that will be used for the next wake-up.
func (p *Prober) Interval() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.interval()
}

// Running reports whether a schedule is active.
func (p *Prober) Running() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.running
}

// PreviousResponseTime returns the last sample fed to the interval policy.
func (p *Prober) PreviousResponseTime() time.Duration {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return time.Duration(p.previousMs) * time.Millisecond
}

// Snapshot returns the current state for introspection.
func (p *Prober) Snapshot() State {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	return State{
		URL:                    p.cfg.URL,
		Running:                p.running,
		Fixed:                  p.cfg.Fixed,
		IntervalMinutes:        p.intervalMinutes,
		IntervalMs:             p.interval().Milliseconds(),
		CeilingMinutes:         p.ceiling,
		PreviousResponseTimeMs: p.previousMs,
	}
}

// interval must be called with the mutex held.
func (p *Prober) interval() time.Duration {
	return time.Duration(p.intervalMinutes) * time.Minute
}

// arm must be called with the mutex held.
func (p *Prober) arm(delay time.Duration) {
	generation := p.generation
	p.timer = p.scheduler.AfterFunc(delay, func() {
		p.runCycle(generation)
	})
}

// record stores the sample and applies the interval policy. It must be called
// with the mutex held.
func (p *Prober) record(sampleMs int64) {
	p.previousMs = sampleMs
	if p.cfg.Fixed {
		return
	}
	p.intervalMinutes = Adjust(p.intervalMinutes, p.ceiling, sampleMs)
}

func (p *Prober) runCycle(generation uint64) {
	p.mutex.Lock()
	if !p.running || p.generation != generation {
		p.mutex.Unlock()
		return
	}
	p.timer = nil
	p.inFlight = true
	p.mutex.Unlock()

	start := p.now()
	payload, err := p.transport.Get(context.Background(), p.cfg.URL)
	latency := p.now().Sub(start)

	if err != nil {
		err = &ProbeError{URL: p.cfg.URL, Latency: latency, Err: err}
		p.logger.Warn("Ping failed",
			slog.Duration("latency", latency),
			slog.Any("err", err))
		if p.cfg.OnError != nil {
			p.cfg.OnError(err)
		}
	} else {
		p.logger.Debug("Ping successful", slog.Duration("latency", latency))
		if p.cfg.OnSuccess != nil {
			p.cfg.OnSuccess(payload)
		}
	}

	p.mutex.Lock()
	sample := latency.Milliseconds()
	if err != nil {
		sample = p.previousMs * 2
	}

	before := p.intervalMinutes
	p.record(sample)
	after := p.intervalMinutes
	next := p.interval()

	p.inFlight = false
	switch {
	case !p.running:
	case p.generation == generation:
		p.arm(next)
	default:
		// Restarted while this request was in flight.
		p.arm(0)
	}
	p.mutex.Unlock()

	if before != after {
		p.logger.Info("Ping interval adjusted",
			slog.Int("from_minutes", before),
			slog.Int("to_minutes", after),
			slog.Int64("sample_ms", sample))
	}

	if p.cfg.OnCycle != nil {
		p.cfg.OnCycle(Cycle{
			Latency:  latency,
			Sample:   sample,
			Err:      err,
			Interval: next,
			Changed:  before != after,
		})
	}
}
