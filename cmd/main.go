package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/pkg/errors"

	"github.com/angeloszaimis/ping-keeper/config"
	"github.com/angeloszaimis/ping-keeper/internal/handler"
	"github.com/angeloszaimis/ping-keeper/internal/httpserver"
	"github.com/angeloszaimis/ping-keeper/internal/metrics"
	"github.com/angeloszaimis/ping-keeper/internal/prober"
	"github.com/angeloszaimis/ping-keeper/internal/transport"
	"github.com/angeloszaimis/ping-keeper/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, true, cfg.Server.Environment)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector := metrics.NewCollector(cfg.Target.URL, cfg.Metrics.BufferSize, log)
	collector.Start(ctx)

	p, err := newProber(cfg, collector, log)
	if err != nil {
		log.Error("Failed to create prober", slog.Any("err", err))
		os.Exit(1)
	}

	router := setupRouter(handler.NewStatusHandler(log, p), collector)

	srv, err := httpserver.New(cfg.Server.Address, router, httpserver.WithLogger(log))
	if err != nil {
		log.Error("Failed to create server", slog.Any("err", err))
		os.Exit(1)
	}

	var g run.Group
	{
		stop := make(chan struct{})
		g.Add(func() error {
			p.Start()
			<-stop
			return nil
		}, func(error) {
			p.Stop()
			close(stop)
		})
	}
	{
		g.Add(srv.Start, func(error) {
			if err := srv.Shutdown(context.Background()); err != nil {
				log.Error("Error during shutdown", slog.Any("err", err))
			}
		})
	}
	{
		cancelCh := make(chan struct{})
		g.Add(func() error {
			return interrupt(log, cancelCh)
		}, func(error) {
			close(cancelCh)
		})
	}

	if err := g.Run(); err != nil {
		log.Error("Keepalive stopped", slog.String("err", fmt.Sprintf("%+v", errors.Wrap(err, "run failed"))))
		os.Exit(1)
	}
	log.Info("Exiting")
}

func newProber(cfg *config.Config, collector *metrics.Collector, log *slog.Logger) (*prober.Prober, error) {
	client := transport.New(transport.Config{
		Timeout: cfg.Timeout(),
		HTTP2:   cfg.Target.HTTP2,
	})

	p, err := prober.New(prober.Config{
		URL:                      cfg.Target.URL,
		IntervalMinutes:          cfg.Schedule.IntervalMinutes,
		IntervalMinutesOnTraffic: cfg.Schedule.IntervalMinutesOnTraffic,
		Fixed:                    cfg.Schedule.Mode == config.ModeFixed,
		OnSuccess: func(payload []byte) {
			log.Debug("Ping response received", slog.Int("bytes", len(payload)))
		},
		OnCycle: observeCycles(collector),
	}, prober.WithTransport(client), prober.WithLogger(log))
	if err != nil {
		return nil, err
	}

	collector.Publish(metrics.Event{
		Type:     metrics.EventIntervalChanged,
		Interval: p.Interval(),
	})

	return p, nil
}

// observeCycles forwards probe outcomes to the metrics collector.
func observeCycles(collector *metrics.Collector) func(prober.Cycle) {
	return func(c prober.Cycle) {
		now := time.Now()

		event := metrics.Event{
			Type:      metrics.EventProbeSucceeded,
			Timestamp: now,
			Latency:   c.Latency,
		}
		if c.Err != nil {
			event.Type = metrics.EventProbeFailed
			event.Err = c.Err
		}
		collector.Publish(event)

		collector.Publish(metrics.Event{
			Type:      metrics.EventIntervalChanged,
			Timestamp: now,
			Interval:  c.Interval,
			Changed:   c.Changed,
		})
	}
}

func interrupt(log *slog.Logger, cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(c)

	select {
	case s := <-c:
		log.Info("Shutting down gracefully...", slog.String("signal", s.String()))
		return nil
	case <-cancel:
		return errors.New("canceled")
	}
}
