// Package poller drives the round-robin sensor acquisition loop. One
// sensor is read per cycle boundary so the worst case latency added to
// the loop is a single bus conversion, keeping the protocol surfaces
// responsive.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"time"

	"github.com/NathanReed/tempsentry/internal/indicator"
	"github.com/NathanReed/tempsentry/internal/metrics"
	"github.com/NathanReed/tempsentry/internal/sensor"
	"github.com/NathanReed/tempsentry/internal/store"
)

const (
	// DefaultTickPeriod is the wall-clock scheduling tick.
	DefaultTickPeriod = 100 * time.Millisecond

	// DefaultCycleTicks spaces sensor reads: 50 ticks at 100 ms is
	// one conversion every 5 seconds.
	DefaultCycleTicks = 50
)

type (
	// CycleListener receives a snapshot of the table every time the
	// round-robin cursor wraps, i.e. once per full polling cycle.
	CycleListener func(records []store.Record)

	Poller struct {
		sensors  sensor.Sensors
		store    *store.SensorStore
		activity *indicator.Activity
		metrics  *metrics.Metrics

		cycleTicks          int
		cycleTicksRemaining int
		currentIndex        int

		listeners []CycleListener
	}
)

func New(sensors sensor.Sensors, st *store.SensorStore, activity *indicator.Activity, m *metrics.Metrics, cycleTicks int) *Poller {
	if cycleTicks <= 0 {
		cycleTicks = DefaultCycleTicks
	}

	return &Poller{
		sensors:             sensors,
		store:               st,
		activity:            activity,
		metrics:             m,
		cycleTicks:          cycleTicks,
		cycleTicksRemaining: cycleTicks,
	}
}

// OnCycleComplete registers a listener; must be called before Run.
func (p *Poller) OnCycleComplete(fn CycleListener) {
	p.listeners = append(p.listeners, fn)
}

// CurrentIndex reports the round-robin cursor.
func (p *Poller) CurrentIndex() int {
	return p.currentIndex
}

// Tick advances the scheduler by one tick. Most ticks are no-ops; on
// the cycle boundary exactly one sensor is read and its slot updated.
func (p *Poller) Tick() {
	p.cycleTicksRemaining--
	if p.cycleTicksRemaining > 0 {
		return
	}

	p.cycleTicksRemaining = p.cycleTicks

	count := p.store.Count()
	if count == 0 {
		slog.Warn("no sensors discovered, nothing to poll")
		return
	}

	rec, ok := p.store.Record(p.currentIndex)
	if !ok {
		slog.Error("poll cursor out of range", "index", p.currentIndex)
		p.currentIndex = 0
		return
	}

	p.readSensor(rec)

	p.currentIndex = (p.currentIndex + 1) % count
	if p.currentIndex == 0 {
		slog.Debug("polling cycle complete", "sensors", count)
		if p.metrics != nil {
			p.metrics.CyclesCompleted.Inc()
		}

		if len(p.listeners) > 0 {
			snapshot := p.store.Records()
			for _, fn := range p.listeners {
				fn(snapshot)
			}
		}
	}

	if p.activity != nil {
		p.activity.Pulse(indicator.DefaultPulseTicks)
	}
}

func (p *Poller) readSensor(rec store.Record) {
	t, err := p.sensors.ReadTemperature(rec.Address)
	if err != nil {
		// keep the last known good value in the table
		if errors.Is(err, sensor.ErrDisconnected) {
			slog.Warn("sensor disconnected, keeping previous reading", "address", rec.Address)
		} else {
			slog.Error("sensor read failed, keeping previous reading", "address", rec.Address, "error", err)
		}

		if p.metrics != nil {
			p.metrics.SensorReads.WithLabelValues("failed").Inc()
		}

		return
	}

	deciC := int(math.Round(t * 10))
	p.store.SetTemperature(rec.Index, deciC)

	slog.Debug("read temperature", "address", rec.Address, "deci_c", deciC)
	if p.metrics != nil {
		p.metrics.SensorReads.WithLabelValues("ok").Inc()
	}
}

// Run drives Tick and the activity LED decay on a fixed wall-clock
// period until the context is canceled. It is the sole writer to the
// sensor store.
func (p *Poller) Run(ctx context.Context, tickPeriod time.Duration) {
	slog.Info(">>Run poller", "tick_period", tickPeriod, "cycle_ticks", p.cycleTicks)
	defer slog.Info("<<Run poller")

	if tickPeriod <= 0 {
		tickPeriod = DefaultTickPeriod
	}

	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-ticker.C:
			p.Tick()
			if p.activity != nil {
				p.activity.Tick()
			}
		}
	}
}
