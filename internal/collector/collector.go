package collector

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prabalesh/sysmon/internal/logger"
	"github.com/prabalesh/sysmon/internal/models"
)

const (
	DefaultSensorKey      = "coretemp"
	DefaultConnectionKind = "inet"
)

// Sampler produces one Snapshot per Tick. It carries the previous network
// counter reading between ticks and caches the system identity.
type Sampler struct {
	src       Source
	now       func() time.Time
	sensorKey string
	connKind  string
	log       *slog.Logger

	mu           sync.Mutex
	lastNetIO    models.CounterSnapshot
	hasLastNetIO bool

	identity IdentityCache
}

type Option func(*Sampler)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Sampler) { s.now = now }
}

func WithSensorKey(key string) Option {
	return func(s *Sampler) {
		if key != "" {
			s.sensorKey = key
		}
	}
}

// WithConnectionKind sets the gopsutil connection kind ("inet", "tcp",
// "udp", "all", ...).
func WithConnectionKind(kind string) Option {
	return func(s *Sampler) {
		if kind != "" {
			s.connKind = kind
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Sampler) { s.log = l }
}

func NewSampler(src Source, opts ...Option) *Sampler {
	s := &Sampler{
		src:       src,
		now:       time.Now,
		sensorKey: DefaultSensorKey,
		connKind:  DefaultConnectionKind,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Default()
	}
	return s
}

// Tick queries every metric category once. Sensor and battery absence are
// reported inside the snapshot; failed queries are returned as a *TickError
// alongside the sections that did succeed.
func (s *Sampler) Tick(ctx context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap models.Snapshot
	var failures []*QueryError
	fail := func(cat Category, err error) {
		qe := newQueryError(cat, err)
		s.log.Debug("query failed", "category", cat, "kind", qe.Kind, "error", err)
		failures = append(failures, qe)
	}

	if percent, err := s.src.CPUPercent(ctx); err != nil {
		fail(CategoryCPU, err)
	} else {
		snap.CPU.Percent = percent
	}
	if freq, err := s.src.CPUFrequency(ctx); err != nil {
		s.log.Debug("cpu frequency unavailable", "error", err)
	} else {
		snap.CPU.FreqMHz = freq
	}
	snap.CPU.Temperature = s.temperature(ctx)

	if memory, err := s.src.VirtualMemory(ctx); err != nil {
		fail(CategoryMemory, err)
	} else {
		snap.Memory = memory
	}

	// The counter pair advances here, before anything later in the tick can
	// fail, so the next tick is always measured against this one.
	if recv, sent, err := s.src.NetCounters(ctx); err != nil {
		fail(CategoryNetwork, err)
	} else {
		snap.Network = s.advanceCounters(models.CounterSnapshot{
			BytesRecv: recv,
			BytesSent: sent,
			At:        s.now(),
		})
	}

	battery, err := s.src.Battery(ctx)
	if err != nil {
		s.log.Debug("battery unavailable", "error", err)
		battery = nil
	}
	snap.Battery = battery

	if conns, err := s.src.Connections(ctx, s.connKind); err != nil {
		fail(CategoryConnections, err)
	} else {
		snap.Connections = conns
	}

	snap.TakenAt = s.now()

	if len(failures) > 0 {
		return snap, &TickError{Failures: failures}
	}
	return snap, nil
}

func (s *Sampler) advanceCounters(cur models.CounterSnapshot) models.NetworkStats {
	stats := models.NetworkStats{BytesRecv: cur.BytesRecv, BytesSent: cur.BytesSent}
	if s.hasLastNetIO {
		stats.DownloadRate, stats.UploadRate = DeriveRates(s.lastNetIO, cur)
		stats.RateValid = true
	}
	s.lastNetIO = cur
	s.hasLastNetIO = true
	return stats
}

// temperature never fails: an absent sensor is silent, anything else is
// logged and still reported as unavailable.
func (s *Sampler) temperature(ctx context.Context) models.Temperature {
	celsius, err := s.src.Temperature(ctx, s.sensorKey)
	switch {
	case err == nil:
		return models.TemperatureOf(celsius)
	case errors.Is(err, ErrSensorUnavailable):
		s.log.Debug("temperature sensor unavailable", "sensor", s.sensorKey, "error", err)
	default:
		s.log.Warn("temperature read failed", "sensor", s.sensorKey, "error", err)
	}
	return models.Temperature{}
}

// Identity returns the system identity, reading it from the OS only until
// the first success.
func (s *Sampler) Identity(ctx context.Context) (models.SystemIdentity, error) {
	if id, ok := s.identity.Get(); ok {
		return id, nil
	}

	id, err := s.src.Identity(ctx)
	if err != nil {
		return models.SystemIdentity{}, err
	}
	s.identity.Set(id)
	return id, nil
}
