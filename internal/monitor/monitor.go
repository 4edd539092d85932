// Package monitor runs the sampling loop. It owns the Sampler and the series
// Store, merges each tick into the displayed state and hands the result to a
// single consumer.
package monitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/prabalesh/sysmon/internal/collector"
	"github.com/prabalesh/sysmon/internal/logger"
	"github.com/prabalesh/sysmon/internal/models"
	"github.com/prabalesh/sysmon/internal/series"
)

const DefaultInterval = time.Second

var ErrInvalidInterval = errors.New("monitor: interval must be positive")

// Sampler is the part of collector.Sampler the loop needs.
type Sampler interface {
	Tick(ctx context.Context) (models.Snapshot, error)
	Identity(ctx context.Context) (models.SystemIdentity, error)
}

// State is what the display layer renders after a tick. The history slices
// are copies and may be kept by the receiver.
type State struct {
	Snapshot models.Snapshot
	Identity models.SystemIdentity

	CPUHistory      []float64
	MemoryHistory   []float64
	DownloadHistory []float64
	UploadHistory   []float64

	// Err is the error of the latest tick. Sections it names still show
	// their previous values.
	Err error

	Ticks     uint64
	UpdatedAt time.Time
}

type Monitor struct {
	sampler  Sampler
	store    *series.Store
	interval time.Duration
	log      *slog.Logger

	mu          sync.Mutex
	current     models.Snapshot
	identity    models.SystemIdentity
	hasIdentity bool
	ticks       uint64

	updates chan State
}

type Option func(*Monitor)

func WithInterval(d time.Duration) Option {
	return func(m *Monitor) { m.interval = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Monitor) { m.log = l }
}

func New(sampler Sampler, store *series.Store, opts ...Option) *Monitor {
	m := &Monitor{
		sampler:  sampler,
		store:    store,
		interval: DefaultInterval,
		updates:  make(chan State, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.store == nil {
		m.store = series.NewStore(series.DefaultCapacity)
	}
	if m.log == nil {
		m.log = logger.Default()
	}
	return m
}

// Updates delivers the most recent State. An unread State is replaced by a
// newer one, so a slow reader only ever sees the latest tick.
func (m *Monitor) Updates() <-chan State {
	return m.updates
}

// Run samples immediately and then once per interval until ctx is done.
func (m *Monitor) Run(ctx context.Context) error {
	if m.interval <= 0 {
		return ErrInvalidInterval
	}

	m.log.Info("monitor started", "interval", m.interval, "history", m.store.Capacity())
	defer m.log.Info("monitor stopped")

	m.Step(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Step(ctx)
		}
	}
}

// Step performs one tick, merges it into the current state, records the
// series values of the sections that succeeded and publishes the result.
// Network rates are recorded only once two counter readings exist.
func (m *Monitor) Step(ctx context.Context) State {
	snap, err := m.sampler.Tick(ctx)
	if err != nil {
		m.log.Warn("tick incomplete", "error", err)
	}

	m.mu.Lock()
	m.merge(snap, err)
	m.ticks++
	if !m.hasIdentity {
		m.loadIdentity(ctx)
	}
	state := State{
		Snapshot:        m.current,
		Identity:        m.identity,
		CPUHistory:      m.store.View(series.CPUPercent),
		MemoryHistory:   m.store.View(series.MemoryPercent),
		DownloadHistory: m.store.View(series.DownloadRate),
		UploadHistory:   m.store.View(series.UploadRate),
		Err:             err,
		Ticks:           m.ticks,
		UpdatedAt:       snap.TakenAt,
	}
	m.mu.Unlock()

	m.publish(state)
	return state
}

func (m *Monitor) merge(snap models.Snapshot, err error) {
	if !collector.FailedSection(err, collector.CategoryCPU) {
		m.current.CPU = snap.CPU
		m.store.Record(series.CPUPercent, snap.CPU.Percent)
	}
	if !collector.FailedSection(err, collector.CategoryMemory) {
		m.current.Memory = snap.Memory
		m.store.Record(series.MemoryPercent, snap.Memory.Percent)
	}
	if !collector.FailedSection(err, collector.CategoryNetwork) {
		m.current.Network = snap.Network
		if snap.Network.RateValid {
			m.store.Record(series.DownloadRate, snap.Network.DownloadRate)
			m.store.Record(series.UploadRate, snap.Network.UploadRate)
		}
	}
	if !collector.FailedSection(err, collector.CategoryConnections) {
		m.current.Connections = snap.Connections
	}
	m.current.Battery = snap.Battery
	m.current.TakenAt = snap.TakenAt
}

func (m *Monitor) loadIdentity(ctx context.Context) {
	id, err := m.sampler.Identity(ctx)
	if err != nil {
		m.log.Warn("system identity unavailable", "error", err)
		return
	}
	m.identity = id
	m.hasIdentity = true
}

func (m *Monitor) publish(s State) {
	select {
	case <-m.updates:
	default:
	}
	select {
	case m.updates <- s:
	default:
	}
}
