package collector

import (
	"context"
	"errors"
	"fmt"

	"github.com/prabalesh/sysmon/internal/models"
	psnet "github.com/shirou/gopsutil/v3/net"
)

// DeriveRates turns two readings of the cumulative byte counters into
// download and upload rates in bytes/sec. A non-positive interval yields zero
// rates, and a counter that went backwards (interface reset, wraparound)
// contributes zero.
func DeriveRates(prev, cur models.CounterSnapshot) (down, up float64) {
	elapsed := cur.At.Sub(prev.At).Seconds()
	if elapsed <= 0 {
		return 0, 0
	}
	return float64(counterDelta(prev.BytesRecv, cur.BytesRecv)) / elapsed,
		float64(counterDelta(prev.BytesSent, cur.BytesSent)) / elapsed
}

func counterDelta(prev, cur uint64) uint64 {
	if cur < prev {
		return 0
	}
	return cur - prev
}

func (h *hostSource) NetCounters(ctx context.Context) (uint64, uint64, error) {
	counters, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return 0, 0, fmt.Errorf("net io counters: %w", err)
	}
	if len(counters) == 0 {
		return 0, 0, errors.New("net io counters: no data")
	}
	return counters[0].BytesRecv, counters[0].BytesSent, nil
}

func (h *hostSource) Connections(ctx context.Context, kind string) ([]models.Connection, error) {
	stats, err := psnet.ConnectionsWithContext(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("net connections: %w", err)
	}

	conns := make([]models.Connection, 0, len(stats))
	for _, s := range stats {
		conns = append(conns, toConnection(s))
	}
	return conns, nil
}

// toConnection maps a gopsutil connection. An empty peer address or a zero
// peer port (how /proc reports listening sockets) means no remote end.
func toConnection(s psnet.ConnectionStat) models.Connection {
	c := models.Connection{
		Local:  models.Endpoint{IP: s.Laddr.IP, Port: uint16(s.Laddr.Port)},
		Status: models.ConnStatus(s.Status),
		Family: s.Family,
		Type:   s.Type,
		PID:    s.Pid,
	}
	if s.Raddr.IP != "" && s.Raddr.Port != 0 {
		c.Remote = &models.Endpoint{IP: s.Raddr.IP, Port: uint16(s.Raddr.Port)}
	}
	return c
}
