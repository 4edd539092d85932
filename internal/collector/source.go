package collector

import (
	"context"

	"github.com/prabalesh/sysmon/internal/models"
)

// Source is the boundary to the operating system. Each method performs one
// query; the Sampler decides how failures are surfaced.
type Source interface {
	CPUPercent(ctx context.Context) (float64, error)
	CPUFrequency(ctx context.Context) (float64, error)
	// Temperature returns the reading of the given sensor chip, or an error
	// wrapping ErrSensorUnavailable when there is none.
	Temperature(ctx context.Context, sensorKey string) (float64, error)
	VirtualMemory(ctx context.Context) (models.MemoryStats, error)
	NetCounters(ctx context.Context) (recv, sent uint64, err error)
	// Battery returns nil, nil when the host has no battery.
	Battery(ctx context.Context) (*models.BatteryStatus, error)
	Connections(ctx context.Context, kind string) ([]models.Connection, error)
	Identity(ctx context.Context) (models.SystemIdentity, error)
}

// hostSource reads the local machine through gopsutil, with a few Linux
// files read directly where gopsutil reports something else.
type hostSource struct {
	cpuinfoPath    string
	powerSupplyDir string
}

func NewHostSource() Source {
	return &hostSource{
		cpuinfoPath:    "/proc/cpuinfo",
		powerSupplyDir: "/sys/class/power_supply",
	}
}
