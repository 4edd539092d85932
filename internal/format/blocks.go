package format

import (
	"fmt"
	"strings"

	"github.com/prabalesh/sysmon/internal/models"
)

// Text blocks per metric category. Each returns the lines the monitor view
// renders for one section.

func CPUBlock(cpu models.CPUStats) string {
	return strings.Join([]string{
		"CPU Usage: " + Percent(cpu.Percent),
		"CPU Frequency: " + MHz(cpu.FreqMHz),
		"CPU Temperature: " + Temperature(cpu.Temperature),
	}, "\n")
}

func MemoryBlock(mem models.MemoryStats) string {
	return strings.Join([]string{
		"Memory Usage: " + Percent(mem.Percent),
		"Used: " + mustBytes(mem.Used),
		"Available: " + mustBytes(mem.Available),
	}, "\n")
}

// NetworkBlock falls back to "N/A" for a rate that cannot be formatted;
// rates are clamped at zero upstream so this only guards against NaN.
func NetworkBlock(net models.NetworkStats) string {
	down, err := Rate(net.DownloadRate)
	if err != nil {
		down = "N/A"
	}
	up, err := Rate(net.UploadRate)
	if err != nil {
		up = "N/A"
	}
	return strings.Join([]string{
		"Network:",
		"Download: " + down,
		"Upload: " + up,
	}, "\n")
}

func PowerBlock(b *models.BatteryStatus) string {
	if b == nil {
		return "Power information not available"
	}
	plugged := "On Battery"
	if b.PluggedIn {
		plugged = "Plugged In"
	}
	return strings.Join([]string{
		"Power:",
		"Battery: " + Percent(b.Percent),
		"Status: " + plugged,
	}, "\n")
}

func SystemBlock(id models.SystemIdentity) string {
	return strings.Join([]string{
		"System: " + id.OS,
		"Node Name: " + id.Hostname,
		"Release: " + id.Release,
		"Version: " + id.Version,
		"Machine: " + id.Machine,
		"Processor: " + id.Processor,
	}, "\n")
}

// ConnectionRow returns the five table columns for a connection. Remote
// columns are blank when the socket has no peer.
func ConnectionRow(c models.Connection) []string {
	row := []string{c.Local.IP, fmt.Sprint(c.Local.Port), "", "", string(c.Status)}
	if c.Remote != nil {
		row[2] = c.Remote.IP
		row[3] = fmt.Sprint(c.Remote.Port)
	}
	return row
}
