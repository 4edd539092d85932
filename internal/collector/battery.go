package collector

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/prabalesh/sysmon/internal/models"
)

func (h *hostSource) Battery(ctx context.Context) (*models.BatteryStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return readBattery(h.powerSupplyDir)
}

// readBattery reads the first BAT* entry under a sysfs power_supply
// directory. No battery (desktops, non-Linux hosts) is nil, nil.
func readBattery(root string) (*models.BatteryStatus, error) {
	batteryDirs, err := filepath.Glob(filepath.Join(root, "BAT*"))
	if err != nil || len(batteryDirs) == 0 {
		return nil, nil
	}

	batteryDir := batteryDirs[0]

	level, err := readSysfsInt(filepath.Join(batteryDir, "capacity"))
	if err != nil {
		return nil, fmt.Errorf("battery capacity: %w", err)
	}
	status := readSysfsString(filepath.Join(batteryDir, "status"))

	return &models.BatteryStatus{
		Percent:   float64(level),
		PluggedIn: pluggedIn(root, status),
	}, nil
}

// pluggedIn trusts a mains adapter's "online" flag when one exists and
// falls back to the battery status otherwise.
func pluggedIn(root, batteryStatus string) bool {
	for _, pattern := range []string{"AC*", "ADP*", "ACAD*"} {
		adapters, _ := filepath.Glob(filepath.Join(root, pattern))
		for _, dir := range adapters {
			if online, err := readSysfsInt(filepath.Join(dir, "online")); err == nil {
				return online == 1
			}
		}
	}

	switch batteryStatus {
	case "Charging", "Full", "Not charging":
		return true
	}
	return false
}

func readSysfsInt(path string) (int, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(content)))
}

func readSysfsString(path string) string {
	if content, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(content))
	}
	return "Unknown"
}
