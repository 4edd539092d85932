package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
)

func (h *hostSource) CPUPercent(ctx context.Context) (float64, error) {
	percent, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("cpu percent: %w", err)
	}
	if len(percent) == 0 {
		return 0, errors.New("cpu percent: no data")
	}
	return percent[0], nil
}

// CPUFrequency prefers the live "cpu MHz" of /proc/cpuinfo; gopsutil reports
// the maximum frequency on Linux.
func (h *hostSource) CPUFrequency(ctx context.Context) (float64, error) {
	if _, freq := parseCPUInfo(h.cpuinfoPath); freq > 0 {
		return freq, nil
	}

	infos, err := cpu.InfoWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("cpu info: %w", err)
	}
	if len(infos) == 0 {
		return 0, errors.New("cpu info: no data")
	}
	return infos[0].Mhz, nil
}

// cpuModel returns the processor description.
func (h *hostSource) cpuModel(ctx context.Context) string {
	if model, _ := parseCPUInfo(h.cpuinfoPath); model != "" {
		return model
	}
	infos, err := cpu.InfoWithContext(ctx)
	if err != nil || len(infos) == 0 {
		return ""
	}
	return infos[0].ModelName
}

// parseCPUInfo reads the first model name and cpu MHz entries. Missing
// fields come back empty / zero.
func parseCPUInfo(path string) (string, float64) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", 0
	}

	modelName := ""
	freq := 0.0
	for _, line := range strings.Split(string(content), "\n") {
		if strings.HasPrefix(line, "model name") {
			if parts := strings.SplitN(line, ":", 2); len(parts) == 2 {
				modelName = strings.TrimSpace(parts[1])
			}
		} else if strings.HasPrefix(line, "cpu MHz") {
			if parts := strings.SplitN(line, ":", 2); len(parts) == 2 {
				if f, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err == nil {
					freq = f
				}
			}
		}
		if modelName != "" && freq != 0.0 {
			break
		}
	}

	return modelName, freq
}

// Temperature looks up the first reading of one sensor chip. gopsutil
// returns partial results alongside warnings, so a matching reading wins over
// any error.
func (h *hostSource) Temperature(ctx context.Context, sensorKey string) (float64, error) {
	temps, err := host.SensorsTemperaturesWithContext(ctx)
	if celsius, ok := matchSensor(temps, sensorKey); ok {
		return celsius, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}
	if err != nil {
		if !sensorAbsent(err) {
			return 0, fmt.Errorf("sensor temperatures: %w", err)
		}
		return 0, fmt.Errorf("%w: %q: %v", ErrSensorUnavailable, sensorKey, err)
	}
	return 0, fmt.Errorf("%w: no %q reading", ErrSensorUnavailable, sensorKey)
}

// matchSensor finds the first reading of a chip. gopsutil names readings
// "<chip>_<label>", so the key matches itself or a "<key>_" prefix.
func matchSensor(temps []host.TemperatureStat, sensorKey string) (float64, bool) {
	for _, t := range temps {
		if t.SensorKey == sensorKey || strings.HasPrefix(t.SensorKey, sensorKey+"_") {
			return t.Temperature, true
		}
	}
	return 0, false
}

// sensorAbsent reports whether a sensor error means the hardware or platform
// has nothing to read, as opposed to a failed read.
func sensorAbsent(err error) bool {
	var warns *host.Warnings
	if errors.As(err, &warns) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	return classify(err) != KindOther
}
