package collector

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/prabalesh/sysmon/internal/models"
	"github.com/shirou/gopsutil/v3/host"
	psnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadBattery(t *testing.T) {
	t.Run("no battery", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "AC", "online"), "1\n")

		status, err := readBattery(root)
		require.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("missing directory", func(t *testing.T) {
		status, err := readBattery(filepath.Join(t.TempDir(), "nope"))
		require.NoError(t, err)
		assert.Nil(t, status)
	})

	t.Run("on mains", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "BAT0", "capacity"), "87\n")
		writeFile(t, filepath.Join(root, "BAT0", "status"), "Discharging\n")
		writeFile(t, filepath.Join(root, "AC", "online"), "1\n")

		status, err := readBattery(root)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, 87.0, status.Percent)
		assert.True(t, status.PluggedIn, "adapter flag wins over battery status")
	})

	t.Run("on battery without adapter", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "BAT1", "capacity"), "40")
		writeFile(t, filepath.Join(root, "BAT1", "status"), "Discharging")

		status, err := readBattery(root)
		require.NoError(t, err)
		require.NotNil(t, status)
		assert.Equal(t, &models.BatteryStatus{Percent: 40, PluggedIn: false}, status)
	})

	t.Run("unreadable capacity", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, filepath.Join(root, "BAT0", "capacity"), "lots")

		status, err := readBattery(root)
		assert.Error(t, err)
		assert.Nil(t, status)
	})
}

func TestHostSourceBattery_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "BAT0", "capacity"), "80\n")
	src := &hostSource{powerSupplyDir: root}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	status, err := src.Battery(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, status)

	status, err = src.Battery(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.Equal(t, 80.0, status.Percent)
}

func TestPluggedIn_FallsBackToBatteryStatus(t *testing.T) {
	root := t.TempDir()

	tests := map[string]bool{
		"Charging":     true,
		"Full":         true,
		"Not charging": true,
		"Discharging":  false,
		"Unknown":      false,
	}
	for status, want := range tests {
		assert.Equal(t, want, pluggedIn(root, status), status)
	}
}

func TestPluggedIn_AdapterOffline(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ADP1", "online"), "0")

	assert.False(t, pluggedIn(root, "Charging"))
}

func TestParseCPUInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpuinfo")
	writeFile(t, path, `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz
cpu MHz		: 2000.123
cache size	: 8192 KB

processor	: 1
model name	: Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz
cpu MHz		: 3400.000
`)

	model, freq := parseCPUInfo(path)
	assert.Equal(t, "Intel(R) Core(TM) i7-8550U CPU @ 1.80GHz", model)
	assert.InDelta(t, 2000.123, freq, 1e-9)
}

func TestParseCPUInfo_MissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpuinfo")
	writeFile(t, path, "processor\t: 0\nBogoMIPS\t: 48.00\n")

	model, freq := parseCPUInfo(path)
	assert.Empty(t, model)
	assert.Zero(t, freq)

	model, freq = parseCPUInfo(filepath.Join(t.TempDir(), "missing"))
	assert.Empty(t, model)
	assert.Zero(t, freq)
}

func TestToConnection(t *testing.T) {
	t.Run("listening socket has no remote", func(t *testing.T) {
		c := toConnection(psnet.ConnectionStat{
			Family: 2,
			Type:   1,
			Laddr:  psnet.Addr{IP: "0.0.0.0", Port: 22},
			Status: "LISTEN",
		})
		assert.Nil(t, c.Remote)
		assert.Equal(t, models.Endpoint{IP: "0.0.0.0", Port: 22}, c.Local)
		assert.Equal(t, models.StatusListen, c.Status)
	})

	t.Run("zero peer port counts as absent", func(t *testing.T) {
		c := toConnection(psnet.ConnectionStat{
			Laddr: psnet.Addr{IP: "::", Port: 5353},
			Raddr: psnet.Addr{IP: "::", Port: 0},
		})
		assert.Nil(t, c.Remote)
	})

	t.Run("established connection", func(t *testing.T) {
		c := toConnection(psnet.ConnectionStat{
			Laddr:  psnet.Addr{IP: "192.168.1.10", Port: 51234},
			Raddr:  psnet.Addr{IP: "140.82.112.3", Port: 443},
			Status: "ESTABLISHED",
			Pid:    4242,
		})
		require.NotNil(t, c.Remote)
		assert.Equal(t, models.Endpoint{IP: "140.82.112.3", Port: 443}, *c.Remote)
		assert.Equal(t, models.StatusEstablished, c.Status)
		assert.Equal(t, int32(4242), c.PID)
	})
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"permission", fmt.Errorf("open /proc/1/fd: %w", fs.ErrPermission), KindPermissionDenied},
		{"unsupported sentinel", fmt.Errorf("connections: %w", errors.ErrUnsupported), KindUnsupported},
		{"gopsutil not implemented", errors.New(notImplementedMsg), KindUnsupported},
		{"other", errors.New("read error"), KindOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestMatchSensor(t *testing.T) {
	temps := []host.TemperatureStat{
		{SensorKey: "acpitz_temp1", Temperature: 40},
		{SensorKey: "coretemperature_input", Temperature: 99},
		{SensorKey: "coretemp_package_id_0", Temperature: 55},
		{SensorKey: "coretemp_core_0", Temperature: 52},
	}

	celsius, ok := matchSensor(temps, "coretemp")
	require.True(t, ok)
	assert.Equal(t, 55.0, celsius, "first reading of the chip, not a longer chip name")

	celsius, ok = matchSensor([]host.TemperatureStat{{SensorKey: "k10temp", Temperature: 61}}, "k10temp")
	require.True(t, ok)
	assert.Equal(t, 61.0, celsius)

	_, ok = matchSensor([]host.TemperatureStat{{SensorKey: "coretemperature", Temperature: 99}}, "coretemp")
	assert.False(t, ok)

	_, ok = matchSensor(nil, "coretemp")
	assert.False(t, ok)
}

func TestSensorAbsent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"warnings", fmt.Errorf("sensors: %w", &host.Warnings{List: []error{errors.New("hwmon1: no input")}}), true},
		{"not implemented", errors.New(notImplementedMsg), true},
		{"permission", fmt.Errorf("open hwmon: %w", fs.ErrPermission), true},
		{"no sysfs", fmt.Errorf("glob: %w", fs.ErrNotExist), true},
		{"read failure", errors.New("strconv.ParseFloat: invalid syntax"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sensorAbsent(tt.err))
		})
	}
}

func TestFailedSection(t *testing.T) {
	qe := newQueryError(CategoryMemory, errors.New("boom"))

	assert.True(t, FailedSection(qe, CategoryMemory))
	assert.False(t, FailedSection(qe, CategoryCPU))
	assert.True(t, FailedSection(&TickError{Failures: []*QueryError{qe}}, CategoryMemory))
	assert.False(t, FailedSection(nil, CategoryMemory))
	assert.False(t, FailedSection(errors.New("plain"), CategoryMemory))

	var te *TickError
	assert.False(t, te.Failed(CategoryMemory))
}

func TestIdentityCache(t *testing.T) {
	var c IdentityCache

	_, ok := c.Get()
	assert.False(t, ok)

	c.Set(models.SystemIdentity{Hostname: "box"})
	id, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, "box", id.Hostname)
}
