package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/prabalesh/sysmon/internal/models"
	"github.com/prabalesh/sysmon/internal/monitor"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState() monitor.State {
	return monitor.State{
		Snapshot: models.Snapshot{
			CPU:    models.CPUStats{Percent: 12.5, FreqMHz: 2400, Temperature: models.TemperatureOf(48)},
			Memory: models.MemoryStats{Percent: 50, Used: 4 << 30, Available: 4 << 30, Total: 8 << 30},
			Network: models.NetworkStats{
				DownloadRate: 1536,
				UploadRate:   512,
			},
			Connections: []models.Connection{
				{Local: models.Endpoint{IP: "0.0.0.0", Port: 22}, Status: models.StatusListen},
				{
					Local:  models.Endpoint{IP: "10.0.0.2", Port: 50000},
					Remote: &models.Endpoint{IP: "93.184.216.34", Port: 443},
					Status: models.StatusEstablished,
				},
			},
			TakenAt: time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
		},
		Identity: models.SystemIdentity{
			OS:        "Linux",
			Hostname:  "workstation",
			Release:   "6.8.0",
			Machine:   "x86_64",
			Processor: "AMD Ryzen 7",
		},
		CPUHistory:      []float64{10, 12.5},
		MemoryHistory:   []float64{50, 50},
		DownloadHistory: []float64{0, 1536},
		UploadHistory:   []float64{0, 512},
		UpdatedAt:       time.Date(2024, 1, 1, 12, 30, 0, 0, time.UTC),
	}
}

func newSizedApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	a := NewApp(nil, opts...)
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 80})
	return a
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestApp_ViewBeforeResize(t *testing.T) {
	a := NewApp(nil)
	assert.Equal(t, "Loading...", a.View())
}

func TestApp_WaitsForFirstState(t *testing.T) {
	a := newSizedApp(t)
	assert.Contains(t, a.View(), "Waiting for the first sample")
}

func TestApp_InitReceivesPublishedState(t *testing.T) {
	ch := make(chan monitor.State, 1)
	ch <- sampleState()

	a := NewApp(ch)
	cmd := a.Init()
	require.NotNil(t, cmd)

	msg := cmd()
	_, ok := msg.(stateMsg)
	require.True(t, ok)

	_, next := a.Update(msg)
	assert.NotNil(t, next, "the next receive is scheduled")
	assert.True(t, a.hasState)
}

func TestApp_MonitorTab(t *testing.T) {
	a := newSizedApp(t)
	a.Update(stateMsg(sampleState()))

	view := a.View()
	assert.Contains(t, view, "CPU Usage: 12.5%")
	assert.Contains(t, view, "CPU Temperature: 48.0°C")
	assert.Contains(t, view, "Memory Usage: 50.0%")
	assert.Contains(t, view, "Download: 1.50 KB/s")
	assert.Contains(t, view, "Power information not available")
	assert.Contains(t, view, "Network Usage (KB/s)")
	assert.Contains(t, view, "Updated 12:30:00")
}

func TestApp_TabNavigation(t *testing.T) {
	a := newSizedApp(t)
	a.Update(stateMsg(sampleState()))

	a.Update(keyPress("right"))
	assert.Equal(t, tabNetwork, a.activeTab)
	view := a.View()
	assert.Contains(t, view, "Local Address")
	assert.Contains(t, view, "93.184.216.34")
	assert.Contains(t, view, "2 connections")

	a.Update(keyPress("tab"))
	assert.Equal(t, tabSystemInfo, a.activeTab)
	view = a.View()
	assert.Contains(t, view, "Node Name: workstation")
	assert.Contains(t, view, "Processor: AMD Ryzen 7")

	a.Update(keyPress("right"))
	assert.Equal(t, tabMonitor, a.activeTab, "tabs wrap around")

	a.Update(keyPress("left"))
	assert.Equal(t, tabSystemInfo, a.activeTab)
}

func TestApp_ThemeToggle(t *testing.T) {
	a := newSizedApp(t)
	assert.Equal(t, ThemeLight, a.theme)

	a.Update(keyPress("t"))
	assert.Equal(t, ThemeDark, a.theme)

	a.Update(keyPress("t"))
	assert.Equal(t, ThemeLight, a.theme)

	dark := newSizedApp(t, WithTheme(ThemeDark))
	assert.Equal(t, ThemeDark, dark.theme)
}

func TestApp_AboutBox(t *testing.T) {
	a := newSizedApp(t)

	a.Update(keyPress("a"))
	require.True(t, a.showAbout)
	view := a.View()
	assert.Contains(t, view, "About System Monitor")
	assert.Contains(t, view, websiteURL)

	a.Update(keyPress("right"))
	assert.False(t, a.showAbout)
	assert.Equal(t, tabMonitor, a.activeTab, "closing key is swallowed")
}

func TestApp_Quit(t *testing.T) {
	a := newSizedApp(t)
	_, cmd := a.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_StatusShowsTickError(t *testing.T) {
	a := newSizedApp(t)

	s := sampleState()
	s.Err = errors.New("connections query permission denied")
	a.Update(stateMsg(s))
	assert.Contains(t, a.View(), "connections query permission denied")

	a.Update(stateMsg(sampleState()))
	assert.NotContains(t, a.View(), "permission denied")
}

func TestApp_ConnectionTableRows(t *testing.T) {
	a := newSizedApp(t)
	a.Update(stateMsg(sampleState()))

	rows := a.connTable.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "", rows[0][2], "listening socket has no remote address")
	assert.Equal(t, "443", rows[1][3])
}

func TestApp_VerticalScroll(t *testing.T) {
	a := NewApp(nil)
	a.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	a.Update(stateMsg(sampleState()))

	a.View()
	require.Greater(t, a.getMaxScrollOffset(), 0)

	a.Update(keyPress("down"))
	assert.Equal(t, 1, a.verticalScrollOffset)
	assert.Contains(t, a.View(), "More content above")

	a.Update(keyPress("right"))
	assert.Zero(t, a.verticalScrollOffset, "changing tabs resets scroll")
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeDark, ParseTheme("DARK"))
	assert.Equal(t, ThemeLight, ParseTheme(""))
	assert.Equal(t, ThemeLight, ThemeDark.Toggle())
}

func TestChartRender(t *testing.T) {
	out := cpuChart(nil).render(80, NewStyles(ThemeLight).axis)
	assert.Contains(t, out, "CPU Usage (%)")

	out = networkChart([]float64{1024, 2048}, []float64{0, 512}).render(80, NewStyles(ThemeDark).axis)
	assert.Contains(t, out, "Download")
	assert.Contains(t, out, "Upload")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
	assert.Equal(t, "abc", truncateString("abcdef", 3))
}
