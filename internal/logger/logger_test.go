package logger

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_Text(t *testing.T) {
	Reset()
	defer Reset()

	buf := &bytes.Buffer{}
	Init(Config{Level: "info", Format: "text", Output: buf})

	Info("tick sampled", "cpu", 12.5)
	assert.Contains(t, buf.String(), "tick sampled")
	assert.Contains(t, buf.String(), "cpu=12.5")
}

func TestInit_JSON(t *testing.T) {
	Reset()
	defer Reset()

	buf := &bytes.Buffer{}
	Init(Config{Level: "info", Format: "json", Output: buf})

	Warn("json message")
	assert.Contains(t, buf.String(), `"msg":"json message"`)
}

func TestInit_FormatIgnoresCase(t *testing.T) {
	Reset()
	defer Reset()

	buf := &bytes.Buffer{}
	Init(Config{Level: "INFO", Format: "JSON", Output: buf})

	Info("upper case format")
	assert.Contains(t, buf.String(), `"msg":"upper case format"`)
}

func TestInit_OnlyFirstCallTakesEffect(t *testing.T) {
	Reset()
	defer Reset()

	first := &bytes.Buffer{}
	second := &bytes.Buffer{}
	Init(Config{Output: first})
	Init(Config{Output: second})

	Info("once")
	assert.NotZero(t, first.Len())
	assert.Zero(t, second.Len())
}

func TestInit_LevelFilters(t *testing.T) {
	Reset()
	defer Reset()

	buf := &bytes.Buffer{}
	Init(Config{Level: "warn", Output: buf})

	Debug("hidden")
	Info("hidden too")
	Error("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("bogus"))
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("Warn"))
}

func TestOpenFile(t *testing.T) {
	w, err := OpenFile("")
	require.NoError(t, err)
	assert.Nil(t, w)

	path := filepath.Join(t.TempDir(), "logs", "sysmon.log")
	w, err = OpenFile(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("hello\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
}
