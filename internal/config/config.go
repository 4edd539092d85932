package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Monitor MonitorConfig `toml:"monitor" yaml:"monitor"`
	UI      UIConfig      `toml:"ui" yaml:"ui"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

type MonitorConfig struct {
	Interval          string        `toml:"interval" yaml:"interval"`
	History           int           `toml:"history" yaml:"history"`
	TemperatureSensor string        `toml:"temperature_sensor" yaml:"temperature_sensor"`
	ConnectionKind    string        `toml:"connection_kind" yaml:"connection_kind"`
	IntervalD         time.Duration `toml:"-" yaml:"-"`
}

type UIConfig struct {
	// Theme is "light" or "dark".
	Theme string `toml:"theme" yaml:"theme"`
}

type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
	// File receives the log. Empty discards it, since the terminal belongs
	// to the UI.
	File string `toml:"file" yaml:"file"`
}

func Default() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Interval:          "1s",
			History:           100,
			TemperatureSensor: "coretemp",
			ConnectionKind:    "inet",
			IntervalD:         time.Second,
		},
		UI: UIConfig{
			Theme: "light",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			File:   "",
		},
	}
}

// LoadFromFile reads a TOML or YAML file, chosen by extension, over the
// defaults.
func LoadFromFile(path string) (*Config, error) {
	expandedPath, err := expandPath(path)
	if err != nil {
		return nil, fmt.Errorf("expand path: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(expandedPath)); ext {
	case ".toml", "":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}

	if err := cfg.postProcess(); err != nil {
		return nil, fmt.Errorf("post process config: %w", err)
	}

	return cfg, nil
}

func (c *Config) postProcess() error {
	var err error

	c.Monitor.ConnectionKind = strings.ToLower(c.Monitor.ConnectionKind)
	c.UI.Theme = strings.ToLower(c.UI.Theme)
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	c.Logging.Format = strings.ToLower(c.Logging.Format)

	if c.Monitor.IntervalD, err = time.ParseDuration(c.Monitor.Interval); err != nil {
		return fmt.Errorf("parse monitor.interval: %w", err)
	}

	c.Logging.File, err = expandPath(c.Logging.File)
	if err != nil {
		return fmt.Errorf("expand logging.file: %w", err)
	}

	return nil
}

var validConnectionKinds = map[string]bool{
	"all": true, "inet": true, "inet4": true, "inet6": true,
	"tcp": true, "tcp4": true, "tcp6": true,
	"udp": true, "udp4": true, "udp6": true,
	"unix": true,
}

func (c *Config) Validate() error {
	if c.Monitor.IntervalD < 100*time.Millisecond {
		return fmt.Errorf("monitor.interval must be at least 100ms, got %s", c.Monitor.Interval)
	}

	if c.Monitor.History < 1 {
		return fmt.Errorf("monitor.history must be at least 1, got %d", c.Monitor.History)
	}

	if c.Monitor.TemperatureSensor == "" {
		return fmt.Errorf("monitor.temperature_sensor cannot be empty")
	}

	if !validConnectionKinds[c.Monitor.ConnectionKind] {
		return fmt.Errorf("invalid monitor.connection_kind: %s", c.Monitor.ConnectionKind)
	}

	validThemes := map[string]bool{"light": true, "dark": true}
	if !validThemes[c.UI.Theme] {
		return fmt.Errorf("invalid ui.theme: %s (valid: light, dark)", c.UI.Theme)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s (valid: json, text)", c.Logging.Format)
	}

	return nil
}

func ApplyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SYSMON_INTERVAL"); v != "" {
		cfg.Monitor.Interval = v
	}
	if v := os.Getenv("SYSMON_HISTORY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Monitor.History = n
		}
	}
	if v := os.Getenv("SYSMON_TEMPERATURE_SENSOR"); v != "" {
		cfg.Monitor.TemperatureSensor = v
	}
	if v := os.Getenv("SYSMON_CONNECTION_KIND"); v != "" {
		cfg.Monitor.ConnectionKind = v
	}
	if v := os.Getenv("SYSMON_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("SYSMON_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SYSMON_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SYSMON_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}
}

func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get user home directory: %w", err)
		}
		return filepath.Join(homeDir, path[2:]), nil
	}

	return path, nil
}

// Load builds the effective configuration: the file at configPath (or the
// defaults when empty), then SYSMON_* environment overrides, then the given
// overrides (command-line flags).
func Load(configPath string, overrides ...func(*Config)) (*Config, error) {
	var cfg *Config
	var err error

	if configPath != "" {
		cfg, err = LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config from %s: %w", configPath, err)
		}
	} else {
		cfg = Default()
	}

	ApplyEnvOverrides(cfg)
	for _, override := range overrides {
		override(cfg)
	}

	if err := cfg.postProcess(); err != nil {
		return nil, fmt.Errorf("post process config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
