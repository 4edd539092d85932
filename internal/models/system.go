package models

import "time"

// Snapshot is the complete set of values read during a single tick.
type Snapshot struct {
	CPU         CPUStats       `json:"cpu"`
	Memory      MemoryStats    `json:"memory"`
	Network     NetworkStats   `json:"network"`
	Battery     *BatteryStatus `json:"battery,omitempty"`
	Connections []Connection   `json:"connections"`
	TakenAt     time.Time      `json:"taken_at"`
}

type CPUStats struct {
	Percent     float64     `json:"percent"`
	FreqMHz     float64     `json:"freq_mhz"`
	Temperature Temperature `json:"temperature"`
}

// Temperature is an optional sensor reading. Available is false when the
// host exposes no usable sensor.
type Temperature struct {
	Celsius   float64 `json:"celsius"`
	Available bool    `json:"available"`
}

func TemperatureOf(celsius float64) Temperature {
	return Temperature{Celsius: celsius, Available: true}
}

type MemoryStats struct {
	Percent   float64 `json:"percent"`
	Used      uint64  `json:"used"`
	Available uint64  `json:"available"`
	Total     uint64  `json:"total"`
}

// BatteryStatus is nil in a Snapshot when the host has no battery.
type BatteryStatus struct {
	Percent   float64 `json:"percent"`
	PluggedIn bool    `json:"plugged_in"`
}

// SystemIdentity holds uname-equivalent fields. It never changes during the
// lifetime of a process.
type SystemIdentity struct {
	OS        string `json:"os"`
	Hostname  string `json:"hostname"`
	Release   string `json:"release"`
	Version   string `json:"version"`
	Machine   string `json:"machine"`
	Processor string `json:"processor"`
}
