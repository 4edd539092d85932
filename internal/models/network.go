package models

import "time"

type NetworkStats struct {
	DownloadRate float64 `json:"download_rate"` // bytes/sec
	UploadRate   float64 `json:"upload_rate"`   // bytes/sec
	BytesRecv    uint64  `json:"bytes_recv"`
	BytesSent    uint64  `json:"bytes_sent"`
	// RateValid is false until two counter readings exist. The rates are
	// zero until then.
	RateValid bool `json:"rate_valid"`
}

// CounterSnapshot is one reading of the cumulative network byte counters.
// At should come from time.Now so that it carries a monotonic clock reading.
type CounterSnapshot struct {
	BytesRecv uint64
	BytesSent uint64
	At        time.Time
}

type ConnStatus string

const (
	StatusEstablished ConnStatus = "ESTABLISHED"
	StatusListen      ConnStatus = "LISTEN"
	StatusCloseWait   ConnStatus = "CLOSE_WAIT"
	StatusTimeWait    ConnStatus = "TIME_WAIT"
	StatusNone        ConnStatus = "NONE"
)

type Endpoint struct {
	IP   string `json:"ip"`
	Port uint16 `json:"port"`
}

// Connection is one open socket. Remote is nil for listening or unconnected
// sockets, so the remote address and port are always present together.
type Connection struct {
	Local  Endpoint   `json:"local"`
	Remote *Endpoint  `json:"remote,omitempty"`
	Status ConnStatus `json:"status"`
	Family uint32     `json:"family"`
	Type   uint32     `json:"type"`
	PID    int32      `json:"pid"`
}
