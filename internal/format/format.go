// Package format turns sampled values into the strings shown to the user.
package format

import (
	"errors"
	"fmt"
	"math"

	"github.com/prabalesh/sysmon/internal/models"
)

var ErrInvalidByteCount = errors.New("invalid byte count")

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes scales a byte count (or bytes/sec rate) by powers of 1024 and
// formats it with two decimals, e.g. 1536 -> "1.50 KB". TB is the last unit.
func Bytes(v float64) (string, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidByteCount, v)
	}

	unit := 0
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[unit]), nil
}

// Rate formats a bytes/sec value, e.g. "1.50 KB/s".
func Rate(v float64) (string, error) {
	s, err := Bytes(v)
	if err != nil {
		return "", err
	}
	return s + "/s", nil
}

// mustBytes is used for values that come straight from the OS as unsigned
// counters and therefore cannot be rejected by Bytes.
func mustBytes(v uint64) string {
	s, _ := Bytes(float64(v))
	return s
}

func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func MHz(v float64) string {
	return fmt.Sprintf("%.2f MHz", v)
}

func Temperature(t models.Temperature) string {
	if !t.Available {
		return "N/A"
	}
	return fmt.Sprintf("%.1f°C", t.Celsius)
}
