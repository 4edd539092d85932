//go:build !linux && !darwin && !freebsd

package collector

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/prabalesh/sysmon/internal/models"
	"github.com/shirou/gopsutil/v3/host"
)

func uname() (models.SystemIdentity, error) {
	info, err := host.Info()
	if err != nil {
		return models.SystemIdentity{}, fmt.Errorf("host info: %w", err)
	}

	osName := info.OS
	if osName == "" {
		osName = runtime.GOOS
	}
	if osName != "" {
		osName = strings.ToUpper(osName[:1]) + osName[1:]
	}

	return models.SystemIdentity{
		OS:       osName,
		Hostname: info.Hostname,
		Release:  info.PlatformVersion,
		Version:  info.KernelVersion,
		Machine:  info.KernelArch,
	}, nil
}
