//go:build linux || darwin || freebsd

package collector

import (
	"fmt"

	"github.com/prabalesh/sysmon/internal/models"
	"golang.org/x/sys/unix"
)

func uname() (models.SystemIdentity, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return models.SystemIdentity{}, fmt.Errorf("uname: %w", err)
	}

	return models.SystemIdentity{
		OS:       unix.ByteSliceToString(u.Sysname[:]),
		Hostname: unix.ByteSliceToString(u.Nodename[:]),
		Release:  unix.ByteSliceToString(u.Release[:]),
		Version:  unix.ByteSliceToString(u.Version[:]),
		Machine:  unix.ByteSliceToString(u.Machine[:]),
	}, nil
}
