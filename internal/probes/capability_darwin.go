//go:build darwin

package probes

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// rawChannelAvailable attempts to open a BPF device, the Darwin raw
// link-layer channel. Devices held by other processes return EBUSY, so
// a handful are tried before giving up.
func rawChannelAvailable() bool {
	for i := 0; i < 10; i++ {
		fd, err := unix.Open(fmt.Sprintf("/dev/bpf%d", i), unix.O_RDWR, 0)
		if err == nil {
			unix.Close(fd)
			return true
		}
		if err == unix.EBUSY {
			continue
		}
		return false
	}
	return false
}
