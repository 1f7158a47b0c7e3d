//go:build linux

package probes

import "golang.org/x/sys/unix"

// rawChannelAvailable attempts to open an AF_PACKET raw socket bound to
// the ARP ethertype. Success, not mere interface presence, indicates the
// process holds raw link-layer privilege.
func rawChannelAvailable() bool {
	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, int(htons(unix.ETH_P_ARP)))
	if err != nil {
		return false
	}
	unix.Close(fd)
	return true
}

// htons converts a short to network byte order.
func htons(v uint16) uint16 {
	return v<<8 | v>>8
}
