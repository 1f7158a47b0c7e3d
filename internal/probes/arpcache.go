package probes

import (
	"bufio"
	"context"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// ARPCache reads the OS ARP cache by invoking `arp -a` and parsing its
// platform-specific output shape.
type ARPCache struct {
	logger *zap.Logger
}

// NewARPCache creates an ARP cache reader.
func NewARPCache(logger *zap.Logger) *ARPCache {
	return &ARPCache{logger: logger}
}

// Read returns the cached devices. An unavailable or unparsable cache
// yields an empty slice, never an error.
func (c *ARPCache) Read(ctx context.Context) []model.NetworkDevice {
	out, err := exec.CommandContext(ctx, "arp", "-a").Output()
	if err != nil {
		c.logger.Debug("failed to run arp -a", zap.Error(err))
		return nil
	}
	return ParseARPOutput(string(out), runtime.GOOS)
}

// ParseARPOutput parses platform-specific `arp -a` output. Entries
// without a plausible MAC (incomplete or malformed) are skipped.
// Exported for fixture testing.
func ParseARPOutput(output, platform string) []model.NetworkDevice {
	var devices []model.NetworkDevice

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		var dev model.NetworkDevice
		var ok bool
		if platform == "windows" {
			dev, ok = parseWindowsARPLine(scanner.Text())
		} else {
			dev, ok = parseUnixARPLine(scanner.Text())
		}
		if ok && plausibleMAC(dev.MAC) {
			devices = append(devices, dev)
		}
	}

	return devices
}

// parseUnixARPLine parses one macOS/Linux arp -a line:
//
//	hostname (192.168.1.1) at aa:bb:cc:dd:ee:ff on en0 ifscope [ethernet]
func parseUnixARPLine(line string) (model.NetworkDevice, bool) {
	parts := strings.Fields(line)
	for i, part := range parts {
		if !strings.HasPrefix(part, "(") || !strings.HasSuffix(part, ")") {
			continue
		}
		ip := strings.Trim(part, "()")
		if !strings.Contains(ip, ".") {
			continue
		}

		dev := model.NetworkDevice{IP: ip, IsOnline: true}
		if i+2 < len(parts) && parts[i+1] == "at" {
			dev.MAC = parts[i+2]
		}
		if i > 0 && !strings.HasPrefix(parts[0], "?") {
			dev.Hostname = parts[0]
		}
		return dev, true
	}
	return model.NetworkDevice{}, false
}

// parseWindowsARPLine parses one Windows arp -a line:
//
//	192.168.1.1    aa-bb-cc-dd-ee-ff    dynamic
func parseWindowsARPLine(line string) (model.NetworkDevice, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return model.NetworkDevice{}, false
	}
	ip := parts[0]
	if !strings.Contains(ip, ".") || ip[0] < '0' || ip[0] > '9' {
		return model.NetworkDevice{}, false
	}
	return model.NetworkDevice{
		IP:       ip,
		MAC:      strings.ReplaceAll(parts[1], "-", ":"),
		IsOnline: true,
	}, true
}

// plausibleMAC reports whether a MAC string looks like a resolved
// hardware address rather than an incomplete cache entry.
func plausibleMAC(mac string) bool {
	if mac == "" || len(mac) < 11 {
		return false
	}
	return !strings.Contains(strings.ToLower(mac), "incomplete")
}
