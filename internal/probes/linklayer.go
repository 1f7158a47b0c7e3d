package probes

import (
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/j-keck/arping"
	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// arpWindow is the flat reply-listening window for one sweep. It is a
// hard deadline from the first request sent; late replies are dropped.
const arpWindow = 3 * time.Second

// LinkLayerProbe discovers hosts by broadcasting ARP requests on the
// default interface and collecting raw replies. It requires raw
// link-layer privilege; without it every sweep reports unavailable and
// the caller falls back to the unprivileged path.
type LinkLayerProbe struct {
	window time.Duration
	logger *zap.Logger

	// one sweep owns the raw channel at a time
	mu sync.Mutex
}

// NewLinkLayerProbe creates a link-layer ARP probe. The reply timeout
// is library-global state in arping, so it is set once here rather
// than per sweep.
func NewLinkLayerProbe(logger *zap.Logger) *LinkLayerProbe {
	arping.SetTimeout(arpWindow)
	return &LinkLayerProbe{
		window: arpWindow,
		logger: logger,
	}
}

// RawChannelAvailable reports whether a raw link-layer channel can be
// opened. Failure means absent privilege or platform support, which is
// the designed fallback trigger, not an error.
func (p *LinkLayerProbe) RawChannelAvailable() bool {
	return rawChannelAvailable()
}

// Sweep probes hosts .1 through .254 of the target /24 with one ARP
// request each and collects replies for the listening window. The
// second return value is false when the probe is unavailable on this
// platform or without privilege.
func (p *LinkLayerProbe) Sweep(subnet string) ([]model.NetworkDevice, bool) {
	prefix, ok := subnetPrefix(subnet)
	if !ok {
		return nil, false
	}
	if !rawChannelAvailable() {
		p.logger.Debug("raw link channel unavailable, skipping ARP sweep")
		return nil, false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	targets := sweepTargets(prefix)
	results := make(chan model.NetworkDevice, len(targets))

	var wg sync.WaitGroup
	for _, target := range targets {
		wg.Add(1)
		go func(addr string) {
			defer wg.Done()

			ip := net.ParseIP(addr)
			if ip == nil {
				return
			}
			mac, _, err := arping.Ping(ip)
			if err != nil {
				return // no reply within the window
			}
			results <- model.NetworkDevice{
				IP:       addr,
				MAC:      mac.String(),
				IsOnline: true,
			}
		}(target)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	// First reply wins per IP.
	seen := make(map[string]bool, len(targets))
	var devices []model.NetworkDevice
	for dev := range results {
		if seen[dev.IP] {
			continue
		}
		seen[dev.IP] = true
		devices = append(devices, dev)
	}

	sortByLastOctet(devices)

	p.logger.Debug("ARP sweep complete",
		zap.String("subnet", subnet),
		zap.Int("devices", len(devices)),
	)

	return devices, true
}

// sweepTargets lists the probed host addresses of a /24: .1 through .254.
func sweepTargets(prefix string) []string {
	targets := make([]string, 0, 254)
	for i := 1; i <= 254; i++ {
		targets = append(targets, fmt.Sprintf("%s.%d", prefix, i))
	}
	return targets
}
