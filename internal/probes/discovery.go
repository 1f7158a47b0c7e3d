package probes

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// CacheReader supplies devices known to the OS ARP cache.
type CacheReader interface {
	Read(ctx context.Context) []model.NetworkDevice
}

// Sweeper reports the addresses under a 3-octet prefix that answer ping.
type Sweeper interface {
	Sweep(ctx context.Context, prefix string) []string
}

// LinkLayerScanner performs a raw ARP sweep when privilege allows.
// The second return value is false when the sweep is unavailable.
type LinkLayerScanner interface {
	Sweep(subnet string) ([]model.NetworkDevice, bool)
}

// VendorLookup resolves a MAC address to a manufacturer name.
type VendorLookup interface {
	Lookup(mac string) string
}

// hostnameFunc resolves an IP to a hostname, or "" when unresolvable.
type hostnameFunc func(ctx context.Context, ip string) string

// Engine reconciles the ARP cache, a ping sweep and optional link-layer
// replies into a single online device set for one subnet.
type Engine struct {
	cache    CacheReader
	sweeper  Sweeper
	link     LinkLayerScanner // optional enrichment, may be nil
	vendors  VendorLookup     // optional enrichment, may be nil
	hostname hostnameFunc
	logger   *zap.Logger
}

// NewEngine creates a discovery engine. link and vendors may be nil.
func NewEngine(cache CacheReader, sweeper Sweeper, link LinkLayerScanner, vendors VendorLookup, logger *zap.Logger) *Engine {
	return &Engine{
		cache:    cache,
		sweeper:  sweeper,
		link:     link,
		vendors:  vendors,
		hostname: lookupHostname,
		logger:   logger,
	}
}

// Discover returns the online devices of a /24 subnet, sorted by last
// octet. ARP-cache entries with a plausible MAC seed the set, the ping
// sweep decides online/offline, and link-layer replies fill in missing
// MACs. Devices not confirmed online are dropped.
func (e *Engine) Discover(ctx context.Context, subnet string) []model.NetworkDevice {
	prefix, ok := subnetPrefix(subnet)
	if !ok {
		e.logger.Warn("invalid subnet", zap.String("subnet", subnet))
		return nil
	}

	seed := make(map[string]model.NetworkDevice)
	for _, dev := range e.cache.Read(ctx) {
		if !strings.HasPrefix(dev.IP, prefix+".") {
			continue
		}
		if !plausibleMAC(dev.MAC) {
			continue
		}
		seed[dev.IP] = dev
	}

	if e.link != nil {
		if devs, available := e.link.Sweep(subnet); available {
			for _, dev := range devs {
				if cur, exists := seed[dev.IP]; exists {
					if cur.MAC == "" {
						cur.MAC = dev.MAC
						seed[dev.IP] = cur
					}
				} else {
					seed[dev.IP] = dev
				}
			}
		}
	}

	online := make(map[string]bool)
	for _, ip := range e.sweeper.Sweep(ctx, prefix) {
		online[ip] = true
		if dev, exists := seed[ip]; exists {
			dev.IsOnline = true
			seed[ip] = dev
		} else {
			seed[ip] = model.NetworkDevice{IP: ip, IsOnline: true}
		}
	}

	devices := make([]model.NetworkDevice, 0, len(online))
	for ip, dev := range seed {
		if !online[ip] {
			continue
		}
		if dev.Hostname == "" {
			dev.Hostname = e.hostname(ctx, dev.IP)
		}
		if dev.Vendor == "" && dev.MAC != "" && e.vendors != nil {
			dev.Vendor = e.vendors.Lookup(dev.MAC)
		}
		devices = append(devices, dev)
	}

	sortByLastOctet(devices)

	e.logger.Info("discovery complete",
		zap.String("subnet", subnet),
		zap.Int("online", len(devices)),
	)

	return devices
}

// subnetPrefix extracts the 3-octet prefix from a CIDR subnet string
// ("192.168.1.0/24" -> "192.168.1").
func subnetPrefix(subnet string) (string, bool) {
	base := subnet
	if idx := strings.IndexByte(base, '/'); idx >= 0 {
		base = base[:idx]
	}
	parts := strings.Split(base, ".")
	if len(parts) != 4 {
		return "", false
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
	}
	return strings.Join(parts[:3], "."), true
}

// lastOctet parses the final octet of a dotted-quad address.
func lastOctet(ip string) int {
	idx := strings.LastIndexByte(ip, '.')
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(ip[idx+1:])
	if err != nil {
		return 0
	}
	return n
}

func sortByLastOctet(devices []model.NetworkDevice) {
	sort.Slice(devices, func(i, j int) bool {
		return lastOctet(devices[i].IP) < lastOctet(devices[j].IP)
	})
}

func sortIPsByLastOctet(ips []string) {
	sort.Slice(ips, func(i, j int) bool {
		return lastOctet(ips[i]) < lastOctet(ips[j])
	})
}

// ScanTimestamp formats the wall-clock time stamped onto scan results.
func ScanTimestamp() string {
	return time.Now().Format("2006-01-02 15:04:05")
}
