package probes

import (
	"fmt"
	"net"
	"sort"

	"github.com/user/lanscope/internal/model"
)

// fallbackSubnets are common private /24 candidates offered for manual
// selection when no usable interface is found.
var fallbackSubnets = []model.NetworkInterface{
	{Name: "192.168.1.x", Netmask: "255.255.255.0", Subnet: "192.168.1.0/24"},
	{Name: "192.168.0.x", Netmask: "255.255.255.0", Subnet: "192.168.0.0/24"},
	{Name: "10.0.0.x", Netmask: "255.255.255.0", Subnet: "10.0.0.0/24"},
}

// ifaceAddr is one enumerated (interface name, IPv4) pair.
type ifaceAddr struct {
	name string
	ip   net.IP
}

// ListInterfaces enumerates non-loopback IPv4 interfaces and derives the
// /24 subnet of each, deduplicated by subnet. When enumeration comes up
// empty it falls back to a best-guess local address, and always appends
// the static private-subnet candidates. Interfaces with a concrete
// address sort before guesses without one.
func ListInterfaces() []model.NetworkInterface {
	return buildInterfaceList(enumerateAddrs(), guessLocalIP())
}

// CurrentSubnet returns the /24 of the best-guess local address.
func CurrentSubnet() (string, bool) {
	ip := guessLocalIP()
	if ip == nil {
		return "", false
	}
	return subnetFor(ip), true
}

// buildInterfaceList assembles the interface list from enumerated
// addresses and an optional best-guess address. Split out from
// ListInterfaces so ordering and deduplication are testable.
func buildInterfaceList(addrs []ifaceAddr, guess net.IP) []model.NetworkInterface {
	var interfaces []model.NetworkInterface

	seen := make(map[string]bool)
	for _, a := range addrs {
		subnet := subnetFor(a.ip)
		if seen[subnet] {
			continue
		}
		seen[subnet] = true
		interfaces = append(interfaces, model.NetworkInterface{
			Name:    a.name,
			IP:      a.ip.String(),
			Netmask: "255.255.255.0",
			Subnet:  subnet,
		})
	}

	if len(interfaces) == 0 && guess != nil {
		subnet := subnetFor(guess)
		seen[subnet] = true
		interfaces = append(interfaces, model.NetworkInterface{
			Name:    "default",
			IP:      guess.String(),
			Netmask: "255.255.255.0",
			Subnet:  subnet,
		})
	}

	for _, fb := range fallbackSubnets {
		if !seen[fb.Subnet] {
			seen[fb.Subnet] = true
			interfaces = append(interfaces, fb)
		}
	}

	// Real interfaces before address-less guesses.
	sort.SliceStable(interfaces, func(i, j int) bool {
		return interfaces[i].IP != "" && interfaces[j].IP == ""
	})

	return interfaces
}

// enumerateAddrs collects all non-loopback IPv4 addresses per interface.
func enumerateAddrs() []ifaceAddr {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil
	}

	var out []ifaceAddr
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			ip4 := ipnet.IP.To4()
			if ip4 == nil || ip4.IsLoopback() {
				continue
			}
			out = append(out, ifaceAddr{name: iface.Name, ip: ip4})
		}
	}
	return out
}

// guessLocalIP finds the preferred outbound IPv4 address. No packet is
// sent; the UDP dial only selects a route.
func guessLocalIP() net.IP {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return nil
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return nil
	}
	return addr.IP.To4()
}

// subnetFor derives the /24 containing an IPv4 address.
func subnetFor(ip net.IP) string {
	ip4 := ip.To4()
	if ip4 == nil {
		return ""
	}
	return fmt.Sprintf("%d.%d.%d.0/24", ip4[0], ip4[1], ip4[2])
}
