package probes

import (
	"context"
	"fmt"
	"net"
	"os/exec"
	"runtime"
	"strings"

	"github.com/user/lanscope/internal/model"
)

// lookupHostname resolves an IP to a hostname through the platform
// name-resolution utility (`host` on unix, `nslookup` on Windows).
// Resolution failure returns "", never an error.
func lookupHostname(ctx context.Context, ip string) string {
	var out []byte
	var err error
	if runtime.GOOS == "windows" {
		out, err = exec.CommandContext(ctx, "nslookup", ip).Output()
	} else {
		out, err = exec.CommandContext(ctx, "host", ip).Output()
	}
	if err != nil && len(out) == 0 {
		return ""
	}
	return ParseHostnameOutput(string(out))
}

// ParseHostnameOutput extracts the hostname from `host` or `nslookup`
// output. Exported for fixture testing.
func ParseHostnameOutput(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "name =") && !strings.Contains(line, "domain name pointer") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		return strings.TrimSuffix(fields[len(fields)-1], ".")
	}
	return ""
}

// ResolveTarget validates an IP literal or resolves a hostname to an
// IPv4 address before scanning. This is the one probe operation with a
// reportable failure: an unresolvable target returns a typed error with
// a human-readable message.
func ResolveTarget(ctx context.Context, target string) (model.ResolveResult, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return model.ResolveResult{}, fmt.Errorf("empty target")
	}

	if ip := net.ParseIP(target); ip != nil {
		return model.ResolveResult{
			Original: target,
			IP:       ip.String(),
			IsDomain: false,
			Hostname: lookupHostname(ctx, ip.String()),
		}, nil
	}

	addrs, err := net.DefaultResolver.LookupHost(ctx, target)
	if err != nil {
		return model.ResolveResult{}, fmt.Errorf("cannot resolve %q: %w", target, err)
	}

	// Prefer an IPv4 address; ARP and the sweep paths are v4-only.
	resolved := addrs[0]
	for _, addr := range addrs {
		if ip := net.ParseIP(addr); ip != nil && ip.To4() != nil {
			resolved = addr
			break
		}
	}

	return model.ResolveResult{
		Original: target,
		IP:       resolved,
		IsDomain: true,
		Hostname: target,
	}, nil
}
