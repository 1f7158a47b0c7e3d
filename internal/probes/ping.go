package probes

import (
	"context"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// Pinger invokes the platform ping utility and parses its textual
// output into structured latency records.
type Pinger struct {
	logger *zap.Logger
}

// NewPinger creates a connectivity diagnostics pinger.
func NewPinger(logger *zap.Logger) *Pinger {
	return &Pinger{logger: logger}
}

// Ping sends count echoes and aggregates the utility's statistics.
// Reachability is the utility's exit status; loss and latency come from
// the platform-specific summary markers. An unspawnable utility yields
// the zero-valued (unreachable, 100% loss) result.
func (p *Pinger) Ping(ctx context.Context, ip string, count int) model.PingResult {
	if count <= 0 {
		count = 4
	}

	result := model.PingResult{
		IP:          ip,
		PacketsSent: count,
		PacketLoss:  100.0,
	}

	name, args := pingCountArgs(runtime.GOOS, ip, count)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if len(out) == 0 && err != nil {
		p.logger.Debug("ping invocation failed", zap.String("ip", ip), zap.Error(err))
		return result
	}

	result.RawOutput = string(out)
	result.IsReachable = err == nil
	ParsePingOutput(result.RawOutput, &result)

	return result
}

// PingOne sends a single echo with a 2-second timeout. Success requires
// an actual reply line; a clean exit without one is still a failure.
func (p *Pinger) PingOne(ctx context.Context, ip string, seq int) model.PingOneResult {
	name, args := pingOneArgs(runtime.GOOS, ip)
	out, _ := exec.CommandContext(ctx, name, args...).Output()
	return ParsePingOneOutput(ip, seq, string(out))
}

// ParsePingOutput extracts packet loss and min/avg/max latency from the
// utility summary. Received count is derived from the loss percentage,
// truncated, not independently counted. Exported for fixture testing.
func ParsePingOutput(output string, result *model.PingResult) {
	for _, line := range strings.Split(output, "\n") {
		lower := strings.ToLower(line)

		// macOS/Linux: "4 packets transmitted, 4 received, 0% packet loss"
		// Windows: "Packets: Sent = 4, Received = 4, Lost = 0 (0% loss)"
		if strings.Contains(lower, "packet loss") || strings.Contains(lower, "packets") {
			if loss, ok := extractPacketLoss(line); ok {
				result.PacketLoss = loss
				result.PacketsReceived = int((100.0 - loss) / 100.0 * float64(result.PacketsSent))
			}
		}

		// macOS/Linux: "round-trip min/avg/max/stddev = 1.2/2.3/3.4/0.5 ms"
		// Windows: "Minimum = 1ms, Maximum = 4ms, Average = 2ms"
		if strings.Contains(lower, "min/avg/max") {
			if min, avg, max, ok := extractLatencyStats(line); ok {
				result.MinMs, result.AvgMs, result.MaxMs = &min, &avg, &max
			}
		} else if strings.Contains(lower, "minimum") {
			if min, avg, max, ok := extractWindowsLatency(lower); ok {
				result.MinMs, result.AvgMs, result.MaxMs = &min, &avg, &max
			}
		}
	}
}

// ParsePingOneOutput scans single-echo output for a reply line and
// extracts its time and TTL values. No reply line yields a fixed
// "Request timeout" line and failure. Exported for fixture testing.
func ParsePingOneOutput(ip string, seq int, output string) model.PingOneResult {
	result := model.PingOneResult{IP: ip, Seq: seq}

	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(line, "bytes from") && !strings.Contains(line, "Reply from") {
			continue
		}
		result.Line = strings.TrimRight(line, "\r")
		result.Success = true

		if ms, ok := floatAfter(line, "time="); ok {
			result.TimeMs = &ms
		} else if ms, ok := floatAfter(line, "time "); ok {
			result.TimeMs = &ms
		}
		if v, ok := floatAfter(strings.ToLower(line), "ttl="); ok {
			ttl := int(v)
			result.TTL = &ttl
		}
		break
	}

	if result.Line == "" {
		result.Line = "Request timeout"
		result.Success = false
	}

	return result
}

// extractPacketLoss finds the percentage preceding a "%" marker.
func extractPacketLoss(line string) (float64, bool) {
	idx := strings.IndexByte(line, '%')
	if idx < 0 {
		return 0, false
	}
	start := idx
	for start > 0 && (isDigit(line[start-1]) || line[start-1] == '.') {
		start--
	}
	loss, err := strconv.ParseFloat(line[start:idx], 64)
	if err != nil {
		return 0, false
	}
	return loss, true
}

// extractLatencyStats parses the "= min/avg/max[/stddev] ms" form.
func extractLatencyStats(line string) (min, avg, max float64, ok bool) {
	idx := strings.IndexByte(line, '=')
	if idx < 0 {
		return 0, 0, 0, false
	}
	parts := strings.Split(line[idx+1:], "/")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	var err error
	if min, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, 0, false
	}
	if avg, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, 0, false
	}
	maxField := strings.Fields(strings.TrimSpace(parts[2]))
	if len(maxField) == 0 {
		return 0, 0, 0, false
	}
	if max, err = strconv.ParseFloat(maxField[0], 64); err != nil {
		return 0, 0, 0, false
	}
	return min, avg, max, true
}

// extractWindowsLatency parses "minimum = 1ms, maximum = 4ms, average = 2ms".
func extractWindowsLatency(lower string) (min, avg, max float64, ok bool) {
	var found int
	for _, pair := range []struct {
		marker string
		dst    *float64
	}{
		{"minimum =", &min},
		{"maximum =", &max},
		{"average =", &avg},
	} {
		idx := strings.Index(lower, pair.marker)
		if idx < 0 {
			continue
		}
		if v, okk := floatAfter(lower[idx:], "= "); okk {
			*pair.dst = v
			found++
		}
	}
	return min, avg, max, found == 3
}

// floatAfter parses the digits-and-dot run immediately following the
// first occurrence of marker.
func floatAfter(s, marker string) (float64, bool) {
	idx := strings.Index(s, marker)
	if idx < 0 {
		return 0, false
	}
	rest := s[idx+len(marker):]
	end := 0
	for end < len(rest) && (isDigit(rest[end]) || rest[end] == '.') {
		end++
	}
	if end == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(rest[:end], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// pingCountArgs builds the multi-echo ping invocation for a platform.
func pingCountArgs(goos, ip string, count int) (string, []string) {
	n := strconv.Itoa(count)
	if goos == "windows" {
		return "ping", []string{"-n", n, ip}
	}
	return "ping", []string{"-c", n, ip}
}

// pingOneArgs builds the single-echo invocation with a 2 s reply wait.
// The -W flag is milliseconds on macOS but whole seconds on Linux.
func pingOneArgs(goos, ip string) (string, []string) {
	switch goos {
	case "windows":
		return "ping", []string{"-n", "1", "-w", "2000", ip}
	case "darwin":
		return "ping", []string{"-c", "1", "-W", "2000", ip}
	default:
		return "ping", []string{"-c", "1", "-W", "2", ip}
	}
}
