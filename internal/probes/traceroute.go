package probes

import (
	"context"
	"os/exec"
	"regexp"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// Tracer invokes the platform traceroute/tracert utility and parses its
// output into an ordered hop list.
type Tracer struct {
	maxHops int
	logger  *zap.Logger
}

// NewTracer creates a traceroute prober.
func NewTracer(maxHops int, logger *zap.Logger) *Tracer {
	if maxHops <= 0 || maxHops > 64 {
		maxHops = 30
	}
	return &Tracer{
		maxHops: maxHops,
		logger:  logger,
	}
}

// Trace runs a traceroute to the target. An unspawnable utility yields
// an empty hop list with empty raw output, never an error.
func (t *Tracer) Trace(ctx context.Context, ip string) model.TracerouteResult {
	result := model.TracerouteResult{Target: ip}

	name, args := tracerouteArgs(runtime.GOOS, ip, t.maxHops)
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if len(out) == 0 && err != nil {
		t.logger.Debug("traceroute invocation failed", zap.String("target", ip), zap.Error(err))
		return result
	}

	result.RawOutput = string(out)
	result.Hops = ParseTracerouteOutput(result.RawOutput)

	return result
}

// ipv4Token matches a bare dotted-quad address token.
var ipv4Token = regexp.MustCompile(`^\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}$`)

// ParseTracerouteOutput parses utility output: every line starting with
// an integer is one hop; the first IPv4-shaped token becomes its
// address and the first floating-point token its latency. A line with
// "*" and no address is emitted as an empty hop to preserve position.
// Exported for fixture testing.
func ParseTracerouteOutput(output string) []model.TraceHop {
	var hops []model.TraceHop

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		hopNum, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}

		var ip string
		var timeMs *float64
		for _, field := range fields[1:] {
			if ip == "" && ipv4Token.MatchString(field) {
				ip = field
				continue
			}
			if timeMs == nil {
				if ms, perr := strconv.ParseFloat(field, 64); perr == nil {
					timeMs = &ms
				}
			}
		}

		switch {
		case ip == "" && strings.Contains(line, "*"):
			hops = append(hops, model.TraceHop{Hop: hopNum})
		case ip != "" || timeMs != nil:
			hops = append(hops, model.TraceHop{Hop: hopNum, IP: ip, TimeMs: timeMs})
		}
	}

	return hops
}

// tracerouteArgs builds the platform invocation: numeric output, one
// probe per hop, short per-hop wait.
func tracerouteArgs(goos, ip string, maxHops int) (string, []string) {
	if goos == "windows" {
		return "tracert", []string{"-d", "-w", "1000", "-h", strconv.Itoa(maxHops), ip}
	}
	return "traceroute", []string{"-n", "-q", "1", "-w", "2", "-m", strconv.Itoa(maxHops), ip}
}
