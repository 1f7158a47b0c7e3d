package probes

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PingSweeper finds live hosts by running one platform ping per
// candidate address with a short per-host timeout.
type PingSweeper struct {
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewPingSweeper creates a ping sweeper.
func NewPingSweeper(concurrency int, timeout time.Duration, logger *zap.Logger) *PingSweeper {
	if concurrency <= 0 {
		concurrency = 128
	}
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &PingSweeper{
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// Sweep pings hosts .1 through .254 under the given 3-octet prefix in
// parallel and returns the addresses that answered, sorted by last
// octet. A host is online iff the ping command reports success.
func (s *PingSweeper) Sweep(ctx context.Context, prefix string) []string {
	jobs := make(chan int, 254)
	results := make(chan string, 254)

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for host := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					ip := fmt.Sprintf("%s.%d", prefix, host)
					if s.pingHost(ctx, ip) {
						results <- ip
					}
				}
			}
		}()
	}

	go func() {
		for i := 1; i <= 254; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var online []string
	for ip := range results {
		online = append(online, ip)
	}

	sortIPsByLastOctet(online)

	s.logger.Debug("ping sweep complete",
		zap.String("prefix", prefix),
		zap.Int("online", len(online)),
	)

	return online
}

// pingHost runs a single platform ping; success is the exit status.
func (s *PingSweeper) pingHost(ctx context.Context, ip string) bool {
	name, args := sweepPingArgs(runtime.GOOS, ip, s.timeout)
	err := exec.CommandContext(ctx, name, args...).Run()
	return err == nil
}

// sweepPingArgs builds the single-echo ping invocation for a platform.
// Timeout flag units differ: milliseconds on macOS and Windows, whole
// seconds on Linux.
func sweepPingArgs(goos, ip string, timeout time.Duration) (string, []string) {
	switch goos {
	case "windows":
		return "ping", []string{"-n", "1", "-w", strconv.FormatInt(timeout.Milliseconds(), 10), ip}
	case "darwin":
		return "ping", []string{"-c", "1", "-W", strconv.FormatInt(timeout.Milliseconds(), 10), ip}
	default: // linux and the rest of unix
		secs := int((timeout + time.Second - 1) / time.Second)
		if secs < 1 {
			secs = 1
		}
		return "ping", []string{"-c", "1", "-W", strconv.Itoa(secs), ip}
	}
}
