package probes

import (
	"context"
	"net"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// PortScanner handles concurrent TCP-connect probing of a remote host.
type PortScanner struct {
	concurrency int
	timeout     time.Duration
	logger      *zap.Logger
}

// NewPortScanner creates a new port scanner. The timeout is the default
// used by QuickScan; Scan and RangeScan take an explicit one.
func NewPortScanner(concurrency int, timeout time.Duration, logger *zap.Logger) *PortScanner {
	if concurrency <= 0 {
		concurrency = 50
	}
	if timeout <= 0 {
		timeout = 500 * time.Millisecond
	}
	return &PortScanner{
		concurrency: concurrency,
		timeout:     timeout,
		logger:      logger,
	}
}

// Scan probes each requested port with a TCP connect bound by timeout.
// Every requested port appears exactly once in the result, open or not,
// sorted ascending. Open ports carry their well-known service label
// when the static table knows one.
func (s *PortScanner) Scan(ctx context.Context, ip string, ports []int, timeout time.Duration) []model.RemotePort {
	ports = dedupePorts(ports)

	jobs := make(chan int, len(ports))
	results := make(chan model.RemotePort, len(ports))

	var wg sync.WaitGroup
	for i := 0; i < s.concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for port := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
					results <- s.probePort(ctx, ip, port, timeout)
				}
			}
		}()
	}

	go func() {
		for _, port := range ports {
			jobs <- port
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	scanned := make([]model.RemotePort, 0, len(ports))
	for rp := range results {
		scanned = append(scanned, rp)
	}

	sort.Slice(scanned, func(i, j int) bool {
		return scanned[i].Port < scanned[j].Port
	})

	s.logger.Debug("port scan complete",
		zap.String("ip", ip),
		zap.Int("ports", len(scanned)),
	)

	return scanned
}

// QuickScan probes the well-known port table with the default timeout.
func (s *PortScanner) QuickScan(ctx context.Context, ip string) []model.RemotePort {
	return s.Scan(ctx, ip, CommonPorts(), s.timeout)
}

// RangeScan probes every port in [start, end].
func (s *PortScanner) RangeScan(ctx context.Context, ip string, start, end int, timeout time.Duration) []model.RemotePort {
	if start > end {
		start, end = end, start
	}
	ports := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		ports = append(ports, p)
	}
	return s.Scan(ctx, ip, ports, timeout)
}

// probePort attempts one TCP connect; open iff it succeeds in time.
func (s *PortScanner) probePort(ctx context.Context, ip string, port int, timeout time.Duration) model.RemotePort {
	rp := model.RemotePort{Port: port}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(port)))
	if err != nil {
		return rp // closed or filtered
	}
	conn.Close()

	rp.IsOpen = true
	if name, ok := ServiceName(port); ok {
		rp.Service = name
	}
	return rp
}

// dedupePorts drops repeated ports, keeping first-seen order.
func dedupePorts(ports []int) []int {
	seen := make(map[int]bool, len(ports))
	out := ports[:0:0]
	for _, p := range ports {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
