package probes

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
)

// ServiceProber classifies listening ports by a minimal HTTP exchange,
// falling back to the static port-category table when the exchange
// fails or the port is not HTTP-shaped.
type ServiceProber struct {
	timeout time.Duration // per-connection read/write deadline
	logger  *zap.Logger
}

// NewServiceProber creates a service fingerprint probe.
func NewServiceProber(logger *zap.Logger) *ServiceProber {
	return &ServiceProber{
		timeout: 2 * time.Second,
		logger:  logger,
	}
}

// Classify determines the service type listening on ip:port. Any
// connection, timeout or parse failure during the HTTP attempt silently
// falls back to the static port-based classification.
func (p *ServiceProber) Classify(ctx context.Context, ip string, port int) model.ServiceInfo {
	if isHTTPPort(port) {
		if info, ok := p.probeHTTP(ctx, ip, port); ok {
			return info
		}
	}

	service := "Unknown"
	if name, ok := ServiceName(port); ok {
		service = name
	}
	return model.ServiceInfo{
		Port:        port,
		Service:     service,
		ServiceType: portCategory(port),
	}
}

// DetectServices classifies the ports of ip that accept a short
// connect, skipping closed ones.
func (p *ServiceProber) DetectServices(ctx context.Context, ip string, ports []int) []model.ServiceInfo {
	results := make([]*model.ServiceInfo, len(ports))

	var wg sync.WaitGroup
	sem := make(chan struct{}, 10)
	for i, port := range ports {
		wg.Add(1)
		go func(idx, prt int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			d := net.Dialer{Timeout: 500 * time.Millisecond}
			conn, err := d.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(prt)))
			if err != nil {
				return
			}
			conn.Close()

			info := p.Classify(ctx, ip, prt)
			results[idx] = &info
		}(i, port)
	}
	wg.Wait()

	var services []model.ServiceInfo
	for _, info := range results {
		if info != nil {
			services = append(services, *info)
		}
	}
	return services
}

// probeHTTP sends a minimal GET / request and classifies the first
// response chunk. ok is false on any failure.
func (p *ServiceProber) probeHTTP(ctx context.Context, ip string, port int) (model.ServiceInfo, bool) {
	addr := net.JoinHostPort(ip, strconv.Itoa(port))

	d := net.Dialer{Timeout: p.timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return model.ServiceInfo{}, false
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(p.timeout)); err != nil {
		return model.ServiceInfo{}, false
	}

	request := fmt.Sprintf(
		"GET / HTTP/1.1\r\nHost: %s\r\nUser-Agent: lanscope/1.0\r\nAccept: */*\r\nConnection: close\r\n\r\n",
		ip,
	)
	if _, err := conn.Write([]byte(request)); err != nil {
		return model.ServiceInfo{}, false
	}

	buf := make([]byte, 4096)
	n, err := conn.Read(buf)
	if err != nil || n == 0 {
		return model.ServiceInfo{}, false
	}

	return ClassifyHTTPResponse(port, string(buf[:n])), true
}

// ClassifyHTTPResponse classifies the first chunk of an HTTP response.
// Precedence: explicit API framework markers in X-Powered-By, then
// JSON/XML content type or JSON-shaped body, then HTML content type
// (an HTML-marked body outranks JSON body fragments), then the static
// port category. Exported for fixture testing.
func ClassifyHTTPResponse(port int, response string) model.ServiceInfo {
	var server, contentType, poweredBy string

	head := response
	if idx := strings.Index(response, "\r\n\r\n"); idx >= 0 {
		head = response[:idx]
	}
	for _, line := range strings.Split(head, "\r\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "server:"):
			server = strings.TrimSpace(line[len("server:"):])
		case strings.HasPrefix(lower, "content-type:"):
			contentType = strings.TrimSpace(line[len("content-type:"):])
		case strings.HasPrefix(lower, "x-powered-by:"):
			poweredBy = strings.TrimSpace(lower[len("x-powered-by:"):])
		}
	}

	body := ""
	if idx := strings.Index(response, "\r\n\r\n"); idx >= 0 {
		body = strings.ToLower(strings.TrimSpace(response[idx+4:]))
	}

	serviceType := classifyByMarkers(port, contentType, poweredBy, body)

	var service string
	switch serviceType {
	case "api":
		service = fmt.Sprintf("API (%d)", port)
	case "web":
		service = fmt.Sprintf("Web (%d)", port)
	default:
		if name, ok := ServiceName(port); ok {
			service = name
		} else {
			service = fmt.Sprintf("HTTP (%d)", port)
		}
	}

	return model.ServiceInfo{
		Port:        port,
		Service:     service,
		ServiceType: serviceType,
		Server:      server,
		ContentType: contentType,
	}
}

func classifyByMarkers(port int, contentType, poweredBy, body string) string {
	for _, framework := range []string{"express", "flask", "django", "fastapi"} {
		if strings.Contains(poweredBy, framework) {
			return "api"
		}
	}

	// Body markers outrank a text/html content type: servers routinely
	// label JSON responses text/html. An HTML-marked body still wins
	// over JSON-shaped fragments inside it.
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/json"),
		strings.Contains(ct, "application/xml"),
		strings.Contains(ct, "text/xml"):
		return "api"
	case strings.Contains(body, "<!doctype html"), strings.Contains(body, "<html"):
		return "web"
	case strings.HasPrefix(body, "{"),
		strings.Contains(body, `"data":`),
		strings.Contains(body, `"error":`):
		return "api"
	case strings.Contains(ct, "text/html"):
		return "web"
	}

	return portCategory(port)
}
