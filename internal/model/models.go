// Package model defines core data structures for lanscope.
package model

// NetworkInterface describes a local adapter's usable IPv4 context.
// Interfaces without a concrete address are last-resort subnet guesses
// offered for manual selection.
type NetworkInterface struct {
	Name    string `json:"name"`
	IP      string `json:"ip"`
	Netmask string `json:"netmask"`
	Subnet  string `json:"subnet"`
}

// NetworkDevice is a host observed on the local subnet during one
// discovery pass.
type NetworkDevice struct {
	IP       string `json:"ip"`
	MAC      string `json:"mac,omitempty"`
	Hostname string `json:"hostname,omitempty"`
	Vendor   string `json:"vendor,omitempty"`
	IsOnline bool   `json:"is_online"`
}

// RemotePort is one port's open/closed verdict on a remote host.
type RemotePort struct {
	Port    int    `json:"port"`
	IsOpen  bool   `json:"is_open"`
	Service string `json:"service,omitempty"`
}

// ServiceInfo classifies a listening port. ServiceType is one of
// "web", "api", "database", "queue", "cache" or "other".
type ServiceInfo struct {
	Port        int    `json:"port"`
	Service     string `json:"service"`
	ServiceType string `json:"service_type"`
	Server      string `json:"server,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// NetworkScanResult is the outcome of one device discovery pass.
type NetworkScanResult struct {
	Subnet   string          `json:"subnet"`
	Devices  []NetworkDevice `json:"devices"`
	ScanTime string          `json:"scan_time"`
}

// PortScanResult is the outcome of one port scan invocation.
type PortScanResult struct {
	IP       string       `json:"ip"`
	Ports    []RemotePort `json:"ports"`
	ScanTime string       `json:"scan_time"`
}

// PingResult aggregates the outcome of a multi-echo ping run.
// Latency fields are nil when the utility output carried no statistics.
type PingResult struct {
	IP              string   `json:"ip"`
	IsReachable     bool     `json:"is_reachable"`
	PacketsSent     int      `json:"packets_sent"`
	PacketsReceived int      `json:"packets_received"`
	PacketLoss      float64  `json:"packet_loss"`
	MinMs           *float64 `json:"min_ms"`
	AvgMs           *float64 `json:"avg_ms"`
	MaxMs           *float64 `json:"max_ms"`
	RawOutput       string   `json:"raw_output"`
}

// PingOneResult is the outcome of a single echo probe, used for
// incremental per-probe feedback.
type PingOneResult struct {
	IP      string   `json:"ip"`
	Seq     int      `json:"seq"`
	Success bool     `json:"success"`
	TimeMs  *float64 `json:"time_ms"`
	TTL     *int     `json:"ttl"`
	Line    string   `json:"line"`
}

// TraceHop is a single hop on the path toward a target. A hop that did
// not reply carries no IP, hostname or latency but keeps its position.
type TraceHop struct {
	Hop      int      `json:"hop"`
	IP       string   `json:"ip,omitempty"`
	Hostname string   `json:"hostname,omitempty"`
	TimeMs   *float64 `json:"time_ms"`
}

// TracerouteResult is an ordered hop list toward a target.
type TracerouteResult struct {
	Target    string     `json:"target"`
	Hops      []TraceHop `json:"hops"`
	RawOutput string     `json:"raw_output"`
}

// AdvancedScanResult is the outcome of a strategy-selected discovery.
type AdvancedScanResult struct {
	ScanID        string          `json:"scan_id"`
	Devices       []NetworkDevice `json:"devices"`
	ScanMethod    string          `json:"scan_method"`
	ScanTimeMs    int64           `json:"scan_time_ms"`
	HasPermission bool            `json:"has_permission"`
}

// ResolveResult is a validated or DNS-resolved scan target.
type ResolveResult struct {
	Original string `json:"original"`
	IP       string `json:"ip"`
	IsDomain bool   `json:"is_domain"`
	Hostname string `json:"hostname,omitempty"`
}
