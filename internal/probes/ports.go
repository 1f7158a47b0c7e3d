// Package probes provides network probing functionality: local interface
// resolution, subnet device discovery, TCP port scanning, service
// fingerprinting and connectivity diagnostics.
package probes

// portEntry pairs a well-known port with its service label.
type portEntry struct {
	port int
	name string
}

// commonPorts is the well-known port table used by quick scans and
// service labeling. Loaded once, never mutated.
var commonPorts = []portEntry{
	// System services
	{21, "FTP"},
	{22, "SSH"},
	{23, "Telnet"},
	{25, "SMTP"},
	{53, "DNS"},
	{80, "HTTP"},
	{110, "POP3"},
	{139, "NetBIOS"},
	{143, "IMAP"},
	{443, "HTTPS"},
	{445, "SMB"},
	{465, "SMTPS"},
	{587, "SMTP-Submit"},
	{993, "IMAPS"},
	{995, "POP3S"},
	// Databases
	{1433, "MSSQL"},
	{1521, "Oracle"},
	{3306, "MySQL"},
	{5432, "PostgreSQL"},
	{5984, "CouchDB"},
	{6379, "Redis"},
	{9042, "Cassandra"},
	{9200, "Elasticsearch"},
	{27017, "MongoDB"},
	{28015, "RethinkDB"},
	// Message queues
	{1883, "MQTT"},
	{4369, "Erlang-EPMD"},
	{5672, "RabbitMQ"},
	{6650, "Pulsar"},
	{9092, "Kafka"},
	{61616, "ActiveMQ"},
	// Caches
	{11211, "Memcached"},
	// Remote access
	{3389, "RDP"},
	{5900, "VNC"},
	{5901, "VNC-1"},
	// Web services
	{3000, "Node/Dev"},
	{4200, "Angular"},
	{5000, "Flask/ASP"},
	{5173, "Vite"},
	{8000, "Django/Py"},
	{8080, "HTTP-Alt"},
	{8443, "HTTPS-Alt"},
	{8888, "Jupyter"},
	{9000, "PHP-FPM"},
	{9090, "Prometheus"},
	// Containers / orchestration
	{2375, "Docker"},
	{2376, "Docker-TLS"},
	{2379, "etcd"},
	{6443, "K8s-API"},
	{10250, "Kubelet"},
	// Development tools
	{1420, "Tauri-Dev"},
	{3001, "Dev-Server"},
	{4000, "GraphQL"},
	{5555, "Android-ADB"},
	{8081, "React-Native"},
	{9229, "Node-Debug"},
	{19000, "Expo"},
	// Miscellaneous
	{111, "RPC"},
	{161, "SNMP"},
	{389, "LDAP"},
	{636, "LDAPS"},
	{873, "rsync"},
	{1194, "OpenVPN"},
	{1723, "PPTP"},
	{5353, "mDNS"},
	{8883, "MQTT-TLS"},
}

// serviceNames indexes commonPorts by port number.
var serviceNames = func() map[int]string {
	m := make(map[int]string, len(commonPorts))
	for _, e := range commonPorts {
		m[e.port] = e.name
	}
	return m
}()

// httpPorts are ports worth an HTTP-level fingerprint attempt.
var httpPorts = map[int]struct{}{
	80: {}, 443: {}, 3000: {}, 3001: {}, 4000: {}, 4200: {}, 5000: {},
	5173: {}, 8000: {}, 8080: {}, 8081: {}, 8443: {}, 8888: {},
	9000: {}, 9090: {}, 19000: {},
}

// portCategories maps non-HTTP ports to a coarse service category.
var portCategories = map[int]string{
	// Databases
	1433: "database", 1521: "database", 3306: "database", 5432: "database",
	5984: "database", 6379: "database", 9042: "database", 9200: "database",
	27017: "database", 28015: "database",
	// Message queues
	1883: "queue", 5672: "queue", 6650: "queue", 9092: "queue", 61616: "queue",
	// Caches
	11211: "cache",
	// Web services
	80: "web", 443: "web", 3000: "web", 4200: "web", 5173: "web",
	8080: "web", 8443: "web",
	// API services
	4000: "api", 5000: "api", 8000: "api", 9000: "api",
}

// CommonPorts returns the well-known port set scanned by quick scans,
// in table order.
func CommonPorts() []int {
	ports := make([]int, len(commonPorts))
	for i, e := range commonPorts {
		ports[i] = e.port
	}
	return ports
}

// ServiceName returns the well-known service label for a port, if any.
func ServiceName(port int) (string, bool) {
	name, ok := serviceNames[port]
	return name, ok
}

// isHTTPPort reports whether a port is worth an HTTP fingerprint attempt.
func isHTTPPort(port int) bool {
	_, ok := httpPorts[port]
	return ok
}

// portCategory returns the static service category for a port,
// defaulting to "other".
func portCategory(port int) string {
	if cat, ok := portCategories[port]; ok {
		return cat
	}
	return "other"
}
