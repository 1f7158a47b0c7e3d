package probes

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHTTPResponseHTML(t *testing.T) {
	response := "HTTP/1.1 200 OK\r\n" +
		"Server: nginx/1.25.3\r\n" +
		"Content-Type: text/html; charset=utf-8\r\n" +
		"\r\n" +
		"<!DOCTYPE html><html><head></head></html>"

	info := ClassifyHTTPResponse(8080, response)

	assert.Equal(t, "web", info.ServiceType)
	assert.Equal(t, "Web (8080)", info.Service)
	assert.Equal(t, "nginx/1.25.3", info.Server)
	assert.Equal(t, "text/html; charset=utf-8", info.ContentType)
}

func TestClassifyHTTPResponseJSON(t *testing.T) {
	response := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: application/json\r\n" +
		"\r\n" +
		`{"status":"ok"}`

	info := ClassifyHTTPResponse(3000, response)
	assert.Equal(t, "api", info.ServiceType)
	assert.Equal(t, "API (3000)", info.Service)
}

func TestClassifyHTTPResponsePoweredByWinsOverHTML(t *testing.T) {
	// Framework header outranks the HTML content type.
	response := "HTTP/1.1 200 OK\r\n" +
		"X-Powered-By: Express\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		"<html></html>"

	info := ClassifyHTTPResponse(3000, response)
	assert.Equal(t, "api", info.ServiceType)
}

func TestClassifyHTTPResponseJSONBodyOverridesHTMLContentType(t *testing.T) {
	// Servers routinely mislabel JSON responses as text/html; the body
	// shape decides.
	response := "HTTP/1.1 200 OK\r\n" +
		"Content-Type: text/html\r\n" +
		"\r\n" +
		`{"data": [1,2,3]}`

	info := ClassifyHTTPResponse(8080, response)
	assert.Equal(t, "api", info.ServiceType)
	assert.Equal(t, "API (8080)", info.Service)
}

func TestClassifyHTTPResponseHTMLBodyBeatsJSONFragments(t *testing.T) {
	response := "HTTP/1.1 200 OK\r\n" +
		"\r\n" +
		`<html><script>var x = {"data": 1};</script></html>`

	info := ClassifyHTTPResponse(8080, response)
	assert.Equal(t, "web", info.ServiceType)
}

func TestClassifyHTTPResponseBodyMarkers(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"<!doctype html><html>", "web"},
		{"<HTML><body>hi</body>", "web"},
		{`{"data": []}`, "api"},
		{`something "error": true`, "api"},
	}
	for _, tt := range tests {
		response := "HTTP/1.1 200 OK\r\n\r\n" + tt.body
		info := ClassifyHTTPResponse(8888, response)
		assert.Equal(t, tt.want, info.ServiceType, "body %q", tt.body)
	}
}

func TestClassifyHTTPResponseFallsBackToPortCategory(t *testing.T) {
	response := "HTTP/1.1 200 OK\r\n\r\nplain text"

	assert.Equal(t, "web", ClassifyHTTPResponse(80, response).ServiceType)
	assert.Equal(t, "api", ClassifyHTTPResponse(5000, response).ServiceType)
	assert.Equal(t, "other", ClassifyHTTPResponse(8081, response).ServiceType)
}

func TestClassifyHTTPResponseHeadersOnly(t *testing.T) {
	// No blank line yet; headers still parse, no body markers.
	response := "HTTP/1.1 301 Moved Permanently\r\nServer: Apache\r\nLocation: /login"

	info := ClassifyHTTPResponse(443, response)
	assert.Equal(t, "Apache", info.Server)
	assert.Equal(t, "web", info.ServiceType, "port 443 static category")
}

func TestClassifyNonHTTPPortUsesStaticTable(t *testing.T) {
	prober := NewServiceProber(nopLogger())

	info := prober.Classify(context.Background(), "127.0.0.1", 6379)
	assert.Equal(t, 6379, info.Port)
	assert.Equal(t, "Redis", info.Service)
	assert.Equal(t, "database", info.ServiceType)

	info = prober.Classify(context.Background(), "127.0.0.1", 12345)
	assert.Equal(t, "Unknown", info.Service)
	assert.Equal(t, "other", info.ServiceType)
}

func TestProbeHTTPAgainstLocalServer(t *testing.T) {
	ln, port := listenTCP(t)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		conn.Read(buf)
		fmt.Fprintf(conn, "HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nX-Powered-By: Express\r\n\r\n{\"ok\":true}")
	}()

	prober := NewServiceProber(nopLogger())
	info, ok := prober.probeHTTP(context.Background(), "127.0.0.1", port)

	require.True(t, ok)
	assert.Equal(t, "api", info.ServiceType)
	assert.Equal(t, "application/json", info.ContentType)
}

func TestDetectServicesSkipsClosedPorts(t *testing.T) {
	ln, open := listenTCP(t)
	defer ln.Close()

	closed, c := listenTCP(t)
	closed.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	prober := NewServiceProber(nopLogger())
	services := prober.DetectServices(context.Background(), "127.0.0.1", []int{open, c})

	require.Len(t, services, 1)
	assert.Equal(t, open, services[0].Port)
}

func TestDetectServicesEmptyInput(t *testing.T) {
	prober := NewServiceProber(nopLogger())
	assert.Empty(t, prober.DetectServices(context.Background(), "127.0.0.1", nil))
}
