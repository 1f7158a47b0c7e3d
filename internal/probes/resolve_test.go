package probes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHostnameOutputHost(t *testing.T) {
	output := "1.1.168.192.in-addr.arpa domain name pointer router.lan.\n"
	assert.Equal(t, "router.lan", ParseHostnameOutput(output))
}

func TestParseHostnameOutputNslookup(t *testing.T) {
	output := "Server:  192.168.1.1\r\nAddress:  192.168.1.1#53\r\n\r\n" +
		"1.1.168.192.in-addr.arpa\tname = gateway.home.\r\n"
	assert.Equal(t, "gateway.home", ParseHostnameOutput(output))
}

func TestParseHostnameOutputNotFound(t *testing.T) {
	assert.Empty(t, ParseHostnameOutput("Host 99.1.168.192.in-addr.arpa not found: 3(NXDOMAIN)\n"))
	assert.Empty(t, ParseHostnameOutput(""))
}

func TestResolveTargetIPLiteral(t *testing.T) {
	result, err := ResolveTarget(context.Background(), "192.0.2.10")
	require.NoError(t, err)

	assert.Equal(t, "192.0.2.10", result.Original)
	assert.Equal(t, "192.0.2.10", result.IP)
	assert.False(t, result.IsDomain)
}

func TestResolveTargetTrimsWhitespace(t *testing.T) {
	result, err := ResolveTarget(context.Background(), "  192.0.2.10 ")
	require.NoError(t, err)
	assert.Equal(t, "192.0.2.10", result.IP)
}

func TestResolveTargetEmpty(t *testing.T) {
	_, err := ResolveTarget(context.Background(), "")
	assert.Error(t, err)

	_, err = ResolveTarget(context.Background(), "   ")
	assert.Error(t, err)
}

func TestResolveTargetUnresolvable(t *testing.T) {
	_, err := ResolveTarget(context.Background(), "definitely-not-a-real-host.invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "definitely-not-a-real-host.invalid")
}

func TestResolveTargetLocalhost(t *testing.T) {
	result, err := ResolveTarget(context.Background(), "localhost")
	require.NoError(t, err)

	assert.True(t, result.IsDomain)
	assert.Equal(t, "localhost", result.Hostname)
	assert.Equal(t, "127.0.0.1", result.IP, "IPv4 preferred over ::1")
}
