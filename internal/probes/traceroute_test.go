package probes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unixTracerouteOutput = `traceroute to 8.8.8.8 (8.8.8.8), 30 hops max, 60 byte packets
 1  192.168.1.1  1.234 ms
 2  10.20.0.1  4.567 ms
 3  * * *
 4  72.14.204.1  12.890 ms
`

func TestParseTracerouteOutputUnix(t *testing.T) {
	hops := ParseTracerouteOutput(unixTracerouteOutput)
	require.Len(t, hops, 4)

	assert.Equal(t, 1, hops[0].Hop)
	assert.Equal(t, "192.168.1.1", hops[0].IP)
	require.NotNil(t, hops[0].TimeMs)
	assert.Equal(t, 1.234, *hops[0].TimeMs)

	// Hop 3 answered nothing; position is preserved with an empty hop.
	assert.Equal(t, 3, hops[2].Hop)
	assert.Empty(t, hops[2].IP)
	assert.Nil(t, hops[2].TimeMs)

	assert.Equal(t, "72.14.204.1", hops[3].IP)
}

func TestParseTracerouteOutputWindows(t *testing.T) {
	output := "\r\nTracing route to 8.8.8.8 over a maximum of 30 hops\r\n" +
		"\r\n" +
		"  1    <1 ms    <1 ms    <1 ms  192.168.1.1\r\n" +
		"  2     4 ms     3 ms     4 ms  10.20.0.1\r\n" +
		"  3     *        *        *     Request timed out.\r\n" +
		"\r\nTrace complete.\r\n"

	hops := ParseTracerouteOutput(output)
	require.Len(t, hops, 3)

	assert.Equal(t, "192.168.1.1", hops[0].IP)
	assert.Equal(t, "10.20.0.1", hops[1].IP)
	assert.Equal(t, 3, hops[2].Hop)
	assert.Empty(t, hops[2].IP)
}

func TestParseTracerouteOutputSkipsHeadersAndBlank(t *testing.T) {
	hops := ParseTracerouteOutput("traceroute to x, 30 hops max\n\n\nnonsense line\n")
	assert.Empty(t, hops)
}

func TestTracerouteArgs(t *testing.T) {
	name, args := tracerouteArgs("linux", "8.8.8.8", 30)
	assert.Equal(t, "traceroute", name)
	assert.Equal(t, []string{"-n", "-q", "1", "-w", "2", "-m", "30", "8.8.8.8"}, args)

	name, args = tracerouteArgs("windows", "8.8.8.8", 30)
	assert.Equal(t, "tracert", name)
	assert.Equal(t, []string{"-d", "-w", "1000", "-h", "30", "8.8.8.8"}, args)
}

func TestNewTracerClampsMaxHops(t *testing.T) {
	assert.Equal(t, 30, NewTracer(0, nopLogger()).maxHops)
	assert.Equal(t, 30, NewTracer(100, nopLogger()).maxHops)
	assert.Equal(t, 12, NewTracer(12, nopLogger()).maxHops)
}
