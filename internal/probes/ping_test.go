package probes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/lanscope/internal/model"
)

const macOSPingOutput = `PING 192.168.1.1 (192.168.1.1): 56 data bytes
64 bytes from 192.168.1.1: icmp_seq=0 ttl=64 time=1.921 ms
64 bytes from 192.168.1.1: icmp_seq=1 ttl=64 time=2.374 ms
64 bytes from 192.168.1.1: icmp_seq=2 ttl=64 time=1.650 ms
64 bytes from 192.168.1.1: icmp_seq=3 ttl=64 time=2.105 ms

--- 192.168.1.1 ping statistics ---
4 packets transmitted, 4 packets received, 0.0% packet loss
round-trip min/avg/max/stddev = 1.650/2.012/2.374/0.265 ms
`

const linuxPingOutput = `PING 10.0.0.1 (10.0.0.1) 56(84) bytes of data.
64 bytes from 10.0.0.1: icmp_seq=1 ttl=64 time=0.512 ms
64 bytes from 10.0.0.1: icmp_seq=2 ttl=64 time=0.488 ms

--- 10.0.0.1 ping statistics ---
4 packets transmitted, 2 received, 50% packet loss, time 3004ms
rtt min/avg/max/mdev = 0.488/0.500/0.512/0.012 ms
`

const windowsPingOutput = "Pinging 192.168.1.1 with 32 bytes of data:\r\n" +
	"Reply from 192.168.1.1: bytes=32 time=3ms TTL=64\r\n" +
	"Reply from 192.168.1.1: bytes=32 time=2ms TTL=64\r\n" +
	"\r\n" +
	"Ping statistics for 192.168.1.1:\r\n" +
	"    Packets: Sent = 4, Received = 4, Lost = 0 (0% loss),\r\n" +
	"Approximate round trip times in milli-seconds:\r\n" +
	"    Minimum = 2ms, Maximum = 4ms, Average = 3ms\r\n"

func TestParsePingOutputMacOS(t *testing.T) {
	result := model.PingResult{IP: "192.168.1.1", PacketsSent: 4, PacketLoss: 100}
	ParsePingOutput(macOSPingOutput, &result)

	assert.Equal(t, 0.0, result.PacketLoss)
	assert.Equal(t, 4, result.PacketsReceived)

	require.NotNil(t, result.MinMs)
	require.NotNil(t, result.AvgMs)
	require.NotNil(t, result.MaxMs)
	assert.Equal(t, 1.650, *result.MinMs)
	assert.Equal(t, 2.012, *result.AvgMs)
	assert.Equal(t, 2.374, *result.MaxMs)
	assert.LessOrEqual(t, *result.MinMs, *result.AvgMs)
	assert.LessOrEqual(t, *result.AvgMs, *result.MaxMs)
}

func TestParsePingOutputLinuxLoss(t *testing.T) {
	result := model.PingResult{IP: "10.0.0.1", PacketsSent: 4, PacketLoss: 100}
	ParsePingOutput(linuxPingOutput, &result)

	assert.Equal(t, 50.0, result.PacketLoss)
	// Received is derived from loss: (100-50)/100 * 4, truncated.
	assert.Equal(t, 2, result.PacketsReceived)

	require.NotNil(t, result.MinMs)
	assert.Equal(t, 0.488, *result.MinMs)
	assert.Equal(t, 0.512, *result.MaxMs)
}

func TestParsePingOutputWindows(t *testing.T) {
	result := model.PingResult{IP: "192.168.1.1", PacketsSent: 4, PacketLoss: 100}
	ParsePingOutput(windowsPingOutput, &result)

	assert.Equal(t, 0.0, result.PacketLoss)
	assert.Equal(t, 4, result.PacketsReceived)

	require.NotNil(t, result.MinMs)
	assert.Equal(t, 2.0, *result.MinMs)
	assert.Equal(t, 3.0, *result.AvgMs)
	assert.Equal(t, 4.0, *result.MaxMs)
}

func TestParsePingOutputNoStats(t *testing.T) {
	result := model.PingResult{IP: "10.0.0.99", PacketsSent: 4, PacketLoss: 100}
	ParsePingOutput("ping: sendto: Host is down\n", &result)

	assert.Equal(t, 100.0, result.PacketLoss, "defaults survive unparsable output")
	assert.Nil(t, result.MinMs)
}

func TestParsePingOneOutputReply(t *testing.T) {
	output := "PING 192.168.1.1 (192.168.1.1): 56 data bytes\n" +
		"64 bytes from 192.168.1.1: icmp_seq=0 ttl=64 time=1.337 ms\n"

	result := ParsePingOneOutput("192.168.1.1", 3, output)

	assert.True(t, result.Success)
	assert.Equal(t, "192.168.1.1", result.IP)
	assert.Equal(t, 3, result.Seq)
	assert.Contains(t, result.Line, "bytes from")

	require.NotNil(t, result.TimeMs)
	assert.Equal(t, 1.337, *result.TimeMs)
	require.NotNil(t, result.TTL)
	assert.Equal(t, 64, *result.TTL)
}

func TestParsePingOneOutputWindowsReply(t *testing.T) {
	output := "Pinging 192.168.1.1 with 32 bytes of data:\r\n" +
		"Reply from 192.168.1.1: bytes=32 time=5ms TTL=128\r\n"

	result := ParsePingOneOutput("192.168.1.1", 1, output)

	assert.True(t, result.Success)
	require.NotNil(t, result.TimeMs)
	assert.Equal(t, 5.0, *result.TimeMs)
	require.NotNil(t, result.TTL)
	assert.Equal(t, 128, *result.TTL)
}

func TestParsePingOneOutputTimeout(t *testing.T) {
	// A clean exit without a reply line still counts as a timeout.
	output := "PING 192.168.1.99 (192.168.1.99): 56 data bytes\n" +
		"--- 192.168.1.99 ping statistics ---\n" +
		"1 packets transmitted, 0 packets received, 100.0% packet loss\n"

	result := ParsePingOneOutput("192.168.1.99", 0, output)

	assert.False(t, result.Success)
	assert.Equal(t, "Request timeout", result.Line)
	assert.Nil(t, result.TimeMs)
	assert.Nil(t, result.TTL)
}

func TestPingCountArgs(t *testing.T) {
	name, args := pingCountArgs("linux", "10.0.0.1", 4)
	assert.Equal(t, "ping", name)
	assert.Equal(t, []string{"-c", "4", "10.0.0.1"}, args)

	_, args = pingCountArgs("windows", "10.0.0.1", 2)
	assert.Equal(t, []string{"-n", "2", "10.0.0.1"}, args)
}

func TestPingOneArgs(t *testing.T) {
	tests := []struct {
		goos string
		want []string
	}{
		{"darwin", []string{"-c", "1", "-W", "2000", "10.0.0.1"}},
		{"linux", []string{"-c", "1", "-W", "2", "10.0.0.1"}},
		{"windows", []string{"-n", "1", "-w", "2000", "10.0.0.1"}},
	}
	for _, tt := range tests {
		_, args := pingOneArgs(tt.goos, "10.0.0.1")
		assert.Equal(t, tt.want, args, "goos=%s", tt.goos)
	}
}
