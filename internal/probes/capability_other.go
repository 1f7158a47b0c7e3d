//go:build !linux && !darwin

package probes

// rawChannelAvailable reports false on platforms without a supported
// raw link-layer channel; discovery falls back to the ping sweep.
func rawChannelAvailable() bool {
	return false
}
