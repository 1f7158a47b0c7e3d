package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/model"
	"github.com/user/lanscope/internal/probes"
)

var (
	scanPorts   string
	scanRange   string
	scanTimeout time.Duration
	scanAll     bool
)

var scanCmd = &cobra.Command{
	Use:   "scan <target>",
	Short: "Scan TCP ports on a host",
	Long: `Scan TCP ports on a host via connect probes. Without flags the
well-known port table is scanned; --ports takes an explicit list and
--range a contiguous span.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanPorts, "ports", "",
		"comma-separated ports to scan (e.g. 22,80,443)")
	scanCmd.Flags().StringVar(&scanRange, "range", "",
		"inclusive port range to scan (e.g. 1-1024)")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 0,
		"per-port connect timeout (default from config)")
	scanCmd.Flags().BoolVar(&scanAll, "all", false,
		"include closed ports in the output")
}

func runScan(cmd *cobra.Command, args []string) error {
	resolved, err := probes.ResolveTarget(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	timeout := scanTimeout
	if timeout <= 0 {
		timeout = cfg.ScanTimeout
	}
	scanner := probes.NewPortScanner(cfg.ScanConcurrency, cfg.ScanTimeout, logger)

	var ports []model.RemotePort
	switch {
	case scanPorts != "":
		list, err := parsePortList(scanPorts)
		if err != nil {
			return err
		}
		ports = scanner.Scan(cmd.Context(), resolved.IP, list, timeout)
	case scanRange != "":
		start, end, err := parsePortRange(scanRange)
		if err != nil {
			return err
		}
		ports = scanner.RangeScan(cmd.Context(), resolved.IP, start, end, timeout)
	default:
		ports = scanner.Scan(cmd.Context(), resolved.IP, probes.CommonPorts(), timeout)
	}

	result := model.PortScanResult{
		IP:       resolved.IP,
		Ports:    ports,
		ScanTime: probes.ScanTimestamp(),
	}

	if outputJSON {
		return printJSON(result)
	}

	open := 0
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Port", "State", "Service"})
	for _, rp := range ports {
		if rp.IsOpen {
			open++
		} else if !scanAll {
			continue
		}
		state := "closed"
		if rp.IsOpen {
			state = "open"
		}
		table.Append([]string{strconv.Itoa(rp.Port), state, rp.Service})
	}
	table.Render()

	fmt.Printf("\n%s: %d open of %d scanned\n", resolved.IP, open, len(ports))
	return nil
}

// parsePortList parses a comma-separated port list.
func parsePortList(s string) ([]int, error) {
	var ports []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		port, err := strconv.Atoi(part)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("invalid port %q", part)
		}
		ports = append(ports, port)
	}
	if len(ports) == 0 {
		return nil, fmt.Errorf("no ports in %q", s)
	}
	return ports, nil
}

// parsePortRange parses a "start-end" port range.
func parsePortRange(s string) (int, int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid port range %q, expected start-end", s)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || start < 1 || start > 65535 {
		return 0, 0, fmt.Errorf("invalid range start %q", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || end < 1 || end > 65535 {
		return 0, 0, fmt.Errorf("invalid range end %q", parts[1])
	}
	return start, end, nil
}
