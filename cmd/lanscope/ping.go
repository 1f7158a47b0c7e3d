package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/probes"
)

var (
	pingCount  int
	pingxCount int
)

var pingCmd = &cobra.Command{
	Use:   "ping <target>",
	Short: "Ping a host and report latency statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runPing,
}

var pingxCmd = &cobra.Command{
	Use:   "pingx <target>",
	Short: "Ping a host one echo at a time with per-probe output",
	Args:  cobra.ExactArgs(1),
	RunE:  runPingx,
}

func init() {
	pingCmd.Flags().IntVarP(&pingCount, "count", "c", 0,
		"number of echoes (default from config)")
	pingxCmd.Flags().IntVarP(&pingxCount, "count", "c", 0,
		"number of echoes (default from config)")
}

func runPing(cmd *cobra.Command, args []string) error {
	resolved, err := probes.ResolveTarget(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	count := pingCount
	if count <= 0 {
		count = cfg.PingCount
	}

	pinger := probes.NewPinger(logger)
	result := pinger.Ping(cmd.Context(), resolved.IP, count)

	if outputJSON {
		return printJSON(result)
	}

	status := "unreachable"
	if result.IsReachable {
		status = "reachable"
	}
	fmt.Printf("%s is %s\n", result.IP, status)
	fmt.Printf("  packets: %d sent, %d received, %.1f%% loss\n",
		result.PacketsSent, result.PacketsReceived, result.PacketLoss)
	if result.MinMs != nil && result.AvgMs != nil && result.MaxMs != nil {
		fmt.Printf("  rtt: min %.3fms / avg %.3fms / max %.3fms\n",
			*result.MinMs, *result.AvgMs, *result.MaxMs)
	}
	return nil
}

func runPingx(cmd *cobra.Command, args []string) error {
	resolved, err := probes.ResolveTarget(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	count := pingxCount
	if count <= 0 {
		count = cfg.PingCount
	}

	pinger := probes.NewPinger(logger)
	for seq := 0; seq < count; seq++ {
		result := pinger.PingOne(cmd.Context(), resolved.IP, seq)

		if outputJSON {
			if err := printJSON(result); err != nil {
				return err
			}
		} else {
			fmt.Println(result.Line)
		}

		if seq < count-1 {
			select {
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			case <-time.After(time.Second):
			}
		}
	}
	return nil
}
