package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/probes"
)

var traceCmd = &cobra.Command{
	Use:   "trace <target>",
	Short: "Trace the network path to a host",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrace,
}

func runTrace(cmd *cobra.Command, args []string) error {
	resolved, err := probes.ResolveTarget(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	tracer := probes.NewTracer(cfg.MaxHops, logger)
	result := tracer.Trace(cmd.Context(), resolved.IP)

	if outputJSON {
		return printJSON(result)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Hop", "IP", "Time"})
	for _, hop := range result.Hops {
		ip := hop.IP
		latency := "*"
		if ip == "" {
			ip = "*"
		}
		if hop.TimeMs != nil {
			latency = fmt.Sprintf("%.3fms", *hop.TimeMs)
		}
		table.Append([]string{strconv.Itoa(hop.Hop), ip, latency})
	}
	table.Render()

	fmt.Printf("\n%d hop(s) to %s\n", len(result.Hops), result.Target)
	return nil
}
