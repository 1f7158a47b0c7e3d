package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/probes"
)

var smartCmd = &cobra.Command{
	Use:   "smart [subnet]",
	Short: "Discover devices with the best available method",
	Long: `Discover devices using a raw ARP sweep when link-layer privilege is
available, falling back to the unprivileged ping/ARP-cache path.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSmart,
}

func runSmart(cmd *cobra.Command, args []string) error {
	subnet, err := subnetArg(args)
	if err != nil {
		return err
	}

	link := probes.NewLinkLayerProbe(logger)
	selector := probes.NewSelector(link, newDiscoveryEngine(logger), logger)
	result := selector.SmartScan(cmd.Context(), subnet)

	if outputJSON {
		return printJSON(result)
	}

	printDeviceTable(result.Devices)
	fmt.Printf("\nScan %s: %d device(s) via %s in %dms (privileged: %v)\n",
		result.ScanID, len(result.Devices), result.ScanMethod,
		result.ScanTimeMs, result.HasPermission)
	return nil
}
