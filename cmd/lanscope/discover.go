package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/lanscope/internal/model"
	"github.com/user/lanscope/internal/probes"
)

var discoverCmd = &cobra.Command{
	Use:   "discover [subnet]",
	Short: "Discover online devices on a subnet",
	Long: `Discover the online devices of a /24 subnet by reconciling the OS
ARP cache with a parallel ping sweep. Defaults to the current subnet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDiscover,
}

func runDiscover(cmd *cobra.Command, args []string) error {
	subnet, err := subnetArg(args)
	if err != nil {
		return err
	}

	engine := newDiscoveryEngine(logger)
	devices := engine.Discover(cmd.Context(), subnet)

	result := model.NetworkScanResult{
		Subnet:   subnet,
		Devices:  devices,
		ScanTime: probes.ScanTimestamp(),
	}

	if outputJSON {
		return printJSON(result)
	}

	printDeviceTable(devices)
	fmt.Printf("\n%d device(s) online on %s at %s\n", len(devices), subnet, result.ScanTime)
	return nil
}

// subnetArg returns the subnet argument, defaulting to the current one.
func subnetArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	subnet, ok := probes.CurrentSubnet()
	if !ok {
		return "", fmt.Errorf("cannot determine current subnet, pass one explicitly")
	}
	return subnet, nil
}

// newDiscoveryEngine assembles the full discovery pipeline from config.
func newDiscoveryEngine(logger *zap.Logger) *probes.Engine {
	return probes.NewEngine(
		probes.NewARPCache(logger),
		probes.NewPingSweeper(cfg.SweepConcurrency, cfg.SweepTimeout, logger),
		probes.NewLinkLayerProbe(logger),
		probes.NewVendorResolver(logger),
		logger,
	)
}

func printDeviceTable(devices []model.NetworkDevice) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"IP", "MAC", "Hostname", "Vendor"})
	for _, dev := range devices {
		table.Append([]string{dev.IP, dev.MAC, dev.Hostname, dev.Vendor})
	}
	table.Render()
}
