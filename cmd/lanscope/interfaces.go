package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/probes"
)

var interfacesCmd = &cobra.Command{
	Use:     "interfaces",
	Aliases: []string{"ifaces"},
	Short:   "List local network interfaces and their subnets",
	Long: `List the local IPv4 interfaces and the /24 subnet of each.
When no usable interface is found, common private subnets are offered
as manual candidates.`,
	RunE: runInterfaces,
}

func runInterfaces(cmd *cobra.Command, args []string) error {
	interfaces := probes.ListInterfaces()

	if outputJSON {
		return printJSON(interfaces)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Name", "IP", "Netmask", "Subnet"})
	for _, iface := range interfaces {
		table.Append([]string{iface.Name, iface.IP, iface.Netmask, iface.Subnet})
	}
	table.Render()

	if subnet, ok := probes.CurrentSubnet(); ok {
		fmt.Printf("\nCurrent subnet: %s\n", subnet)
	}

	return nil
}
