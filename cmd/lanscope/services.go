package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/probes"
)

var servicesPorts string

var servicesCmd = &cobra.Command{
	Use:   "services <target>",
	Short: "Fingerprint services on a host's open ports",
	Long: `Classify the services listening on a host. HTTP-shaped ports get a
minimal GET probe; everything else is labeled from the well-known port
table. Closed ports are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runServices,
}

func init() {
	servicesCmd.Flags().StringVar(&servicesPorts, "ports", "",
		"comma-separated ports to classify (default: well-known table)")
}

func runServices(cmd *cobra.Command, args []string) error {
	resolved, err := probes.ResolveTarget(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	ports := probes.CommonPorts()
	if servicesPorts != "" {
		if ports, err = parsePortList(servicesPorts); err != nil {
			return err
		}
	}

	prober := probes.NewServiceProber(logger)
	services := prober.DetectServices(cmd.Context(), resolved.IP, ports)

	if outputJSON {
		return printJSON(services)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Port", "Service", "Type", "Server", "Content-Type"})
	for _, svc := range services {
		table.Append([]string{
			strconv.Itoa(svc.Port), svc.Service, svc.ServiceType,
			svc.Server, svc.ContentType,
		})
	}
	table.Render()

	fmt.Printf("\n%s: %d service(s) detected\n", resolved.IP, len(services))
	return nil
}
