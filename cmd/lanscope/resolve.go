package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/lanscope/internal/probes"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <target>",
	Short: "Resolve a hostname or validate an IP for scanning",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	result, err := probes.ResolveTarget(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if outputJSON {
		return printJSON(result)
	}

	fmt.Printf("%s -> %s\n", result.Original, result.IP)
	if result.Hostname != "" {
		fmt.Printf("  hostname: %s\n", result.Hostname)
	}
	fmt.Printf("  domain: %v\n", result.IsDomain)
	return nil
}
