package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/user/lanscope/internal/util"
)

var (
	cfgFile    string
	outputJSON bool
	cfg        *util.Config
	logger     *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "lanscope",
	Short: "LAN discovery and port scanning toolkit",
	Long: `Lanscope discovers and inspects hosts on the local network:
- Local interface and subnet enumeration
- Subnet device discovery via ARP and ping sweep
- TCP port scanning with service labels
- HTTP service fingerprinting
- Ping and traceroute connectivity diagnostics`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is $HOME/.lanscope/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console",
		"log format (console, json)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false,
		"emit results as JSON")

	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Add subcommands
	rootCmd.AddCommand(interfacesCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(smartCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(servicesCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(pingxCmd)
	rootCmd.AddCommand(traceCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(versionCmd)

	// Add shell completion
	rootCmd.AddCommand(completionCmd)
}

func initConfig() {
	var err error
	cfg, err = util.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err = util.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("lanscope version 1.0.0")
	},
}

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for lanscope.

To load completions:

Bash:
  $ source <(lanscope completion bash)

Zsh:
  $ source <(lanscope completion zsh)

Fish:
  $ lanscope completion fish | source

PowerShell:
  PS> lanscope completion powershell | Out-String | Invoke-Expression
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		switch args[0] {
		case "bash":
			cmd.Root().GenBashCompletion(os.Stdout)
		case "zsh":
			cmd.Root().GenZshCompletion(os.Stdout)
		case "fish":
			cmd.Root().GenFishCompletion(os.Stdout, true)
		case "powershell":
			cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
		}
	},
}
