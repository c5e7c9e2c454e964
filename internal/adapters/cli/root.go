package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starhold-sim",
		Short: "Starhold simulation runner - headless territorial-conquest simulations",
		Long: `Starhold simulation runner drives the conquest simulation core without a
renderer: it generates a world, advances the simulation at a fixed tick rate
and reports the outcome. FactionB is always engine-driven; FactionA can be
handed to a second engine instance for self-play runs.

Examples:
  starhold-sim run
  starhold-sim run --seed 42 --tick-rate 60
  starhold-sim run --scenario scenarios/close-quarters.yaml --metrics-addr :9090
  starhold-sim generate --seed 7`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs, /etc/starhold)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Print diagnostic traces from the simulation core")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewGenerateCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
