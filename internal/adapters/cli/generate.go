package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starhold-go/internal/domain/world"
	"github.com/andrescamacho/starhold-go/internal/infrastructure/config"
)

// NewGenerateCommand creates the generate command
func NewGenerateCommand() *cobra.Command {
	var (
		scenarioPath string
		seed         int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a world and print its layout",
		Long: `Generate runs world generation once and prints the resulting node
layout without starting a simulation. Useful for inspecting scenario files
and seeds.

Example:
  starhold-sim generate --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if scenarioPath != "" {
				sc, err := config.LoadScenario(scenarioPath)
				if err != nil {
					return err
				}
				sc.Apply(cfg)
			}
			if seed == 0 {
				seed = cfg.World.Seed
			}
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			simCfg := buildSimulationConfig(cfg, seed)
			generator := world.NewGenerator(simCfg.Nodes, newTraceSink())
			nodes, err := generator.Generate(simCfg.Generation, rand.New(rand.NewSource(seed)))
			if err != nil {
				return fmt.Errorf("world generation failed: %w", err)
			}

			fmt.Printf("Generated %d nodes (seed=%d)\n\n", len(nodes), seed)
			fmt.Printf("%-14s %-12s %9s %6s %6s %7s\n", "ID", "OWNER", "POSITION", "CAP", "UNITS", "RATE")
			for _, n := range nodes {
				pos := n.Position()
				fmt.Printf("%-14s %-12s %4.0f,%4.0f %6d %6d %7.2f\n",
					n.ID(), n.Owner(), pos.X, pos.Y, n.Capacity(), n.Units(), n.ProductionRate())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Path to a scenario YAML file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "World generation seed (0 = from config, then current time)")

	return cmd
}
