package cli

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/andrescamacho/starhold-go/internal/application/simulation"
	"github.com/andrescamacho/starhold-go/internal/domain/ai"
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
	"github.com/andrescamacho/starhold-go/internal/infrastructure/config"
)

// buildSimulationConfig maps the file/env configuration onto the
// application-level config consumed by the simulation core.
func buildSimulationConfig(cfg *config.Config, seed int64) simulation.Config {
	return simulation.Config{
		MaxTickDelta: time.Duration(cfg.Simulation.MaxTickMs) * time.Millisecond,
		FleetSpeed:   cfg.Simulation.FleetSpeed,
		Seed:         seed,
		Nodes: world.Settings{
			NeutralConquestDuration: time.Duration(cfg.Simulation.NeutralConquestMs) * time.Millisecond,
			BattleDuration:          time.Duration(cfg.Simulation.BattleMs) * time.Millisecond,
			ProductionBase:          cfg.Simulation.ProductionBase,
			ProductionPerCapacity:   cfg.Simulation.ProductionPerCapacity,
		},
		Generation: world.GenerationConfig{
			NodeCount:     cfg.World.NodeCount,
			Width:         cfg.World.Width,
			Height:        cfg.World.Height,
			EdgeMargin:    cfg.World.EdgeMargin,
			MinDistance:   cfg.World.MinDistance,
			MaxAttempts:   cfg.World.MaxAttempts,
			CapacityPool:  cfg.World.CapacityPool,
			StartingUnits: cfg.World.StartingUnits,
		},
		AI: ai.Config{
			Cadence:           time.Duration(cfg.AI.CadenceMs) * time.Millisecond,
			ThresholdDistance: cfg.AI.ThresholdDistance,
			MinThreatScore:    cfg.AI.MinThreatScore,
			Thresholds: ai.StrategyThresholds{
				DefensiveUnitRatio:        cfg.AI.DefensiveUnitRatio,
				DefensiveThreatCount:      cfg.AI.DefensiveThreatCount,
				AggressiveUnitRatio:       cfg.AI.AggressiveUnitRatio,
				AggressiveProductionRatio: cfg.AI.AggressiveProductionRatio,
			},
			AttackMargin:      cfg.AI.AttackMargin,
			HistorySize:       cfg.AI.HistorySize,
			DecisionCooldown:  time.Duration(cfg.AI.CooldownMs) * time.Millisecond,
			ExplorationChance: cfg.AI.ExplorationChance,
		},
	}
}

// newTraceSink returns a stderr sink in verbose mode, no-op otherwise.
func newTraceSink() shared.TraceSink {
	if !verbose {
		return shared.NopTraceSink()
	}
	return &stderrTraceSink{}
}

type stderrTraceSink struct{}

func (s *stderrTraceSink) Trace(event string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(os.Stderr, "trace %s", event)
	for _, k := range keys {
		fmt.Fprintf(os.Stderr, " %s=%v", k, metadata[k])
	}
	fmt.Fprintln(os.Stderr)
}

func printSummary(summary *simulation.Summary) {
	fmt.Println("\nSimulation finished")
	fmt.Println("===================")
	fmt.Printf("  Winner:          %s\n", summary.Winner)
	fmt.Printf("  Duration:        %s\n", summary.Duration.Round(time.Millisecond))
	fmt.Printf("  Fleets launched: %d\n", summary.FleetsLaunched)
	fmt.Printf("  Units produced:  %d\n", summary.UnitsProduced)
	fmt.Printf("  Nodes conquered: %d\n", summary.NodesConquered)
}
