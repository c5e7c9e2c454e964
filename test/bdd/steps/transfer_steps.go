package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starhold-go/internal/application/simulation"
	"github.com/andrescamacho/starhold-go/internal/domain/ai"
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
)

type transferContext struct {
	sim    *simulation.Simulation
	result simulation.TransferResult
}

func (tc *transferContext) reset() {
	tc.sim = nil
	tc.result = simulation.TransferResult{}
}

// skirmishConfig keeps the opposing engine dormant so scenarios only
// observe the transfers they issue themselves.
func skirmishConfig() simulation.Config {
	return simulation.Config{
		MaxTickDelta: 250 * time.Millisecond,
		FleetSpeed:   120,
		Seed:         42,
		Nodes:        nodeTestSettings,
		Generation: world.GenerationConfig{
			NodeCount:     6,
			Width:         1280,
			Height:        720,
			EdgeMargin:    60,
			MinDistance:   120,
			MaxAttempts:   1000,
			CapacityPool:  []int{10, 20, 30},
			StartingUnits: 10,
		},
		AI: ai.Config{
			Cadence:           time.Hour,
			ThresholdDistance: 400,
			MinThreatScore:    0.3,
			Thresholds: ai.StrategyThresholds{
				DefensiveUnitRatio:        0.6,
				DefensiveThreatCount:      2,
				AggressiveUnitRatio:       1.5,
				AggressiveProductionRatio: 1.2,
			},
			AttackMargin:      1.2,
			HistorySize:       10,
			DecisionCooldown:  8 * time.Second,
			ExplorationChance: 0,
		},
	}
}

func (tc *transferContext) aRunningSkirmish() error {
	tc.sim = simulation.New(nil)
	return tc.sim.Reset(skirmishConfig())
}

func (tc *transferContext) startingNodeOf(faction shared.Faction) (*world.Node, error) {
	for _, n := range tc.sim.Nodes() {
		if n.Owner() == faction {
			return n, nil
		}
	}
	return nil, fmt.Errorf("no node owned by %s", faction)
}

func (tc *transferContext) firstUnclaimed() (*world.Node, error) {
	for _, n := range tc.sim.Nodes() {
		if n.Owner() == shared.FactionUnclaimed {
			return n, nil
		}
	}
	return nil, fmt.Errorf("no unclaimed node")
}

func (tc *transferContext) sendsUnitsToAnUnclaimedNode(faction string, units int) error {
	f, err := parseFaction(faction)
	if err != nil {
		return err
	}
	source, err := tc.startingNodeOf(f)
	if err != nil {
		return err
	}
	dest, err := tc.firstUnclaimed()
	if err != nil {
		return err
	}
	tc.result = tc.sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   dest.ID(),
		Faction:  f,
		Units:    units,
	})
	return nil
}

func (tc *transferContext) ordersATransferFromAnEnemyNode(faction string) error {
	f, err := parseFaction(faction)
	if err != nil {
		return err
	}
	enemySource, err := tc.startingNodeOf(f.Opponent())
	if err != nil {
		return err
	}
	dest, err := tc.firstUnclaimed()
	if err != nil {
		return err
	}
	tc.result = tc.sim.IssueTransfer(simulation.TransferCommand{
		SourceID: enemySource.ID(),
		DestID:   dest.ID(),
		Faction:  f,
		Units:    5,
	})
	return nil
}

func (tc *transferContext) theTransferShouldBeAccepted() error {
	if !tc.result.Accepted {
		return fmt.Errorf("transfer rejected: %s", tc.result.Reason)
	}
	return nil
}

func (tc *transferContext) theTransferShouldBeRejected() error {
	if tc.result.Accepted {
		return fmt.Errorf("transfer was accepted, expected a rejection")
	}
	return nil
}

func (tc *transferContext) aFleetCarryingUnitsShouldBeInTransit(units int) error {
	snap := tc.sim.Snapshot()
	for _, f := range snap.Fleets {
		if f.Units == units {
			return nil
		}
	}
	return fmt.Errorf("no fleet carrying %d units among %d fleets", units, len(snap.Fleets))
}

func (tc *transferContext) noFleetShouldBeInTransit() error {
	if fleets := tc.sim.Snapshot().Fleets; len(fleets) != 0 {
		return fmt.Errorf("expected no fleets, found %d", len(fleets))
	}
	return nil
}

func (tc *transferContext) theFleetArrivesAndTheConquestCompletes() error {
	dest, err := tc.firstUnclaimed()
	if err != nil {
		return err
	}
	f, err := parseFaction("FACTION_A")
	if err != nil {
		return err
	}

	deadline := 120 * time.Second
	for elapsed := time.Duration(0); elapsed < deadline; elapsed += 100 * time.Millisecond {
		if dest.Owner() == f {
			return nil
		}
		tc.sim.Tick(100 * time.Millisecond)
	}
	return fmt.Errorf("conquest did not complete, node still %s owned by %s", dest.State(), dest.Owner())
}

// InitializeTransferScenario registers the simulation transfer steps.
func InitializeTransferScenario(sc *godog.ScenarioContext) {
	tc := &transferContext{}

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	sc.Step(`^a running skirmish$`, tc.aRunningSkirmish)
	sc.Step(`^"([^"]*)" sends (\d+) units to an unclaimed node$`, tc.sendsUnitsToAnUnclaimedNode)
	sc.Step(`^"([^"]*)" orders a transfer from an enemy node$`, tc.ordersATransferFromAnEnemyNode)
	sc.Step(`^the transfer should be accepted$`, tc.theTransferShouldBeAccepted)
	sc.Step(`^the transfer should be rejected$`, tc.theTransferShouldBeRejected)
	sc.Step(`^a fleet carrying (\d+) units should be in transit$`, tc.aFleetCarryingUnitsShouldBeInTransit)
	sc.Step(`^no fleet should be in transit$`, tc.noFleetShouldBeInTransit)
	sc.Step(`^the fleet arrives and the conquest completes$`, tc.theFleetArrivesAndTheConquestCompletes)
}
