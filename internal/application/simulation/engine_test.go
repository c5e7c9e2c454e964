package simulation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starhold-go/internal/application/simulation"
	"github.com/andrescamacho/starhold-go/internal/domain/ai"
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
)

// testConfig keeps the battlefield small and the opposing engine dormant
// (hour-long cadence) so assertions only observe player-issued transfers.
func testConfig() simulation.Config {
	return simulation.Config{
		MaxTickDelta: 250 * time.Millisecond,
		FleetSpeed:   120,
		Seed:         42,
		Nodes: world.Settings{
			NeutralConquestDuration: 3 * time.Second,
			BattleDuration:          2 * time.Second,
			ProductionBase:          0.5,
			ProductionPerCapacity:   0.05,
		},
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

func newRunningSimulation(t *testing.T) *simulation.Simulation {
	t.Helper()
	sim := simulation.New(nil)
	require.NoError(t, sim.Reset(testConfig()))
	return sim
}

// nodeOwnedBy finds the starting node of a faction.
func nodeOwnedBy(t *testing.T, sim *simulation.Simulation, faction shared.Faction) *world.Node {
	t.Helper()
	for _, n := range sim.Nodes() {
		if n.Owner() == faction {
			return n
		}
	}
	t.Fatalf("no node owned by %s", faction)
	return nil
}

func firstUnclaimedNode(t *testing.T, sim *simulation.Simulation) *world.Node {
	t.Helper()
	for _, n := range sim.Nodes() {
		if n.Owner() == shared.FactionUnclaimed {
			return n
		}
	}
	t.Fatal("no unclaimed node")
	return nil
}

// driveUntil ticks in 100ms steps until the condition holds or the budget
// runs out.
func driveUntil(t *testing.T, sim *simulation.Simulation, budget time.Duration, cond func() bool) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < budget; elapsed += 100 * time.Millisecond {
		if cond() {
			return
		}
		sim.Tick(100 * time.Millisecond)
	}
	require.True(t, cond(), "condition not reached within %s", budget)
}

func TestSimulation_ResetBuildsPlayingWorld(t *testing.T) {
	// Arrange
	sim := simulation.New(nil)

	// Act
	err := sim.Reset(testConfig())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, simulation.PhasePlaying, sim.Phase())
	snap := sim.Snapshot()
	assert.Len(t, snap.Nodes, 6)
	assert.Empty(t, snap.Fleets)
	assert.Equal(t, 1, snap.Stats.FactionA.Nodes)
	assert.Equal(t, 1, snap.Stats.FactionB.Nodes)
	assert.Equal(t, 10, snap.Stats.FactionA.Units)
}

func TestSimulation_ResetIsReproducibleBySeed(t *testing.T) {
	simOne := simulation.New(nil)
	simTwo := simulation.New(nil)
	require.NoError(t, simOne.Reset(testConfig()))
	require.NoError(t, simTwo.Reset(testConfig()))

	one := simOne.Snapshot()
	two := simTwo.Snapshot()

	require.Len(t, two.Nodes, len(one.Nodes))
	for i := range one.Nodes {
		assert.Equal(t, one.Nodes[i].Position, two.Nodes[i].Position)
		assert.Equal(t, one.Nodes[i].Capacity, two.Nodes[i].Capacity)
		assert.Equal(t, one.Nodes[i].Owner, two.Nodes[i].Owner)
	}
}

func TestSimulation_TickBeforeResetIsNoOp(t *testing.T) {
	sim := simulation.New(nil)

	sim.Tick(time.Second)

	assert.Equal(t, simulation.PhaseIdle, sim.Phase())
	assert.Equal(t, time.Duration(0), sim.Snapshot().Stats.Elapsed)
}

func TestSimulation_TickClampsDelta(t *testing.T) {
	// Arrange
	sim := newRunningSimulation(t)

	// Act - a stalled host hands over a huge delta
	sim.Tick(10 * time.Second)

	// Assert - the step is bounded by the configured maximum
	assert.Equal(t, 250*time.Millisecond, sim.Snapshot().Stats.Elapsed)
}

func TestSimulation_PauseSuspendsTicking(t *testing.T) {
	// Arrange
	sim := newRunningSimulation(t)

	// Act
	sim.Pause()
	sim.Tick(100 * time.Millisecond)

	// Assert
	assert.True(t, sim.Paused())
	assert.Equal(t, time.Duration(0), sim.Snapshot().Stats.Elapsed)

	// Act - resume restores normal stepping
	sim.Resume()
	sim.Tick(100 * time.Millisecond)

	assert.Equal(t, 100*time.Millisecond, sim.Snapshot().Stats.Elapsed)
}

func TestSimulation_IssueTransferLaunchesFleet(t *testing.T) {
	// Arrange
	sim := newRunningSimulation(t)
	source := nodeOwnedBy(t, sim, shared.FactionA)
	dest := firstUnclaimedNode(t, sim)

	// Act - send everything above a garrison of 2
	result := sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   dest.ID(),
		Faction:  shared.FactionA,
		Garrison: 2,
	})

	// Assert
	assert.True(t, result.Accepted)
	assert.Equal(t, 8, result.UnitsSent)
	assert.NotEmpty(t, result.FleetID)
	assert.Equal(t, 2, source.Units())
	assert.Len(t, sim.Snapshot().Fleets, 1)
	assert.Equal(t, 1, sim.Snapshot().Stats.FactionA.FleetsLaunched)
}

func TestSimulation_TransferRejections(t *testing.T) {
	sim := newRunningSimulation(t)
	source := nodeOwnedBy(t, sim, shared.FactionA)
	enemy := nodeOwnedBy(t, sim, shared.FactionB)
	dest := firstUnclaimedNode(t, sim)

	tests := []struct {
		name string
		cmd  simulation.TransferCommand
	}{
		{"unknown source", simulation.TransferCommand{
			SourceID: "node-missing", DestID: dest.ID(), Faction: shared.FactionA,
		}},
		{"unknown destination", simulation.TransferCommand{
			SourceID: source.ID(), DestID: "node-missing", Faction: shared.FactionA,
		}},
		{"source equals destination", simulation.TransferCommand{
			SourceID: source.ID(), DestID: source.ID(), Faction: shared.FactionA,
		}},
		{"unplayable faction", simulation.TransferCommand{
			SourceID: source.ID(), DestID: dest.ID(), Faction: shared.FactionUnclaimed,
		}},
		{"source owned by enemy", simulation.TransferCommand{
			SourceID: enemy.ID(), DestID: dest.ID(), Faction: shared.FactionA,
		}},
		{"garrison swallows everything", simulation.TransferCommand{
			SourceID: source.ID(), DestID: dest.ID(), Faction: shared.FactionA, Garrison: 10,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := sim.IssueTransfer(tt.cmd)

			assert.False(t, result.Accepted)
			assert.NotEmpty(t, result.Reason)
			assert.Empty(t, result.FleetID)
		})
	}

	// No fleet launched and no units moved by any rejection
	assert.Empty(t, sim.Snapshot().Fleets)
	assert.Equal(t, 10, source.Units())
}

func TestSimulation_UnitsInTransitCountTowardOwner(t *testing.T) {
	// Arrange
	sim := newRunningSimulation(t)
	source := nodeOwnedBy(t, sim, shared.FactionA)
	dest := firstUnclaimedNode(t, sim)

	before := sim.Snapshot().Stats.FactionA.Units

	// Act
	result := sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   dest.ID(),
		Faction:  shared.FactionA,
		Units:    5,
	})
	require.True(t, result.Accepted)
	sim.Tick(50 * time.Millisecond)

	// Assert - total strength unchanged while the fleet flies
	assert.Equal(t, before, sim.Snapshot().Stats.FactionA.Units)
}

func TestSimulation_FleetArrivalStartsConquest(t *testing.T) {
	// Arrange
	sim := newRunningSimulation(t)
	source := nodeOwnedBy(t, sim, shared.FactionA)
	dest := firstUnclaimedNode(t, sim)

	result := sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   dest.ID(),
		Faction:  shared.FactionA,
		Units:    5,
	})
	require.True(t, result.Accepted)

	// Act - fly the fleet to its destination
	driveUntil(t, sim, 60*time.Second, func() bool {
		return dest.State() == world.NodeStateConquering
	})

	// Assert
	assert.Equal(t, shared.FactionA, dest.Conqueror())
	assert.Empty(t, sim.Snapshot().Fleets)

	// Act - let the conquest timer run out
	driveUntil(t, sim, 10*time.Second, func() bool {
		return dest.Owner() == shared.FactionA
	})

	// Assert
	assert.Equal(t, world.NodeStateIdle, dest.State())
	assert.Equal(t, 1, sim.Snapshot().Stats.FactionA.NodesConquered)
}

func TestSimulation_ProductionAccruesToStandings(t *testing.T) {
	// Arrange - start below capacity so both starting nodes have room to grow
	cfg := testConfig()
	cfg.Generation.StartingUnits = 5
	sim := simulation.New(nil)
	require.NoError(t, sim.Reset(cfg))
	before := sim.Snapshot().Stats.FactionA.Units

	// Act - step well past several production intervals
	for i := 0; i < 200; i++ {
		sim.Tick(100 * time.Millisecond)
	}

	// Assert
	snap := sim.Snapshot()
	assert.Greater(t, snap.Stats.FactionA.Units, before)
	assert.Greater(t, snap.Stats.FactionA.UnitsProduced, 0)
}

func TestSimulation_TerminatesWhenFactionLosesLastNode(t *testing.T) {
	// Arrange - overwhelm the enemy's only node
	sim := newRunningSimulation(t)
	source := nodeOwnedBy(t, sim, shared.FactionA)
	enemy := nodeOwnedBy(t, sim, shared.FactionB)

	result := sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   enemy.ID(),
		Faction:  shared.FactionA,
	})
	require.True(t, result.Accepted)

	// Act - transit plus battle duration; drain the defender each step so
	// the attack resolves decisively regardless of transit-time production
	driveUntil(t, sim, 120*time.Second, func() bool {
		enemy.Withdraw(enemy.Units())
		return sim.Phase() != simulation.PhasePlaying
	})

	// Assert
	assert.Equal(t, simulation.PhaseFactionAWin, sim.Phase())
	summary := sim.Summary()
	require.NotNil(t, summary)
	assert.Equal(t, shared.FactionA, summary.Winner)
	assert.GreaterOrEqual(t, summary.FleetsLaunched, 1)

	// A finished simulation ignores further commands
	sim.Tick(time.Second)
	late := sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   enemy.ID(),
		Faction:  shared.FactionA,
	})
	assert.False(t, late.Accepted)
}

func TestSimulation_ResetAfterTerminationStartsFresh(t *testing.T) {
	// Arrange - drive a run to completion
	sim := newRunningSimulation(t)
	source := nodeOwnedBy(t, sim, shared.FactionA)
	enemy := nodeOwnedBy(t, sim, shared.FactionB)
	sim.IssueTransfer(simulation.TransferCommand{
		SourceID: source.ID(),
		DestID:   enemy.ID(),
		Faction:  shared.FactionA,
	})
	driveUntil(t, sim, 120*time.Second, func() bool {
		enemy.Withdraw(enemy.Units())
		return sim.Phase() != simulation.PhasePlaying
	})

	// Act
	require.NoError(t, sim.Reset(testConfig()))

	// Assert
	snap := sim.Snapshot()
	assert.Equal(t, simulation.PhasePlaying, sim.Phase())
	assert.Nil(t, sim.Summary())
	assert.Empty(t, snap.Fleets)
	assert.Equal(t, time.Duration(0), snap.Stats.Elapsed)
	assert.Equal(t, 0, snap.Stats.FactionA.FleetsLaunched)
}

func TestSimulation_EnableAutopilotDrivesBothFactions(t *testing.T) {
	// Arrange - a short cadence so both engines act quickly
	cfg := testConfig()
	cfg.AI.Cadence = 500 * time.Millisecond
	sim := simulation.New(nil)
	require.NoError(t, sim.Reset(cfg))
	require.NoError(t, sim.EnableAutopilot(shared.FactionA))

	// Act
	driveUntil(t, sim, 30*time.Second, func() bool {
		stats := sim.Snapshot().Stats
		return stats.FactionA.FleetsLaunched > 0 && stats.FactionB.FleetsLaunched > 0
	})

	// Assert - enabling twice is a no-op, not an error
	assert.NoError(t, sim.EnableAutopilot(shared.FactionA))
}

func TestSimulation_EnableAutopilotRequiresReset(t *testing.T) {
	sim := simulation.New(nil)

	err := sim.EnableAutopilot(shared.FactionA)

	assert.Error(t, err)
}
