package world_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
)

var testSettings = world.Settings{
	NeutralConquestDuration: 3 * time.Second,
	BattleDuration:          2 * time.Second,
	ProductionBase:          0.5,
	ProductionPerCapacity:   0.05,
}

func newUnclaimedNode(t *testing.T, capacity int) *world.Node {
	t.Helper()
	n, err := world.NewNode(shared.Position{X: 100, Y: 100}, capacity, testSettings)
	require.NoError(t, err)
	return n
}

func newOwnedNode(t *testing.T, owner shared.Faction, capacity, units int) *world.Node {
	t.Helper()
	n, err := world.NewOwnedNode(shared.Position{X: 100, Y: 100}, capacity, owner, units, testSettings)
	require.NoError(t, err)
	return n
}

func TestNewNode_RejectsNonPositiveCapacity(t *testing.T) {
	_, err := world.NewNode(shared.Position{}, 0, testSettings)

	assert.Error(t, err)
}

func TestNewNode_StartsUnclaimedAndEmpty(t *testing.T) {
	n := newUnclaimedNode(t, 10)

	assert.Equal(t, shared.FactionUnclaimed, n.Owner())
	assert.Equal(t, 0, n.Units())
	assert.Equal(t, world.NodeStateIdle, n.State())
}

func TestNode_ProductionRateGrowsWithCapacity(t *testing.T) {
	small := newUnclaimedNode(t, 10)
	large := newUnclaimedNode(t, 50)

	assert.Greater(t, large.ProductionRate(), small.ProductionRate())
	assert.InDelta(t, 0.5+10*0.05, small.ProductionRate(), 1e-9)
}

func TestNode_ProducesWholeUnitsPerInterval(t *testing.T) {
	// Arrange - rate 1.0 units/s, so one unit per second
	n := newOwnedNode(t, shared.FactionA, 10, 0)
	require.InDelta(t, 1.0, n.ProductionRate(), 1e-9)

	// Act - half a second: nothing yet
	produced, _ := n.Tick(500 * time.Millisecond)

	// Assert
	assert.Equal(t, 0, produced)
	assert.Equal(t, 0, n.Units())

	// Act - another half second completes the interval
	produced, _ = n.Tick(500 * time.Millisecond)

	assert.Equal(t, 1, produced)
	assert.Equal(t, 1, n.Units())
}

func TestNode_ProductionClampsAtCapacity(t *testing.T) {
	n := newOwnedNode(t, shared.FactionA, 2, 0)

	// 30 simulated seconds at 1 unit/s would overshoot a capacity of 2
	for i := 0; i < 300; i++ {
		n.Tick(100 * time.Millisecond)
	}

	assert.Equal(t, 2, n.Units())
}

func TestNode_UnclaimedNeverProduces(t *testing.T) {
	n := newUnclaimedNode(t, 10)

	produced, _ := n.Tick(10 * time.Second)

	assert.Equal(t, 0, produced)
	assert.Equal(t, 0, n.Units())
}

func TestNode_SmallTicksMatchLargeTickProduction(t *testing.T) {
	// Arrange
	small := newOwnedNode(t, shared.FactionA, 50, 0)
	large := newOwnedNode(t, shared.FactionA, 50, 0)

	// Act - 10s as 625 ticks of 16ms vs one 10s tick
	for i := 0; i < 625; i++ {
		small.Tick(16 * time.Millisecond)
	}
	large.Tick(10 * time.Second)

	// Assert
	assert.Equal(t, large.Units(), small.Units())
}

func TestNode_ConquestFlow(t *testing.T) {
	// Arrange
	n := newUnclaimedNode(t, 10)

	// Act
	err := n.BeginConquest(shared.FactionB)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, world.NodeStateConquering, n.State())
	assert.Equal(t, shared.FactionB, n.Conqueror())

	// Act - run the timer out
	_, transition := n.Tick(testSettings.NeutralConquestDuration)

	// Assert - owner flips with 0 units
	require.NotNil(t, transition)
	assert.Equal(t, world.TransitionConquered, transition.Kind)
	assert.Equal(t, shared.FactionB, n.Owner())
	assert.Equal(t, 0, n.Units())
	assert.Equal(t, world.NodeStateIdle, n.State())
}

func TestNode_SecondConquerorOverwritesSlot(t *testing.T) {
	// Arrange
	n := newUnclaimedNode(t, 10)
	require.NoError(t, n.BeginConquest(shared.FactionA))
	n.Tick(2 * time.Second)

	// Act - a late challenger takes over the slot and restarts the timer
	require.NoError(t, n.BeginConquest(shared.FactionB))

	// Assert
	assert.Equal(t, shared.FactionB, n.Conqueror())
	assert.Equal(t, 0.0, n.StateProgress())

	_, transition := n.Tick(testSettings.NeutralConquestDuration)
	require.NotNil(t, transition)
	assert.Equal(t, shared.FactionB, n.Owner())
}

func TestNode_ConquestRejectedOnOwnedNode(t *testing.T) {
	n := newOwnedNode(t, shared.FactionA, 10, 5)

	err := n.BeginConquest(shared.FactionB)

	assert.Error(t, err)
	assert.IsType(t, &shared.StateConflictError{}, err)
	assert.Equal(t, world.NodeStateIdle, n.State())
}

func TestNode_BattleAttackerWins(t *testing.T) {
	// Arrange
	n := newOwnedNode(t, shared.FactionA, 20, 6)

	// Act
	require.NoError(t, n.BeginBattle(shared.FactionB, 10))
	_, transition := n.Tick(testSettings.BattleDuration)

	// Assert - 10 vs 6: attacker takes the node with the surplus
	require.NotNil(t, transition)
	assert.Equal(t, world.TransitionBattleWon, transition.Kind)
	assert.Equal(t, shared.FactionB, n.Owner())
	assert.Equal(t, 4, n.Units())
	assert.Equal(t, world.NodeStateIdle, n.State())
}

func TestNode_BattleDefenderHolds(t *testing.T) {
	// Arrange
	n := newOwnedNode(t, shared.FactionA, 20, 10)

	// Act
	require.NoError(t, n.BeginBattle(shared.FactionB, 6))
	_, transition := n.Tick(testSettings.BattleDuration)

	// Assert - 6 vs 10: defender keeps the node minus losses
	require.NotNil(t, transition)
	assert.Equal(t, world.TransitionBattleHeld, transition.Kind)
	assert.Equal(t, shared.FactionA, n.Owner())
	assert.Equal(t, 4, n.Units())
}

func TestNode_BattleTieGoesToDefender(t *testing.T) {
	n := newOwnedNode(t, shared.FactionA, 20, 5)

	require.NoError(t, n.BeginBattle(shared.FactionB, 5))
	n.Tick(testSettings.BattleDuration)

	assert.Equal(t, shared.FactionA, n.Owner())
	assert.Equal(t, 0, n.Units())
}

func TestNode_SecondAttackerOverwritesSlot(t *testing.T) {
	// Arrange
	n := newOwnedNode(t, shared.FactionA, 20, 8)
	require.NoError(t, n.BeginBattle(shared.FactionB, 3))
	n.Tick(time.Second)

	// Act - a bigger attacking group replaces the first, no merge
	require.NoError(t, n.BeginBattle(shared.FactionB, 12))

	// Assert
	assert.Equal(t, 12, n.AttackingUnits())
	assert.Equal(t, 0.0, n.StateProgress())
}

func TestNode_BattleRejectedOnUnclaimedNode(t *testing.T) {
	n := newUnclaimedNode(t, 10)

	err := n.BeginBattle(shared.FactionB, 5)

	assert.Error(t, err)
	assert.IsType(t, &shared.StateConflictError{}, err)
}

func TestNode_BattleRejectedDuringConquest(t *testing.T) {
	// Arrange
	n := newUnclaimedNode(t, 10)
	require.NoError(t, n.BeginConquest(shared.FactionA))

	// Act - conquest and battle are mutually exclusive
	err := n.BeginBattle(shared.FactionB, 5)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, world.NodeStateConquering, n.State())
}

func TestNode_ReinforceDiscardsOverflow(t *testing.T) {
	n := newOwnedNode(t, shared.FactionA, 10, 8)

	accepted := n.Reinforce(5)

	assert.Equal(t, 2, accepted)
	assert.Equal(t, 10, n.Units())
}

func TestNode_DefenderReinforcedDuringBattle(t *testing.T) {
	// Arrange
	n := newOwnedNode(t, shared.FactionA, 20, 5)
	require.NoError(t, n.BeginBattle(shared.FactionB, 10))

	// Act - friendly arrivals bolster the defense mid-battle
	n.Reinforce(7)
	_, transition := n.Tick(testSettings.BattleDuration)

	// Assert - 10 vs 12: defender holds
	require.NotNil(t, transition)
	assert.Equal(t, world.TransitionBattleHeld, transition.Kind)
	assert.Equal(t, shared.FactionA, n.Owner())
	assert.Equal(t, 2, n.Units())
}

func TestNode_WithdrawClampsToAvailable(t *testing.T) {
	n := newOwnedNode(t, shared.FactionA, 10, 3)

	withdrawn := n.Withdraw(99)

	assert.Equal(t, 3, withdrawn)
	assert.Equal(t, 0, n.Units())
}

func TestNode_UnitsStayWithinBounds(t *testing.T) {
	// Arrange
	n := newOwnedNode(t, shared.FactionA, 10, 5)

	// Act - a mix of operations that could overflow or underflow
	n.Reinforce(100)
	n.Withdraw(3)
	n.Tick(30 * time.Second)
	n.Withdraw(1000)
	n.Reinforce(-5)
	n.Withdraw(-5)

	// Assert
	assert.GreaterOrEqual(t, n.Units(), 0)
	assert.LessOrEqual(t, n.Units(), n.Capacity())
}
