package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
)

var nodeTestSettings = world.Settings{
	NeutralConquestDuration: 3 * time.Second,
	BattleDuration:          2 * time.Second,
	ProductionBase:          0.5,
	ProductionPerCapacity:   0.05,
}

type nodeContext struct {
	node      *world.Node
	unitsLost int
	err       error
}

func (nc *nodeContext) reset() {
	nc.node = nil
	nc.unitsLost = 0
	nc.err = nil
}

func parseFaction(name string) (shared.Faction, error) {
	switch name {
	case "FACTION_A":
		return shared.FactionA, nil
	case "FACTION_B":
		return shared.FactionB, nil
	case "UNCLAIMED":
		return shared.FactionUnclaimed, nil
	default:
		return shared.FactionUnclaimed, fmt.Errorf("unknown faction %q", name)
	}
}

func (nc *nodeContext) anUnclaimedNodeWithCapacity(capacity int) error {
	nc.node, nc.err = world.NewNode(shared.Position{X: 100, Y: 100}, capacity, nodeTestSettings)
	return nc.err
}

func (nc *nodeContext) aNodeOwnedByWithCapacityHoldingUnits(owner string, capacity, units int) error {
	faction, err := parseFaction(owner)
	if err != nil {
		return err
	}
	nc.node, nc.err = world.NewOwnedNode(shared.Position{X: 100, Y: 100}, capacity, faction, units, nodeTestSettings)
	return nc.err
}

func (nc *nodeContext) beginsAConquest(faction string) error {
	f, err := parseFaction(faction)
	if err != nil {
		return err
	}
	nc.err = nc.node.BeginConquest(f)
	return nil
}

func (nc *nodeContext) attacksWithUnits(faction string, units int) error {
	f, err := parseFaction(faction)
	if err != nil {
		return err
	}
	nc.err = nc.node.BeginBattle(f, units)
	return nil
}

func (nc *nodeContext) friendlyUnitsArrive(units int) error {
	accepted := nc.node.Reinforce(units)
	nc.unitsLost = units - accepted
	return nil
}

func (nc *nodeContext) theConquestRunsToCompletion() error {
	return nc.runStateTimer(nodeTestSettings.NeutralConquestDuration, world.NodeStateConquering)
}

func (nc *nodeContext) theBattleRunsToCompletion() error {
	return nc.runStateTimer(nodeTestSettings.BattleDuration, world.NodeStateBattling)
}

func (nc *nodeContext) runStateTimer(duration time.Duration, expected world.NodeState) error {
	if nc.node.State() != expected {
		return fmt.Errorf("node is %s, expected %s", nc.node.State(), expected)
	}
	nc.node.Tick(duration)
	if nc.node.State() != world.NodeStateIdle {
		return fmt.Errorf("timer did not resolve, node still %s", nc.node.State())
	}
	return nil
}

func (nc *nodeContext) theNodeShouldBeOwnedBy(owner string) error {
	f, err := parseFaction(owner)
	if err != nil {
		return err
	}
	if nc.node.Owner() != f {
		return fmt.Errorf("expected owner %s, got %s", f, nc.node.Owner())
	}
	return nil
}

func (nc *nodeContext) theNodeShouldHoldUnits(units int) error {
	if nc.node.Units() != units {
		return fmt.Errorf("expected %d units, got %d", units, nc.node.Units())
	}
	return nil
}

func (nc *nodeContext) unitsShouldBeLostToOverflow(units int) error {
	if nc.unitsLost != units {
		return fmt.Errorf("expected %d units lost, got %d", units, nc.unitsLost)
	}
	return nil
}

func (nc *nodeContext) theOperationShouldBeRejected() error {
	if nc.err == nil {
		return fmt.Errorf("expected a rejection, got none")
	}
	nc.err = nil
	return nil
}

// InitializeNodeScenario registers the node state machine steps.
func InitializeNodeScenario(sc *godog.ScenarioContext) {
	nc := &nodeContext{}

	sc.Before(func(ctx context.Context, scenario *godog.Scenario) (context.Context, error) {
		nc.reset()
		return ctx, nil
	})

	sc.Step(`^an unclaimed node with capacity (\d+)$`, nc.anUnclaimedNodeWithCapacity)
	sc.Step(`^a node owned by "([^"]*)" with capacity (\d+) holding (\d+) units$`, nc.aNodeOwnedByWithCapacityHoldingUnits)
	sc.Step(`^"([^"]*)" begins a conquest$`, nc.beginsAConquest)
	sc.Step(`^"([^"]*)" attacks with (\d+) units$`, nc.attacksWithUnits)
	sc.Step(`^(\d+) friendly units arrive$`, nc.friendlyUnitsArrive)
	sc.Step(`^the conquest runs to completion$`, nc.theConquestRunsToCompletion)
	sc.Step(`^the battle runs to completion$`, nc.theBattleRunsToCompletion)
	sc.Step(`^the node should be owned by "([^"]*)"$`, nc.theNodeShouldBeOwnedBy)
	sc.Step(`^the node should hold (\d+) units$`, nc.theNodeShouldHoldUnits)
	sc.Step(`^(\d+) units should be lost to overflow$`, nc.unitsShouldBeLostToOverflow)
	sc.Step(`^the operation should be rejected$`, nc.theOperationShouldBeRejected)
}
