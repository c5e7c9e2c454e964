package world

import (
	"fmt"
	"time"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/pkg/utils"
)

// NodeState represents the node's exclusive state machine state
type NodeState string

const (
	// NodeStateIdle means stable ownership: producing, or unclaimed and empty
	NodeStateIdle NodeState = "IDLE"

	// NodeStateConquering means an unclaimed node is being taken by one faction
	NodeStateConquering NodeState = "CONQUERING"

	// NodeStateBattling means an owned node is contested by one attacker
	NodeStateBattling NodeState = "BATTLING"
)

// Settings carries the tuning values shared by every node in a world.
type Settings struct {
	// NeutralConquestDuration is how long an unopposed conquest of an
	// unclaimed node takes.
	NeutralConquestDuration time.Duration

	// BattleDuration is how long a battle over an owned node takes.
	BattleDuration time.Duration

	// ProductionBase is the production rate in units per second of a
	// zero-capacity node.
	ProductionBase float64

	// ProductionPerCapacity is the extra units per second granted per
	// point of capacity. Larger nodes produce strictly faster.
	ProductionPerCapacity float64
}

// TransitionKind identifies a completed node state transition
type TransitionKind string

const (
	TransitionConquered  TransitionKind = "CONQUERED"
	TransitionBattleWon  TransitionKind = "BATTLE_WON"
	TransitionBattleHeld TransitionKind = "BATTLE_HELD"
)

// Transition reports a state machine resolution that completed during a tick.
// Faction is the side that ends the tick holding the node.
type Transition struct {
	Kind    TransitionKind
	Node    *Node
	Faction shared.Faction
}

// Node aggregate root - a capacity-bounded territory on the battlefield.
//
// Invariants:
// - Unit count stays within [0, capacity] at all times
// - Conquering and Battling are mutually exclusive
// - An unclaimed node holds 0 units outside an active conquest
//
// All mutation happens synchronously inside a tick; Node is not safe for
// concurrent use.
type Node struct {
	id       string
	position shared.Position
	capacity int
	units    int
	owner    shared.Faction
	state    NodeState
	settings Settings

	// Conquest slot, active only while Conquering. A later arrival
	// overwrites the slot rather than merging (see BeginConquest).
	conqueror shared.Faction
	conquest  *shared.Countdown

	// Battle slot, active only while Battling. Single attacker, no merge.
	attacker       shared.Faction
	attackingUnits int
	battle         *shared.Countdown

	productionAccum time.Duration
}

// NewNode creates an unclaimed node with validation.
func NewNode(position shared.Position, capacity int, settings Settings) (*Node, error) {
	if capacity <= 0 {
		return nil, shared.NewValidationError("capacity", "must be positive")
	}

	return &Node{
		id:       utils.GenerateEntityID("node"),
		position: position,
		capacity: capacity,
		owner:    shared.FactionUnclaimed,
		state:    NodeStateIdle,
		settings: settings,
		conquest: shared.NewCountdown(0),
		battle:   shared.NewCountdown(0),
	}, nil
}

// NewOwnedNode creates a node already held by a faction, bypassing the
// conquest state machine. World generation uses this for starting nodes.
// Units are clamped to capacity.
func NewOwnedNode(position shared.Position, capacity int, owner shared.Faction, units int, settings Settings) (*Node, error) {
	if !owner.IsPlayable() {
		return nil, shared.NewValidationError("owner", "must be a playable faction")
	}
	if units < 0 {
		return nil, shared.NewValidationError("units", "cannot be negative")
	}

	n, err := NewNode(position, capacity, settings)
	if err != nil {
		return nil, err
	}
	n.owner = owner
	n.units = utils.Min(units, capacity)
	return n, nil
}

// Getters

func (n *Node) ID() string {
	return n.id
}

func (n *Node) Position() shared.Position {
	return n.position
}

func (n *Node) Capacity() int {
	return n.capacity
}

func (n *Node) Units() int {
	return n.units
}

func (n *Node) Owner() shared.Faction {
	return n.owner
}

func (n *Node) State() NodeState {
	return n.state
}

// Conqueror returns the faction taking this node, or FactionUnclaimed
// when no conquest is active.
func (n *Node) Conqueror() shared.Faction {
	if n.state != NodeStateConquering {
		return shared.FactionUnclaimed
	}
	return n.conqueror
}

// Attacker returns the faction contesting this node, or FactionUnclaimed
// when no battle is active.
func (n *Node) Attacker() shared.Faction {
	if n.state != NodeStateBattling {
		return shared.FactionUnclaimed
	}
	return n.attacker
}

// AttackingUnits returns the attacking unit count of the active battle,
// 0 when no battle is active.
func (n *Node) AttackingUnits() int {
	if n.state != NodeStateBattling {
		return 0
	}
	return n.attackingUnits
}

// StateProgress returns the completed fraction of the active conquest or
// battle timer, 0 when the node is idle.
func (n *Node) StateProgress() float64 {
	switch n.state {
	case NodeStateConquering:
		return n.conquest.Progress()
	case NodeStateBattling:
		return n.battle.Progress()
	default:
		return 0
	}
}

// ProductionRate returns the production rate in units per second.
// Rate grows monotonically with capacity.
func (n *Node) ProductionRate() float64 {
	return n.settings.ProductionBase + float64(n.capacity)*n.settings.ProductionPerCapacity
}

// DistanceTo calculates Euclidean distance to another node.
func (n *Node) DistanceTo(other *Node) float64 {
	return n.position.DistanceTo(other.position)
}

// Tick advances production and the active conquest/battle timer by delta.
// It returns the number of units produced this tick and the transition
// that resolved, if any.
func (n *Node) Tick(delta time.Duration) (int, *Transition) {
	produced := n.produce(delta)

	switch n.state {
	case NodeStateConquering:
		n.conquest.Advance(delta)
		if n.conquest.Done() {
			return produced, n.completeConquest()
		}
	case NodeStateBattling:
		n.battle.Advance(delta)
		if n.battle.Done() {
			return produced, n.resolveBattle()
		}
	}

	return produced, nil
}

// produce accrues production time and converts whole intervals into units.
// Production is an idle-state behavior: a contested node's garrison is
// frozen until the battle resolves, which keeps resolution deterministic.
func (n *Node) produce(delta time.Duration) int {
	if n.state != NodeStateIdle || n.owner == shared.FactionUnclaimed || n.units >= n.capacity {
		n.productionAccum = 0
		return 0
	}

	interval := n.productionInterval()
	if interval <= 0 {
		return 0
	}

	n.productionAccum += delta
	produced := 0
	for n.productionAccum >= interval && n.units < n.capacity {
		n.productionAccum -= interval
		n.units++
		produced++
	}
	if n.units >= n.capacity {
		n.productionAccum = 0
	}
	return produced
}

// productionInterval is the accrual time required per unit: 1000/rate ms.
func (n *Node) productionInterval() time.Duration {
	rate := n.ProductionRate()
	if rate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / rate)
}

// BeginConquest starts (or restarts) a conquest of an unclaimed node.
//
// A transfer arriving while another conquest is in flight overwrites the
// single conqueror slot and restarts the timer; challengers are not merged
// or queued.
func (n *Node) BeginConquest(faction shared.Faction) error {
	if !faction.IsPlayable() {
		return shared.NewValidationError("faction", "conqueror must be a playable faction")
	}
	if n.state == NodeStateBattling {
		return shared.NewStateConflictError(n.id, string(n.state), "conquest")
	}
	if n.owner != shared.FactionUnclaimed {
		return shared.NewStateConflictError(n.id, string(n.state), "conquest of owned node")
	}

	n.state = NodeStateConquering
	n.conqueror = faction
	n.conquest.Reset(n.settings.NeutralConquestDuration)
	return nil
}

// BeginBattle starts (or restarts) a battle over an owned node.
//
// A second concurrent attacker overwrites the first; attacking groups are
// not merged.
func (n *Node) BeginBattle(attacker shared.Faction, units int) error {
	if !attacker.IsPlayable() {
		return shared.NewValidationError("attacker", "attacker must be a playable faction")
	}
	if units <= 0 {
		return shared.NewValidationError("units", "attacking units must be positive")
	}
	if n.state == NodeStateConquering {
		return shared.NewStateConflictError(n.id, string(n.state), "battle")
	}
	if n.owner == shared.FactionUnclaimed {
		return shared.NewStateConflictError(n.id, string(n.state), "battle on unclaimed node")
	}
	if attacker == n.owner {
		return shared.NewStateConflictError(n.id, string(n.state), "battle by owner")
	}

	n.state = NodeStateBattling
	n.attacker = attacker
	n.attackingUnits = units
	n.battle.Reset(n.settings.BattleDuration)
	return nil
}

// Reinforce adds arriving friendly units, clamped to capacity.
// Returns the number of units actually absorbed; overflow is discarded.
// Valid while idle or while defending a battle.
func (n *Node) Reinforce(units int) int {
	if units <= 0 {
		return 0
	}
	accepted := utils.Min(units, n.capacity-n.units)
	n.units += accepted
	return accepted
}

// Withdraw removes up to the requested number of units and returns how
// many were actually withdrawn. Over-withdrawal clamps to available units.
func (n *Node) Withdraw(units int) int {
	if units <= 0 {
		return 0
	}
	withdrawn := utils.Min(units, n.units)
	n.units -= withdrawn
	return withdrawn
}

// completeConquest hands the node to the conqueror with 0 units.
func (n *Node) completeConquest() *Transition {
	n.owner = n.conqueror
	n.units = 0
	n.state = NodeStateIdle
	n.conqueror = shared.FactionUnclaimed
	n.productionAccum = 0

	return &Transition{Kind: TransitionConquered, Node: n, Faction: n.owner}
}

// resolveBattle applies the deterministic battle outcome:
// attacker > defender flips ownership with the surplus garrisoned,
// otherwise the defender keeps the node with the deterministic subtraction.
func (n *Node) resolveBattle() *Transition {
	attacker := n.attacker
	attacking := n.attackingUnits
	defending := n.units

	n.state = NodeStateIdle
	n.attacker = shared.FactionUnclaimed
	n.attackingUnits = 0

	if attacking > defending {
		n.owner = attacker
		n.units = utils.Clamp(attacking-defending, 0, n.capacity)
		n.productionAccum = 0
		return &Transition{Kind: TransitionBattleWon, Node: n, Faction: attacker}
	}

	n.units = utils.Max(0, defending-attacking)
	return &Transition{Kind: TransitionBattleHeld, Node: n, Faction: n.owner}
}

func (n *Node) String() string {
	return fmt.Sprintf("Node(id=%s, owner=%s, units=%d/%d, state=%s)",
		n.id, n.owner, n.units, n.capacity, n.state)
}
