package simulation

import (
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
)

// Phase is the simulation lifecycle phase.
type Phase string

const (
	PhaseIdle        Phase = "IDLE"
	PhasePlaying     Phase = "PLAYING"
	PhaseFactionAWin Phase = "FACTION_A_WIN"
	PhaseFactionBWin Phase = "FACTION_B_WIN"
)

// NodeView is the read-only rendering view of a node.
type NodeView struct {
	ID             string          `json:"id"`
	Position       shared.Position `json:"position"`
	Capacity       int             `json:"capacity"`
	Units          int             `json:"units"`
	Owner          shared.Faction  `json:"owner"`
	State          world.NodeState `json:"state"`
	StateProgress  float64         `json:"state_progress"`
	Conqueror      shared.Faction  `json:"conqueror,omitempty"`
	Attacker       shared.Faction  `json:"attacker,omitempty"`
	AttackingUnits int             `json:"attacking_units,omitempty"`
}

// FleetView is the read-only rendering view of a fleet in transit.
// Position eases between the endpoints; Progress is the linear travel
// fraction that determines arrival.
type FleetView struct {
	ID       string          `json:"id"`
	Owner    shared.Faction  `json:"owner"`
	Units    int             `json:"units"`
	SourceID string          `json:"source_id"`
	DestID   string          `json:"dest_id"`
	Position shared.Position `json:"position"`
	Progress float64         `json:"progress"`
}

// Snapshot is the read-only state handed to the presentation layer.
// It is a value copy: mutating it never touches the simulation.
type Snapshot struct {
	Nodes  []NodeView  `json:"nodes"`
	Fleets []FleetView `json:"fleets"`
	Stats  Stats       `json:"stats"`
	Phase  Phase       `json:"phase"`
}
