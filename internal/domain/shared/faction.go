package shared

// Faction identifies who controls a node or fleet.
//
// The set is closed: every owner in the simulation is exactly one of these
// three values, and decision points are expected to switch exhaustively.
type Faction string

const (
	// FactionUnclaimed marks a node that no faction controls yet.
	// Fleets are never unclaimed.
	FactionUnclaimed Faction = "UNCLAIMED"

	// FactionA is the human-controlled side.
	FactionA Faction = "FACTION_A"

	// FactionB is the side driven by the decision engine.
	FactionB Faction = "FACTION_B"
)

// IsPlayable reports whether the faction is one of the two competing sides.
func (f Faction) IsPlayable() bool {
	return f == FactionA || f == FactionB
}

// Opponent returns the other playable faction.
// Returns FactionUnclaimed for FactionUnclaimed.
func (f Faction) Opponent() Faction {
	switch f {
	case FactionA:
		return FactionB
	case FactionB:
		return FactionA
	default:
		return FactionUnclaimed
	}
}

func (f Faction) String() string {
	return string(f)
}
