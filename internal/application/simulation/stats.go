package simulation

import (
	"time"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
)

// FactionStats aggregates one faction's standing and cumulative counters.
type FactionStats struct {
	Nodes          int `json:"nodes"`
	Units          int `json:"units"`
	FleetsLaunched int `json:"fleets_launched"`
	UnitsProduced  int `json:"units_produced"`
	NodesConquered int `json:"nodes_conquered"`
	BattlesWon     int `json:"battles_won"`
}

// Stats is the per-tick aggregate recomputed after every simulation step.
// Units counts garrisoned units plus units in transit.
type Stats struct {
	Elapsed  time.Duration `json:"elapsed"`
	FactionA FactionStats  `json:"faction_a"`
	FactionB FactionStats  `json:"faction_b"`
}

// ForFaction returns the mutable stats bucket for a playable faction.
// Returns nil for FactionUnclaimed.
func (s *Stats) ForFaction(f shared.Faction) *FactionStats {
	switch f {
	case shared.FactionA:
		return &s.FactionA
	case shared.FactionB:
		return &s.FactionB
	default:
		return nil
	}
}

// Summary is the terminal report produced when the simulation ends.
type Summary struct {
	Winner         shared.Faction `json:"winner"`
	Duration       time.Duration  `json:"duration"`
	FleetsLaunched int            `json:"fleets_launched"`
	UnitsProduced  int            `json:"units_produced"`
	NodesConquered int            `json:"nodes_conquered"`
}

func newSummary(winner shared.Faction, stats Stats) *Summary {
	return &Summary{
		Winner:         winner,
		Duration:       stats.Elapsed,
		FleetsLaunched: stats.FactionA.FleetsLaunched + stats.FactionB.FleetsLaunched,
		UnitsProduced:  stats.FactionA.UnitsProduced + stats.FactionB.UnitsProduced,
		NodesConquered: stats.FactionA.NodesConquered + stats.FactionB.NodesConquered,
	}
}
