package fleet

import (
	"fmt"
	"time"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
	"github.com/andrescamacho/starhold-go/pkg/utils"
)

// ResolutionKind identifies how an arrival resolved against the destination
type ResolutionKind string

const (
	ResolutionReinforced    ResolutionKind = "REINFORCED"
	ResolutionConquestBegun ResolutionKind = "CONQUEST_BEGUN"
	ResolutionBattleBegun   ResolutionKind = "BATTLE_BEGUN"
	ResolutionRejected      ResolutionKind = "REJECTED"
)

// Resolution reports the outcome of a fleet arrival.
type Resolution struct {
	Kind ResolutionKind

	// UnitsLost is the capacity overflow discarded on a friendly
	// reinforcement; 0 for every other resolution kind.
	UnitsLost int
}

// Fleet - a fixed-size batch of units in transit between two nodes.
//
// Invariants:
// - The route is immutable: source, destination and unit count are fixed
//   at creation
// - Progress advances linearly with elapsed time so arrival timing stays
//   deterministic; only the rendered position eases
// - Arrival resolves exactly once, then the fleet is discarded
type Fleet struct {
	id       string
	owner    shared.Faction
	units    int
	source   *world.Node
	dest     *world.Node
	travel   *shared.Countdown
	resolved bool
}

// NewFleet creates a fleet in transit with validation. The travel duration
// is the source→destination distance divided by speed (units per second).
// The units must already have been withdrawn from the source node.
func NewFleet(source, dest *world.Node, owner shared.Faction, units int, speed float64) (*Fleet, error) {
	if source == nil || dest == nil {
		return nil, shared.NewValidationError("route", "source and destination are required")
	}
	if source.ID() == dest.ID() {
		return nil, shared.NewValidationError("route", "source and destination must differ")
	}
	if !owner.IsPlayable() {
		return nil, shared.NewValidationError("owner", "fleet owner must be a playable faction")
	}
	if units <= 0 {
		return nil, shared.NewValidationError("units", "fleet must carry at least one unit")
	}
	if speed <= 0 {
		return nil, shared.NewValidationError("speed", "must be positive")
	}

	distance := source.DistanceTo(dest)
	duration := time.Duration(distance / speed * float64(time.Second))

	return &Fleet{
		id:     utils.GenerateEntityID("fleet"),
		owner:  owner,
		units:  units,
		source: source,
		dest:   dest,
		travel: shared.NewCountdown(duration),
	}, nil
}

// Getters

func (f *Fleet) ID() string {
	return f.id
}

func (f *Fleet) Owner() shared.Faction {
	return f.owner
}

// Units returns the carried unit count, invariant for the fleet's lifetime.
func (f *Fleet) Units() int {
	return f.units
}

func (f *Fleet) Source() *world.Node {
	return f.source
}

func (f *Fleet) Destination() *world.Node {
	return f.dest
}

// Progress returns the linear travel fraction in [0,1].
func (f *Fleet) Progress() float64 {
	return f.travel.Progress()
}

// TravelDuration returns the total transit time for the route.
func (f *Fleet) TravelDuration() time.Duration {
	return f.travel.Duration()
}

// Advance moves the fleet forward by delta.
func (f *Fleet) Advance(delta time.Duration) {
	f.travel.Advance(delta)
}

// Arrived reports whether the fleet has reached its destination.
func (f *Fleet) Arrived() bool {
	return f.travel.Done()
}

// Position returns the interpolated position for rendering. The
// interpolation eases in and out; arrival timing still follows the linear
// progress.
func (f *Fleet) Position() shared.Position {
	t := f.travel.Progress()
	eased := t * t * (3 - 2*t)
	return f.source.Position().Lerp(f.dest.Position(), eased)
}

// ResolveArrival applies the fleet against its destination exactly once:
// friendly destinations are reinforced, unclaimed destinations enter
// conquest, enemy destinations enter battle. A destination in an exclusive
// state that cannot accept the arrival rejects it silently; the returned
// error carries the conflict for diagnostic tracing only.
func (f *Fleet) ResolveArrival() (Resolution, error) {
	if f.resolved {
		return Resolution{Kind: ResolutionRejected}, shared.NewDomainError(
			fmt.Sprintf("fleet %s already resolved", f.id))
	}
	f.resolved = true

	switch f.dest.Owner() {
	case f.owner:
		accepted := f.dest.Reinforce(f.units)
		return Resolution{Kind: ResolutionReinforced, UnitsLost: f.units - accepted}, nil

	case shared.FactionUnclaimed:
		if err := f.dest.BeginConquest(f.owner); err != nil {
			return Resolution{Kind: ResolutionRejected}, err
		}
		return Resolution{Kind: ResolutionConquestBegun}, nil

	default:
		if err := f.dest.BeginBattle(f.owner, f.units); err != nil {
			return Resolution{Kind: ResolutionRejected}, err
		}
		return Resolution{Kind: ResolutionBattleBegun}, nil
	}
}

func (f *Fleet) String() string {
	return fmt.Sprintf("Fleet(id=%s, owner=%s, units=%d, %s → %s, %.0f%%)",
		f.id, f.owner, f.units, f.source.ID(), f.dest.ID(), f.Progress()*100)
}
