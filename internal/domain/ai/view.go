package ai

import (
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
)

// View is the decision engine's per-cycle snapshot of the battlefield,
// partitioned from the perspective of one faction.
type View struct {
	Faction shared.Faction

	Mine      []*world.Node
	Theirs    []*world.Node
	Unclaimed []*world.Node

	MyUnits    int
	TheirUnits int

	MyProduction    float64
	TheirProduction float64

	// UnitRatio and ProductionRatio compare us against the opponent with
	// the opponent denominator floored at 1 so an eliminated opponent
	// reads as overwhelming advantage rather than a division by zero.
	UnitRatio       float64
	ProductionRatio float64
}

// NewView partitions the nodes and computes the per-faction aggregates.
func NewView(nodes []*world.Node, faction shared.Faction) *View {
	v := &View{Faction: faction}

	for _, n := range nodes {
		switch n.Owner() {
		case faction:
			v.Mine = append(v.Mine, n)
			v.MyUnits += n.Units()
			v.MyProduction += n.ProductionRate()
		case shared.FactionUnclaimed:
			v.Unclaimed = append(v.Unclaimed, n)
		default:
			v.Theirs = append(v.Theirs, n)
			v.TheirUnits += n.Units()
			v.TheirProduction += n.ProductionRate()
		}
	}

	v.UnitRatio = float64(v.MyUnits) / floorAtOne(float64(v.TheirUnits))
	v.ProductionRatio = v.MyProduction / floorAtOne(v.TheirProduction)
	return v
}

// MaxCapacity returns the largest node capacity on the battlefield,
// used to normalize capacity scores.
func (v *View) MaxCapacity() int {
	max := 1
	for _, group := range [][]*world.Node{v.Mine, v.Theirs, v.Unclaimed} {
		for _, n := range group {
			if n.Capacity() > max {
				max = n.Capacity()
			}
		}
	}
	return max
}

func floorAtOne(x float64) float64 {
	if x < 1 {
		return 1
	}
	return x
}
