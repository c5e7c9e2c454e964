package ai

import (
	"sort"

	"github.com/andrescamacho/starhold-go/internal/domain/world"
	"github.com/andrescamacho/starhold-go/pkg/utils"
)

// Threat scores how dangerous one enemy node is to our closest holding.
type Threat struct {
	Source *world.Node // the threatening enemy node
	Target *world.Node // our node nearest to it
	Score  float64
}

// ThreatAssessor scores enemy nodes against the faction's holdings.
//
// Per enemy node, the threat against the nearest owned node is a weighted
// blend of unit advantage, proximity and capacity advantage:
//
//	0.5×(units/max(defUnits,1)) + 0.3×max(0, 1−distance/threshold) + 0.2×(capacity/max(defCapacity,1))
//
// Scores below the minimum are dropped; the rest are returned sorted
// descending.
type ThreatAssessor struct {
	thresholdDistance float64
	minScore          float64
}

// NewThreatAssessor creates a threat assessor.
func NewThreatAssessor(thresholdDistance, minScore float64) *ThreatAssessor {
	return &ThreatAssessor{
		thresholdDistance: thresholdDistance,
		minScore:          minScore,
	}
}

// Assess evaluates every enemy node in the view.
func (a *ThreatAssessor) Assess(view *View) []Threat {
	if len(view.Mine) == 0 {
		return nil
	}

	threats := make([]Threat, 0, len(view.Theirs))
	for _, enemy := range view.Theirs {
		target, distance := a.nearestHolding(enemy, view.Mine)

		unitPressure := float64(enemy.Units()) / floorAtOne(float64(target.Units()))
		proximity := utils.ClampFloat(1-distance/a.thresholdDistance, 0, 1)
		capacityPressure := float64(enemy.Capacity()) / floorAtOne(float64(target.Capacity()))

		score := 0.5*unitPressure + 0.3*proximity + 0.2*capacityPressure
		if score < a.minScore {
			continue
		}
		threats = append(threats, Threat{Source: enemy, Target: target, Score: score})
	}

	sort.Slice(threats, func(i, j int) bool {
		return threats[i].Score > threats[j].Score
	})
	return threats
}

func (a *ThreatAssessor) nearestHolding(enemy *world.Node, mine []*world.Node) (*world.Node, float64) {
	nearest := mine[0]
	minDistance := enemy.DistanceTo(mine[0])
	for _, n := range mine[1:] {
		if d := enemy.DistanceTo(n); d < minDistance {
			minDistance = d
			nearest = n
		}
	}
	return nearest, minDistance
}
