package ai

// Strategy is the engine's current strategic posture.
type Strategy string

const (
	StrategyDefensive  Strategy = "DEFENSIVE"
	StrategyAggressive Strategy = "AGGRESSIVE"
	StrategyExpansion  Strategy = "EXPANSION"
	StrategyBalanced   Strategy = "BALANCED"
)

// StrategyThresholds are the tuning knobs for strategy selection.
type StrategyThresholds struct {
	// DefensiveUnitRatio: below this unit ratio we are heavily
	// outnumbered and fall back to defense.
	DefensiveUnitRatio float64

	// DefensiveThreatCount: this many simultaneous threats forces defense.
	DefensiveThreatCount int

	// AggressiveUnitRatio and AggressiveProductionRatio: both must hold
	// for the engine to press an advantage.
	AggressiveUnitRatio       float64
	AggressiveProductionRatio float64
}

// SelectStrategy picks the posture for this cycle.
//
// Defense dominates when heavily outnumbered or multiply threatened;
// aggression requires a strong lead while unclaimed nodes remain worth
// racing for; expansion fires whenever unclaimed nodes remain and nothing
// else does; balanced otherwise.
func SelectStrategy(view *View, threats []Threat, th StrategyThresholds) Strategy {
	if view.UnitRatio < th.DefensiveUnitRatio || len(threats) >= th.DefensiveThreatCount {
		return StrategyDefensive
	}
	if view.UnitRatio >= th.AggressiveUnitRatio &&
		view.ProductionRatio >= th.AggressiveProductionRatio &&
		len(view.Unclaimed) > 0 {
		return StrategyAggressive
	}
	if len(view.Unclaimed) > 0 {
		return StrategyExpansion
	}
	return StrategyBalanced
}

// scoreWeights blend the candidate scoring terms per strategy.
type scoreWeights struct {
	capacity   float64
	distance   float64
	efficiency float64
}

func weightsFor(strategy Strategy) scoreWeights {
	switch strategy {
	case StrategyDefensive:
		return scoreWeights{capacity: 0.2, distance: 0.5, efficiency: 0.3}
	case StrategyAggressive:
		return scoreWeights{capacity: 0.5, distance: 0.2, efficiency: 0.3}
	case StrategyExpansion:
		return scoreWeights{capacity: 0.4, distance: 0.4, efficiency: 0.2}
	default:
		return scoreWeights{capacity: 0.35, distance: 0.35, efficiency: 0.3}
	}
}
