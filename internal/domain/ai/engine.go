package ai

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
	"github.com/andrescamacho/starhold-go/pkg/utils"
)

// topCandidateFraction is the slice of best candidates sampled from when
// the engine explores instead of exploiting.
const topCandidateFraction = 0.3

// Config holds the decision engine tuning values.
type Config struct {
	// Cadence decouples strategic evaluation from the tick rate.
	Cadence time.Duration

	// ThresholdDistance normalizes proximity terms in threat assessment
	// and candidate scoring.
	ThresholdDistance float64

	// MinThreatScore drops negligible threats from assessment.
	MinThreatScore float64

	Thresholds StrategyThresholds

	// AttackMargin is the multiplier applied to defending units when
	// sizing an attack (required = defenders×margin + 1).
	AttackMargin float64

	// HistorySize bounds the recent-decision history.
	HistorySize int

	// DecisionCooldown is the window within which repeating an equivalent
	// (source, destination) transfer halves its score.
	DecisionCooldown time.Duration

	// ExplorationChance is the probability of sampling uniformly from the
	// top candidates instead of taking the best one.
	ExplorationChance float64
}

// TransferOrder is the engine's output: identical in shape to a
// player-issued transfer command.
type TransferOrder struct {
	SourceID string
	DestID   string
	Units    int
}

// decision records an executed transfer for repetition dampening.
type decision struct {
	sourceID string
	destID   string
	at       time.Duration
}

// candidate pairs an owned source with a non-owned target.
type candidate struct {
	source *world.Node
	target *world.Node
	units  int
	score  float64
}

// Engine is the periodic strategic evaluator driving one faction.
//
// It runs on its own cadence: Advance is called every tick, but the
// battlefield is only evaluated when the cadence countdown elapses. Each
// cycle snapshots the battlefield, assesses threats, selects a posture,
// scores every candidate transfer and emits at most one order.
type Engine struct {
	faction  shared.Faction
	cfg      Config
	assessor *ThreatAssessor
	cadence  *shared.Countdown
	rng      *rand.Rand

	elapsed  time.Duration
	strategy Strategy
	history  []decision
}

// NewEngine creates a decision engine for the given faction.
func NewEngine(faction shared.Faction, cfg Config, rng *rand.Rand) (*Engine, error) {
	if !faction.IsPlayable() {
		return nil, shared.NewValidationError("faction", "engine faction must be playable")
	}
	if cfg.Cadence <= 0 {
		return nil, shared.NewValidationError("cadence", "must be positive")
	}
	if rng == nil {
		return nil, shared.NewValidationError("rng", "is required")
	}

	return &Engine{
		faction:  faction,
		cfg:      cfg,
		assessor: NewThreatAssessor(cfg.ThresholdDistance, cfg.MinThreatScore),
		cadence:  shared.NewCountdown(cfg.Cadence),
		rng:      rng,
		strategy: StrategyBalanced,
	}, nil
}

func (e *Engine) Faction() shared.Faction {
	return e.faction
}

// Strategy returns the posture chosen by the most recent cycle.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Advance moves the engine's cadence forward and, when a cycle is due,
// evaluates the battlefield. Returns the chosen transfer order, or nil
// when no cycle is due or no valid candidate exists.
func (e *Engine) Advance(delta time.Duration, nodes []*world.Node) *TransferOrder {
	e.elapsed += delta
	e.cadence.Advance(delta)
	if !e.cadence.Done() {
		return nil
	}
	e.cadence.Reset(e.cfg.Cadence)

	return e.evaluate(nodes)
}

func (e *Engine) evaluate(nodes []*world.Node) *TransferOrder {
	view := NewView(nodes, e.faction)
	if len(view.Mine) == 0 {
		return nil
	}

	threats := e.assessor.Assess(view)
	e.strategy = SelectStrategy(view, threats, e.cfg.Thresholds)

	candidates := e.generateCandidates(view)
	if len(candidates) == 0 {
		return nil
	}
	e.scoreCandidates(candidates, view)

	chosen := e.selectCandidate(candidates)
	e.recordDecision(chosen)

	return &TransferOrder{
		SourceID: chosen.source.ID(),
		DestID:   chosen.target.ID(),
		Units:    chosen.units,
	}
}

// generateCandidates pairs every owned node holding more than one unit
// with every non-owned node. A garrison of one unit is always kept back.
func (e *Engine) generateCandidates(view *View) []*candidate {
	var candidates []*candidate

	targets := make([]*world.Node, 0, len(view.Theirs)+len(view.Unclaimed))
	targets = append(targets, view.Unclaimed...)
	targets = append(targets, view.Theirs...)

	for _, source := range view.Mine {
		if source.Units() <= 1 {
			continue
		}
		available := source.Units() - 1

		for _, target := range targets {
			// A conquest we already started only needs time, not units.
			if target.State() == world.NodeStateConquering && target.Conqueror() == e.faction {
				continue
			}

			required := 1
			if target.Owner() != shared.FactionUnclaimed {
				required = int(float64(target.Units())*e.cfg.AttackMargin) + 1
			}

			units := utils.Min(required, available)
			if units < 1 {
				continue
			}
			candidates = append(candidates, &candidate{source: source, target: target, units: units})
		}
	}
	return candidates
}

// scoreCandidates applies the strategy-weighted blend of target value,
// distance penalty and ship efficiency, multiplied by the estimated
// success probability, with repetition dampening.
func (e *Engine) scoreCandidates(candidates []*candidate, view *View) {
	weights := weightsFor(e.strategy)
	maxCapacity := float64(view.MaxCapacity())

	for _, c := range candidates {
		capacityScore := float64(c.target.Capacity()) / maxCapacity

		distance := c.source.DistanceTo(c.target)
		distanceScore := utils.ClampFloat(1-distance/e.cfg.ThresholdDistance, 0, 1)

		efficiency := float64(c.target.Capacity()) / float64(c.units)
		efficiencyScore := efficiency / (efficiency + 1)

		score := weights.capacity*capacityScore +
			weights.distance*distanceScore +
			weights.efficiency*efficiencyScore
		score *= successProbability(c.units, c.target.Units())

		if e.isRecentDecision(c.source.ID(), c.target.ID()) {
			score *= 0.5
		}
		c.score = score
	}
}

// successProbability is a step function of the sent/defending ratio, with
// the defender floored at 1.
func successProbability(sent, defending int) float64 {
	ratio := float64(sent) / floorAtOne(float64(defending))
	switch {
	case ratio >= 2.0:
		return 0.9
	case ratio >= 1.5:
		return 0.8
	case ratio >= 1.2:
		return 0.6
	case ratio >= 1.0:
		return 0.4
	default:
		return 0.2
	}
}

// selectCandidate takes the top-scored candidate, or with a small
// configured probability samples uniformly from the best 30% to keep the
// engine from playing deterministically.
func (e *Engine) selectCandidate(candidates []*candidate) *candidate {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if e.rng.Float64() < e.cfg.ExplorationChance {
		top := int(math.Ceil(float64(len(candidates)) * topCandidateFraction))
		if top < 1 {
			top = 1
		}
		return candidates[e.rng.Intn(top)]
	}
	return candidates[0]
}

func (e *Engine) isRecentDecision(sourceID, destID string) bool {
	for _, d := range e.history {
		if d.sourceID == sourceID && d.destID == destID &&
			e.elapsed-d.at < e.cfg.DecisionCooldown {
			return true
		}
	}
	return false
}

// recordDecision appends to the bounded history, dropping the oldest entry
// when full.
func (e *Engine) recordDecision(c *candidate) {
	e.history = append(e.history, decision{
		sourceID: c.source.ID(),
		destID:   c.target.ID(),
		at:       e.elapsed,
	})
	if e.cfg.HistorySize > 0 && len(e.history) > e.cfg.HistorySize {
		e.history = e.history[len(e.history)-e.cfg.HistorySize:]
	}
}
