package world

import (
	"math"
	"math/rand"

	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/pkg/utils"
)

// GenerationConfig controls world generation for a single reset.
type GenerationConfig struct {
	// NodeCount is the total number of nodes to place, including the two
	// faction starting nodes.
	NodeCount int

	// Width and Height bound the battlefield.
	Width  float64
	Height float64

	// EdgeMargin keeps nodes away from the battlefield edges.
	EdgeMargin float64

	// MinDistance is the minimum pairwise distance between nodes during
	// rejection sampling.
	MinDistance float64

	// MaxAttempts bounds the total rejection-sampling attempts before the
	// generator falls back to the deterministic grid layout.
	MaxAttempts int

	// CapacityPool holds the capacities assigned to generated nodes.
	// The pool is shuffled and recycled when it has fewer values than nodes.
	CapacityPool []int

	// StartingUnits is the garrison each faction's starting node begins with.
	StartingUnits int
}

// Generator places nodes for a new world.
//
// Placement failures are recovered, never surfaced: when rejection sampling
// exhausts its attempt budget the generator reports a ConfigurationError to
// the diagnostic sink and lays the nodes out on a deterministic grid instead.
type Generator struct {
	settings Settings
	sink     shared.TraceSink
}

// NewGenerator creates a world generator. A nil sink disables diagnostics.
func NewGenerator(settings Settings, sink shared.TraceSink) *Generator {
	if sink == nil {
		sink = shared.NopTraceSink()
	}
	return &Generator{settings: settings, sink: sink}
}

// Generate places cfg.NodeCount nodes, assigns capacities from the shuffled
// pool, and designates one starting node per faction. All remaining nodes
// start unclaimed with 0 units. The caller supplies the RNG so a fixed seed
// reproduces the same world.
func (g *Generator) Generate(cfg GenerationConfig, rng *rand.Rand) ([]*Node, error) {
	if cfg.NodeCount < 2 {
		return nil, shared.NewValidationError("node_count", "need at least one node per faction")
	}
	if len(cfg.CapacityPool) == 0 {
		return nil, shared.NewValidationError("capacity_pool", "cannot be empty")
	}
	if cfg.StartingUnits <= 0 {
		return nil, shared.NewValidationError("starting_units", "must be positive")
	}

	positions := g.samplePositions(cfg, rng)
	capacities := g.assignCapacities(cfg, rng)

	nodes := make([]*Node, 0, cfg.NodeCount)
	for i := 0; i < cfg.NodeCount; i++ {
		node, err := NewNode(positions[i], capacities[i], g.settings)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	g.designateStartingNodes(nodes, cfg.StartingUnits)
	return nodes, nil
}

// samplePositions places nodes via rejection sampling within the margins,
// falling back to the grid layout when the attempt budget runs out.
func (g *Generator) samplePositions(cfg GenerationConfig, rng *rand.Rand) []shared.Position {
	positions := make([]shared.Position, 0, cfg.NodeCount)
	attempts := 0

	for len(positions) < cfg.NodeCount {
		if attempts >= cfg.MaxAttempts {
			confErr := shared.NewConfigurationError("node placement attempt budget exhausted, using grid fallback")
			g.sink.Trace("world.placement_fallback", map[string]interface{}{
				"error":     confErr.Error(),
				"placed":    len(positions),
				"requested": cfg.NodeCount,
			})
			return g.gridPositions(cfg)
		}
		attempts++

		candidate := shared.Position{
			X: cfg.EdgeMargin + rng.Float64()*(cfg.Width-2*cfg.EdgeMargin),
			Y: cfg.EdgeMargin + rng.Float64()*(cfg.Height-2*cfg.EdgeMargin),
		}

		if g.tooClose(candidate, positions, cfg.MinDistance) {
			continue
		}
		positions = append(positions, candidate)
	}

	return positions
}

func (g *Generator) tooClose(candidate shared.Position, placed []shared.Position, minDistance float64) bool {
	for _, p := range placed {
		if candidate.DistanceTo(p) < minDistance {
			return true
		}
	}
	return false
}

// gridPositions lays nodes out on an evenly spaced grid inside the margins.
// The layout depends only on the config, so the fallback is deterministic.
func (g *Generator) gridPositions(cfg GenerationConfig) []shared.Position {
	cols := int(math.Ceil(math.Sqrt(float64(cfg.NodeCount))))
	rows := int(math.Ceil(float64(cfg.NodeCount) / float64(cols)))

	innerWidth := cfg.Width - 2*cfg.EdgeMargin
	innerHeight := cfg.Height - 2*cfg.EdgeMargin

	positions := make([]shared.Position, 0, cfg.NodeCount)
	for i := 0; i < cfg.NodeCount; i++ {
		col := i % cols
		row := i / cols
		positions = append(positions, shared.Position{
			X: cfg.EdgeMargin + innerWidth*(float64(col)+0.5)/float64(cols),
			Y: cfg.EdgeMargin + innerHeight*(float64(row)+0.5)/float64(rows),
		})
	}
	return positions
}

// assignCapacities shuffles the pool and recycles it when the pool has
// fewer distinct values than nodes.
func (g *Generator) assignCapacities(cfg GenerationConfig, rng *rand.Rand) []int {
	pool := make([]int, len(cfg.CapacityPool))
	copy(pool, cfg.CapacityPool)
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	capacities := make([]int, cfg.NodeCount)
	for i := range capacities {
		capacities[i] = pool[i%len(pool)]
	}
	return capacities
}

// designateStartingNodes hands the most distant node pair to the two
// factions so neither side starts boxed in.
func (g *Generator) designateStartingNodes(nodes []*Node, startingUnits int) {
	bestA, bestB := 0, 1
	bestDistance := -1.0
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if d := nodes[i].DistanceTo(nodes[j]); d > bestDistance {
				bestDistance = d
				bestA, bestB = i, j
			}
		}
	}

	claimStartingNode(nodes[bestA], shared.FactionA, startingUnits)
	claimStartingNode(nodes[bestB], shared.FactionB, startingUnits)
}

// claimStartingNode assigns initial ownership directly; starting nodes skip
// the conquest state machine.
func claimStartingNode(n *Node, faction shared.Faction, units int) {
	n.owner = faction
	n.units = utils.Min(units, n.capacity)
}
