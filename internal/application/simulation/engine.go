package simulation

import (
	"math/rand"
	"time"

	"github.com/andrescamacho/starhold-go/internal/domain/ai"
	"github.com/andrescamacho/starhold-go/internal/domain/fleet"
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
	"github.com/andrescamacho/starhold-go/internal/domain/world"
	"github.com/andrescamacho/starhold-go/pkg/utils"
)

// Config assembles everything a simulation run needs.
type Config struct {
	// MaxTickDelta clamps the per-tick delta so a stalled or backgrounded
	// host cannot produce runaway steps.
	MaxTickDelta time.Duration

	// FleetSpeed is the transit speed in battlefield units per second.
	FleetSpeed float64

	// Seed drives world generation and the engine's exploration sampling.
	Seed int64

	Nodes      world.Settings
	Generation world.GenerationConfig
	AI         ai.Config
}

// TransferCommand is a validated intent to move units between two nodes.
// Units <= 0 requests everything available above the garrison. The garrison
// policy is the caller's: the engine always keeps one unit back, a player
// may keep none.
type TransferCommand struct {
	SourceID string
	DestID   string
	Faction  shared.Faction
	Units    int
	Garrison int
}

// TransferResult reports whether a transfer was accepted and how many
// units actually departed. Rejections never panic and carry a reason for
// diagnostics only; user-facing messaging is the presentation layer's job.
type TransferResult struct {
	Accepted  bool
	UnitsSent int
	FleetID   string
	Reason    string
}

// Simulation composes the node state machines, fleets in transit and
// decision engines behind the surface the presentation layer consumes:
// IssueTransfer, Tick, Snapshot, Reset.
//
// The simulation is single-threaded and cooperative: all mutation happens
// synchronously within one Tick in fixed order (nodes, then fleets, then
// engines, then stats), so there are no intra-tick races. It performs no
// I/O and never blocks.
type Simulation struct {
	cfg  Config
	rng  *rand.Rand
	sink shared.TraceSink

	nodes     []*world.Node
	nodeIndex map[string]*world.Node
	fleets    []*fleet.Fleet
	engines   []*ai.Engine

	phase   Phase
	paused  bool
	stats   Stats
	summary *Summary
}

// New creates an idle simulation. Reset must be called before ticking.
// A nil sink disables diagnostics.
func New(sink shared.TraceSink) *Simulation {
	if sink == nil {
		sink = shared.NopTraceSink()
	}
	return &Simulation{
		phase: PhaseIdle,
		sink:  sink,
	}
}

// Reset reinitializes the world from cfg: regenerates nodes, clears all
// fleets, reseeds the RNG and attaches a decision engine for FactionB.
// Placement failure inside generation is recovered via the deterministic
// grid fallback and never surfaces here; only invalid configuration errors
// do.
func (s *Simulation) Reset(cfg Config) error {
	rng := rand.New(rand.NewSource(cfg.Seed))

	generator := world.NewGenerator(cfg.Nodes, s.sink)
	nodes, err := generator.Generate(cfg.Generation, rng)
	if err != nil {
		return err
	}

	engine, err := ai.NewEngine(shared.FactionB, cfg.AI, rng)
	if err != nil {
		return err
	}

	s.cfg = cfg
	s.rng = rng
	s.nodes = nodes
	s.nodeIndex = make(map[string]*world.Node, len(nodes))
	for _, n := range nodes {
		s.nodeIndex[n.ID()] = n
	}
	s.fleets = nil
	s.engines = []*ai.Engine{engine}
	s.phase = PhasePlaying
	s.paused = false
	s.stats = Stats{}
	s.summary = nil
	s.recomputeStandings()
	return nil
}

// EnableAutopilot attaches a decision engine for an additional faction,
// letting a headless run pit two engines against each other. FactionB is
// always engine-driven after Reset.
func (s *Simulation) EnableAutopilot(faction shared.Faction) error {
	if s.phase == PhaseIdle {
		return shared.NewDomainError("simulation not initialized")
	}
	for _, e := range s.engines {
		if e.Faction() == faction {
			return nil
		}
	}
	engine, err := ai.NewEngine(faction, s.cfg.AI, s.rng)
	if err != nil {
		return err
	}
	s.engines = append(s.engines, engine)
	return nil
}

// Pause suspends ticking; Resume lifts it. Both are checked at tick start.
func (s *Simulation) Pause()       { s.paused = true }
func (s *Simulation) Resume()      { s.paused = false }
func (s *Simulation) Paused() bool { return s.paused }

// Phase returns the current lifecycle phase.
func (s *Simulation) Phase() Phase {
	return s.phase
}

// Summary returns the terminal report, nil while the simulation runs.
func (s *Simulation) Summary() *Summary {
	return s.summary
}

// IssueTransfer validates a transfer intent and launches a fleet on
// success. Invalid transfers are rejected as a result, never a panic:
// unowned source, insufficient units and non-positive computed counts all
// come back with Accepted=false and no fleet created.
func (s *Simulation) IssueTransfer(cmd TransferCommand) TransferResult {
	if s.phase != PhasePlaying {
		return s.reject(cmd, "simulation is not running")
	}

	source, ok := s.nodeIndex[cmd.SourceID]
	if !ok {
		return s.reject(cmd, "unknown source node")
	}
	dest, ok := s.nodeIndex[cmd.DestID]
	if !ok {
		return s.reject(cmd, "unknown destination node")
	}
	if source == dest {
		return s.reject(cmd, "source and destination must differ")
	}
	if !cmd.Faction.IsPlayable() {
		return s.reject(cmd, "faction must be playable")
	}
	if source.Owner() != cmd.Faction {
		return s.reject(cmd, "source not owned by requesting faction")
	}

	garrison := utils.Max(cmd.Garrison, 0)
	available := source.Units() - garrison
	requested := cmd.Units
	if requested <= 0 {
		requested = available
	}
	units := utils.Min(requested, available)
	if units < 1 {
		return s.reject(cmd, "no units available above garrison")
	}

	withdrawn := source.Withdraw(units)
	f, err := fleet.NewFleet(source, dest, cmd.Faction, withdrawn, s.cfg.FleetSpeed)
	if err != nil {
		// Give the units back rather than leak them; creation only fails
		// on validation the checks above already cover.
		source.Reinforce(withdrawn)
		return s.reject(cmd, err.Error())
	}

	s.fleets = append(s.fleets, f)
	if fs := s.stats.ForFaction(cmd.Faction); fs != nil {
		fs.FleetsLaunched++
	}
	return TransferResult{Accepted: true, UnitsSent: withdrawn, FleetID: f.ID()}
}

func (s *Simulation) reject(cmd TransferCommand, reason string) TransferResult {
	err := shared.NewInvalidTransferError(cmd.SourceID, cmd.DestID, reason)
	s.sink.Trace("transfer.rejected", map[string]interface{}{
		"error":   err.Error(),
		"faction": string(cmd.Faction),
	})
	return TransferResult{Accepted: false, Reason: reason}
}

// Tick advances the simulation one step: nodes, then fleets, then decision
// engines, then aggregate stats and termination. Delta is clamped to the
// configured maximum to bound catch-up jumps after a stall.
func (s *Simulation) Tick(delta time.Duration) {
	if s.phase != PhasePlaying || s.paused {
		return
	}
	if s.cfg.MaxTickDelta > 0 && delta > s.cfg.MaxTickDelta {
		delta = s.cfg.MaxTickDelta
	}
	if delta <= 0 {
		return
	}

	s.tickNodes(delta)
	s.tickFleets(delta)
	s.tickEngines(delta)

	s.stats.Elapsed += delta
	s.recomputeStandings()
	s.evaluateTermination()
}

func (s *Simulation) tickNodes(delta time.Duration) {
	for _, n := range s.nodes {
		produced, transition := n.Tick(delta)
		if produced > 0 {
			if fs := s.stats.ForFaction(n.Owner()); fs != nil {
				fs.UnitsProduced += produced
			}
		}
		if transition == nil {
			continue
		}
		switch transition.Kind {
		case world.TransitionConquered:
			if fs := s.stats.ForFaction(transition.Faction); fs != nil {
				fs.NodesConquered++
			}
		case world.TransitionBattleWon:
			if fs := s.stats.ForFaction(transition.Faction); fs != nil {
				fs.NodesConquered++
				fs.BattlesWon++
			}
		case world.TransitionBattleHeld:
			if fs := s.stats.ForFaction(transition.Faction); fs != nil {
				fs.BattlesWon++
			}
		}
	}
}

// tickFleets advances transit and resolves arrivals. Iteration runs in
// reverse for safe in-place removal; two fleets reaching the same node in
// one tick resolve sequentially, the second seeing the result of the first.
func (s *Simulation) tickFleets(delta time.Duration) {
	for i := len(s.fleets) - 1; i >= 0; i-- {
		f := s.fleets[i]
		f.Advance(delta)
		if !f.Arrived() {
			continue
		}

		if _, err := f.ResolveArrival(); err != nil {
			s.sink.Trace("fleet.arrival_conflict", map[string]interface{}{
				"fleet": f.ID(),
				"error": err.Error(),
			})
		}
		s.fleets = append(s.fleets[:i], s.fleets[i+1:]...)
	}
}

func (s *Simulation) tickEngines(delta time.Duration) {
	for _, engine := range s.engines {
		order := engine.Advance(delta, s.nodes)
		if order == nil {
			continue
		}
		s.IssueTransfer(TransferCommand{
			SourceID: order.SourceID,
			DestID:   order.DestID,
			Faction:  engine.Faction(),
			Units:    order.Units,
			Garrison: 1,
		})
	}
}

// recomputeStandings refreshes node and unit counts from scratch; units in
// transit count toward their owner.
func (s *Simulation) recomputeStandings() {
	s.stats.FactionA.Nodes, s.stats.FactionA.Units = 0, 0
	s.stats.FactionB.Nodes, s.stats.FactionB.Units = 0, 0

	for _, n := range s.nodes {
		if fs := s.stats.ForFaction(n.Owner()); fs != nil {
			fs.Nodes++
			fs.Units += n.Units()
		}
	}
	for _, f := range s.fleets {
		if fs := s.stats.ForFaction(f.Owner()); fs != nil {
			fs.Units += f.Units()
		}
	}
}

// evaluateTermination ends the run when a faction holds no nodes. Draws
// are not modeled; ownership never reverts to unclaimed, so at most one
// faction can reach zero.
func (s *Simulation) evaluateTermination() {
	switch {
	case s.stats.FactionA.Nodes == 0:
		s.terminate(shared.FactionB, PhaseFactionBWin)
	case s.stats.FactionB.Nodes == 0:
		s.terminate(shared.FactionA, PhaseFactionAWin)
	}
}

func (s *Simulation) terminate(winner shared.Faction, phase Phase) {
	s.phase = phase
	s.summary = newSummary(winner, s.stats)
	s.sink.Trace("simulation.terminated", map[string]interface{}{
		"winner":  string(winner),
		"elapsed": s.stats.Elapsed.String(),
	})
}

// Snapshot builds the read-only state for rendering.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Nodes:  make([]NodeView, 0, len(s.nodes)),
		Fleets: make([]FleetView, 0, len(s.fleets)),
		Stats:  s.stats,
		Phase:  s.phase,
	}

	for _, n := range s.nodes {
		snap.Nodes = append(snap.Nodes, NodeView{
			ID:             n.ID(),
			Position:       n.Position(),
			Capacity:       n.Capacity(),
			Units:          n.Units(),
			Owner:          n.Owner(),
			State:          n.State(),
			StateProgress:  n.StateProgress(),
			Conqueror:      n.Conqueror(),
			Attacker:       n.Attacker(),
			AttackingUnits: n.AttackingUnits(),
		})
	}
	for _, f := range s.fleets {
		snap.Fleets = append(snap.Fleets, FleetView{
			ID:       f.ID(),
			Owner:    f.Owner(),
			Units:    f.Units(),
			SourceID: f.Source().ID(),
			DestID:   f.Destination().ID(),
			Position: f.Position(),
			Progress: f.Progress(),
		})
	}
	return snap
}

// Nodes exposes the live node set for in-process collaborators such as a
// player controller; renderers should prefer Snapshot.
func (s *Simulation) Nodes() []*world.Node {
	return s.nodes
}
