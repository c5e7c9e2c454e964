package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starhold-go/internal/application/simulation"
	"github.com/andrescamacho/starhold-go/internal/domain/shared"
)

// SimulationMetricsCollector mirrors the simulation's aggregate stats as
// Prometheus metrics. Counters advance by the delta between successive
// observed snapshots, so Observe can be called at any cadence.
type SimulationMetricsCollector struct {
	nodesOwned *prometheus.GaugeVec
	unitsTotal *prometheus.GaugeVec

	fleetsLaunched *prometheus.CounterVec
	unitsProduced  *prometheus.CounterVec
	nodesConquered *prometheus.CounterVec
	battlesWon     *prometheus.CounterVec

	prev map[shared.Faction]simulation.FactionStats
}

// NewSimulationMetricsCollector creates the collector with all metrics.
func NewSimulationMetricsCollector() *SimulationMetricsCollector {
	return &SimulationMetricsCollector{
		nodesOwned: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes_owned",
				Help:      "Current node count per faction",
			},
			[]string{"faction"},
		),
		unitsTotal: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_total",
				Help:      "Current unit count per faction, garrisoned plus in transit",
			},
			[]string{"faction"},
		),
		fleetsLaunched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fleets_launched_total",
				Help:      "Total fleets launched per faction",
			},
			[]string{"faction"},
		),
		unitsProduced: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "units_produced_total",
				Help:      "Total units produced per faction",
			},
			[]string{"faction"},
		),
		nodesConquered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "nodes_conquered_total",
				Help:      "Total nodes taken per faction, by conquest or battle",
			},
			[]string{"faction"},
		),
		battlesWon: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "battles_won_total",
				Help:      "Total battles resolved in the faction's favor",
			},
			[]string{"faction"},
		),
		prev: make(map[shared.Faction]simulation.FactionStats),
	}
}

// Register registers all metrics with the given registry.
func (c *SimulationMetricsCollector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.nodesOwned,
		c.unitsTotal,
		c.fleetsLaunched,
		c.unitsProduced,
		c.nodesConquered,
		c.battlesWon,
	}
	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// Observe updates all metrics from a snapshot.
func (c *SimulationMetricsCollector) Observe(snap simulation.Snapshot) {
	c.observeFaction(shared.FactionA, snap.Stats.FactionA)
	c.observeFaction(shared.FactionB, snap.Stats.FactionB)
}

func (c *SimulationMetricsCollector) observeFaction(f shared.Faction, stats simulation.FactionStats) {
	label := prometheus.Labels{"faction": string(f)}

	c.nodesOwned.With(label).Set(float64(stats.Nodes))
	c.unitsTotal.With(label).Set(float64(stats.Units))

	prev := c.prev[f]
	c.fleetsLaunched.With(label).Add(nonNegativeDelta(stats.FleetsLaunched, prev.FleetsLaunched))
	c.unitsProduced.With(label).Add(nonNegativeDelta(stats.UnitsProduced, prev.UnitsProduced))
	c.nodesConquered.With(label).Add(nonNegativeDelta(stats.NodesConquered, prev.NodesConquered))
	c.battlesWon.With(label).Add(nonNegativeDelta(stats.BattlesWon, prev.BattlesWon))
	c.prev[f] = stats
}

// nonNegativeDelta guards against counter regression after a Reset.
func nonNegativeDelta(current, previous int) float64 {
	if current < previous {
		return float64(current)
	}
	return float64(current - previous)
}
