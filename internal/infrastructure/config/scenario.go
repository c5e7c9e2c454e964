package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is a named world setup loadable from a YAML file. Zero values
// leave the corresponding configuration defaults untouched, so a scenario
// only needs to state what it changes.
type Scenario struct {
	Name          string  `yaml:"name"`
	NodeCount     int     `yaml:"node_count"`
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	EdgeMargin    float64 `yaml:"edge_margin"`
	MinDistance   float64 `yaml:"min_distance"`
	CapacityPool  []int   `yaml:"capacity_pool"`
	StartingUnits int     `yaml:"starting_units"`
	Seed          int64   `yaml:"seed"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file: %w", err)
	}
	return &sc, nil
}

// Apply overlays the scenario's non-zero values onto the world config.
func (sc *Scenario) Apply(cfg *Config) {
	if sc.NodeCount != 0 {
		cfg.World.NodeCount = sc.NodeCount
	}
	if sc.Width != 0 {
		cfg.World.Width = sc.Width
	}
	if sc.Height != 0 {
		cfg.World.Height = sc.Height
	}
	if sc.EdgeMargin != 0 {
		cfg.World.EdgeMargin = sc.EdgeMargin
	}
	if sc.MinDistance != 0 {
		cfg.World.MinDistance = sc.MinDistance
	}
	if len(sc.CapacityPool) != 0 {
		cfg.World.CapacityPool = sc.CapacityPool
	}
	if sc.StartingUnits != 0 {
		cfg.World.StartingUnits = sc.StartingUnits
	}
	if sc.Seed != 0 {
		cfg.World.Seed = sc.Seed
	}
}
