package config

// SetDefaults fills in any zero values with the default configuration.
// The defaults describe a ten-node skirmish that a decision engine can
// finish in a few simulated minutes.
func SetDefaults(cfg *Config) {
	if cfg.Simulation.MaxTickMs == 0 {
		cfg.Simulation.MaxTickMs = 250
	}
	if cfg.Simulation.FleetSpeed == 0 {
		cfg.Simulation.FleetSpeed = 120
	}
	if cfg.Simulation.NeutralConquestMs == 0 {
		cfg.Simulation.NeutralConquestMs = 3000
	}
	if cfg.Simulation.BattleMs == 0 {
		cfg.Simulation.BattleMs = 2000
	}
	if cfg.Simulation.ProductionBase == 0 {
		cfg.Simulation.ProductionBase = 0.5
	}
	if cfg.Simulation.ProductionPerCapacity == 0 {
		cfg.Simulation.ProductionPerCapacity = 0.05
	}

	if cfg.World.NodeCount == 0 {
		cfg.World.NodeCount = 10
	}
	if cfg.World.Width == 0 {
		cfg.World.Width = 1280
	}
	if cfg.World.Height == 0 {
		cfg.World.Height = 720
	}
	if cfg.World.EdgeMargin == 0 {
		cfg.World.EdgeMargin = 60
	}
	if cfg.World.MinDistance == 0 {
		cfg.World.MinDistance = 120
	}
	if cfg.World.MaxAttempts == 0 {
		cfg.World.MaxAttempts = 1000
	}
	if len(cfg.World.CapacityPool) == 0 {
		cfg.World.CapacityPool = []int{10, 15, 20, 25, 30, 40, 50}
	}
	if cfg.World.StartingUnits == 0 {
		cfg.World.StartingUnits = 10
	}

	if cfg.AI.CadenceMs == 0 {
		cfg.AI.CadenceMs = 2000
	}
	if cfg.AI.ThresholdDistance == 0 {
		cfg.AI.ThresholdDistance = 400
	}
	if cfg.AI.MinThreatScore == 0 {
		cfg.AI.MinThreatScore = 0.3
	}
	if cfg.AI.DefensiveUnitRatio == 0 {
		cfg.AI.DefensiveUnitRatio = 0.6
	}
	if cfg.AI.DefensiveThreatCount == 0 {
		cfg.AI.DefensiveThreatCount = 2
	}
	if cfg.AI.AggressiveUnitRatio == 0 {
		cfg.AI.AggressiveUnitRatio = 1.5
	}
	if cfg.AI.AggressiveProductionRatio == 0 {
		cfg.AI.AggressiveProductionRatio = 1.2
	}
	if cfg.AI.AttackMargin == 0 {
		cfg.AI.AttackMargin = 1.2
	}
	if cfg.AI.HistorySize == 0 {
		cfg.AI.HistorySize = 10
	}
	if cfg.AI.CooldownMs == 0 {
		cfg.AI.CooldownMs = 8000
	}
	if cfg.AI.ExplorationChance == 0 {
		cfg.AI.ExplorationChance = 0.1
	}

	if cfg.Runner.TickRate == 0 {
		cfg.Runner.TickRate = 30
	}
}
