package config

// SimulationConfig tunes the simulation core.
type SimulationConfig struct {
	// MaxTickMs clamps a single tick delta (bounds catch-up after a stall).
	MaxTickMs int `mapstructure:"max_tick_ms" validate:"gt=0"`

	// FleetSpeed is the transit speed in battlefield units per second.
	FleetSpeed float64 `mapstructure:"fleet_speed" validate:"gt=0"`

	// NeutralConquestMs is the unopposed conquest duration for an
	// unclaimed node.
	NeutralConquestMs int `mapstructure:"neutral_conquest_ms" validate:"gt=0"`

	// BattleMs is the battle duration over an owned node.
	BattleMs int `mapstructure:"battle_ms" validate:"gt=0"`

	// ProductionBase is the units/second produced by a zero-capacity node.
	ProductionBase float64 `mapstructure:"production_base" validate:"gte=0"`

	// ProductionPerCapacity is the extra units/second per capacity point.
	ProductionPerCapacity float64 `mapstructure:"production_per_capacity" validate:"gte=0"`
}

// WorldConfig tunes world generation.
type WorldConfig struct {
	NodeCount     int     `mapstructure:"node_count" validate:"gte=2"`
	Width         float64 `mapstructure:"width" validate:"gt=0"`
	Height        float64 `mapstructure:"height" validate:"gt=0"`
	EdgeMargin    float64 `mapstructure:"edge_margin" validate:"gte=0"`
	MinDistance   float64 `mapstructure:"min_distance" validate:"gt=0"`
	MaxAttempts   int     `mapstructure:"max_attempts" validate:"gt=0"`
	CapacityPool  []int   `mapstructure:"capacity_pool" validate:"min=1,dive,gt=0"`
	StartingUnits int     `mapstructure:"starting_units" validate:"gt=0"`
	Seed          int64   `mapstructure:"seed"`
}

// AIConfig tunes the decision engine.
type AIConfig struct {
	// CadenceMs decouples strategic evaluation from the tick rate.
	CadenceMs int `mapstructure:"cadence_ms" validate:"gt=0"`

	// ThresholdDistance normalizes distance terms in threat assessment
	// and candidate scoring.
	ThresholdDistance float64 `mapstructure:"threshold_distance" validate:"gt=0"`

	// MinThreatScore drops negligible threats.
	MinThreatScore float64 `mapstructure:"min_threat_score" validate:"gte=0"`

	DefensiveUnitRatio        float64 `mapstructure:"defensive_unit_ratio" validate:"gt=0"`
	DefensiveThreatCount      int     `mapstructure:"defensive_threat_count" validate:"gt=0"`
	AggressiveUnitRatio       float64 `mapstructure:"aggressive_unit_ratio" validate:"gt=0"`
	AggressiveProductionRatio float64 `mapstructure:"aggressive_production_ratio" validate:"gt=0"`

	// AttackMargin sizes attacks: required = defenders×margin + 1.
	AttackMargin float64 `mapstructure:"attack_margin" validate:"gte=1"`

	HistorySize int `mapstructure:"history_size" validate:"gt=0"`
	CooldownMs  int `mapstructure:"cooldown_ms" validate:"gte=0"`

	// ExplorationChance is the probability of sampling from the top
	// candidates instead of taking the best one.
	ExplorationChance float64 `mapstructure:"exploration_chance" validate:"gte=0,lte=1"`
}

// RunnerConfig tunes the headless runner binary, not the core.
type RunnerConfig struct {
	// TickRate is the external tick frequency in ticks per second.
	TickRate int `mapstructure:"tick_rate" validate:"gt=0"`

	// MaxDurationMs stops a headless run that never terminates on its
	// own. 0 disables the limit.
	MaxDurationMs int `mapstructure:"max_duration_ms" validate:"gte=0"`

	// MetricsAddr serves Prometheus metrics when non-empty.
	MetricsAddr string `mapstructure:"metrics_addr"`
}
