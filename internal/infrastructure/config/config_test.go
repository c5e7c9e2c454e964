package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starhold-go/internal/infrastructure/config"
)

func TestSetDefaults_FillsZeroValues(t *testing.T) {
	cfg := &config.Config{}

	config.SetDefaults(cfg)

	assert.Equal(t, 250, cfg.Simulation.MaxTickMs)
	assert.Equal(t, 120.0, cfg.Simulation.FleetSpeed)
	assert.Equal(t, 3000, cfg.Simulation.NeutralConquestMs)
	assert.Equal(t, 2000, cfg.Simulation.BattleMs)
	assert.Equal(t, 10, cfg.World.NodeCount)
	assert.NotEmpty(t, cfg.World.CapacityPool)
	assert.Equal(t, 2000, cfg.AI.CadenceMs)
	assert.Equal(t, 30, cfg.Runner.TickRate)
}

func TestSetDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &config.Config{}
	cfg.World.NodeCount = 25
	cfg.Simulation.FleetSpeed = 300

	config.SetDefaults(cfg)

	assert.Equal(t, 25, cfg.World.NodeCount)
	assert.Equal(t, 300.0, cfg.Simulation.FleetSpeed)
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)

	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestValidateConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(cfg *config.Config)
	}{
		{"negative fleet speed", func(cfg *config.Config) { cfg.Simulation.FleetSpeed = -1 }},
		{"single-node world", func(cfg *config.Config) { cfg.World.NodeCount = 1 }},
		{"empty capacity pool", func(cfg *config.Config) { cfg.World.CapacityPool = []int{} }},
		{"non-positive capacity entry", func(cfg *config.Config) { cfg.World.CapacityPool = []int{10, 0} }},
		{"attack margin below one", func(cfg *config.Config) { cfg.AI.AttackMargin = 0.5 }},
		{"exploration chance above one", func(cfg *config.Config) { cfg.AI.ExplorationChance = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			config.SetDefaults(cfg)
			tt.mutate(cfg)

			assert.Error(t, config.ValidateConfig(cfg))
		})
	}
}

func TestLoadConfig_ReadsYAMLFile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
simulation:
  fleet_speed: 200
world:
  node_count: 14
  seed: 7
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert - file values win, defaults fill the rest
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.Simulation.FleetSpeed)
	assert.Equal(t, 14, cfg.World.NodeCount)
	assert.Equal(t, int64(7), cfg.World.Seed)
	assert.Equal(t, 250, cfg.Simulation.MaxTickMs)
}

func TestLoadConfig_RejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  node_count: 1\n"), 0644))

	_, err := config.LoadConfig(path)

	assert.Error(t, err)
}

func TestLoadConfigOrDefault_FallsBackOnError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  node_count: 1\n"), 0644))

	cfg := config.LoadConfigOrDefault(path)

	require.NotNil(t, cfg)
	assert.Equal(t, 10, cfg.World.NodeCount)
}

func TestLoadScenario_OverlaysOnlyStatedValues(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "skirmish.yaml")
	content := []byte(`
name: tight-skirmish
node_count: 8
min_distance: 90
seed: 1234
`)
	require.NoError(t, os.WriteFile(path, content, 0644))

	cfg := &config.Config{}
	config.SetDefaults(cfg)

	// Act
	sc, err := config.LoadScenario(path)
	require.NoError(t, err)
	sc.Apply(cfg)

	// Assert - stated values overlay, the rest keeps its defaults
	assert.Equal(t, "tight-skirmish", sc.Name)
	assert.Equal(t, 8, cfg.World.NodeCount)
	assert.Equal(t, 90.0, cfg.World.MinDistance)
	assert.Equal(t, int64(1234), cfg.World.Seed)
	assert.Equal(t, 1280.0, cfg.World.Width)
	assert.Equal(t, 10, cfg.World.StartingUnits)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := config.LoadScenario("/nonexistent/scenario.yaml")

	assert.Error(t, err)
}
