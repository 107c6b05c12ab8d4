package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reset() {
	cfg = nil
	v = nil
}

func TestInit(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "config.yaml")

	configContent := `
rules:
  recruit_rate: 3
  general_capture_scale: 1.0
simulation:
  max_turns: 500
viewer:
  turn_interval_ms: 100
export:
  compression_level: fastest
`
	require.NoError(t, os.WriteFile(configFile, []byte(configContent), 0644))

	reset()
	require.NoError(t, Init(configFile))

	c := Get()
	assert.Equal(t, 3, c.Rules.RecruitRate)
	assert.Equal(t, 1.0, c.Rules.GeneralCaptureScale)
	assert.Equal(t, 50, c.Rules.FarmRate, "unset keys keep defaults")
	assert.Equal(t, 500, c.Simulation.MaxTurns)
	assert.Equal(t, 100, c.Viewer.TurnIntervalMs)
	assert.Equal(t, "fastest", c.Export.CompressionLevel)
	assert.Equal(t, configFile, ConfigFilePath())
}

func TestInitWithDefaults(t *testing.T) {
	reset()
	require.NoError(t, Init("/non/existent/path/config.yaml"))

	c := Get()
	assert.Equal(t, 2, c.Rules.RecruitRate)
	assert.Equal(t, 50, c.Rules.FarmRate)
	assert.Equal(t, 40, c.Rules.MinCityArmy)
	assert.Equal(t, 0.5, c.Rules.GeneralCaptureScale)
	assert.Equal(t, 6, c.Rules.LegacyCityRegenVersion)
	assert.Equal(t, 2000, c.Simulation.MaxTurns)
	assert.Equal(t, "info", c.Logging.Level)
	assert.Equal(t, "console", c.Logging.Format)
	assert.Equal(t, 250, c.Viewer.TurnIntervalMs)
	assert.False(t, c.Viewer.ShowCoordinates)
	assert.Equal(t, "better", c.Export.CompressionLevel)
	assert.Equal(t, 2, c.Generator.Players)
}

func TestInitRejectsInvalidFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("simulation:\n  max_turns: 0\n"), 0644))

	reset()
	err := Init(configFile)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulation.max_turns")
}

func TestEnvironmentVariables(t *testing.T) {
	reset()
	t.Setenv("GRR_RULES_FARM_RATE", "25")
	t.Setenv("GRR_SIMULATION_MAX_TURNS", "900")

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, 25, c.Rules.FarmRate)
	assert.Equal(t, 900, c.Simulation.MaxTurns)
}

func TestSet(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("rules.min_city_army", 30)
	Set("viewer.show_coordinates", true)

	c := Get()
	assert.Equal(t, 30, c.Rules.MinCityArmy)
	assert.True(t, c.Viewer.ShowCoordinates)
}

func TestGetHelpers(t *testing.T) {
	reset()
	require.NoError(t, Init(""))

	Set("test.string", "hello")
	Set("test.int", 42)
	Set("test.bool", true)
	Set("test.float", 3.14)

	assert.Equal(t, "hello", GetString("test.string"))
	assert.Equal(t, 42, GetInt("test.int"))
	assert.Equal(t, true, GetBool("test.bool"))
	assert.Equal(t, 3.14, GetFloat64("test.float"))
	assert.NotNil(t, GetViper())
}

func TestLoadEnvironmentConfig(t *testing.T) {
	tmpDir := t.TempDir()

	baseConfig := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(baseConfig, []byte(`
rules:
  farm_rate: 50
logging:
  level: info
`), 0644))

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.prod.yaml"), []byte(`
rules:
  farm_rate: 40
logging:
  level: warn
  format: json
`), 0644))

	reset()
	require.NoError(t, Init(baseConfig))
	require.NoError(t, LoadEnvironmentConfig("prod"))

	c := Get()
	assert.Equal(t, 40, c.Rules.FarmRate)
	assert.Equal(t, "warn", c.Logging.Level)
	assert.Equal(t, "json", c.Logging.Format)

	require.NoError(t, LoadEnvironmentConfig(""))
	require.NoError(t, LoadEnvironmentConfig("missing"))
}

func TestValidate(t *testing.T) {
	reset()
	require.NoError(t, Init(""))
	base := *Get()

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"recruit rate", func(c *Config) { c.Rules.RecruitRate = 0 }, "rules.recruit_rate"},
		{"farm rate", func(c *Config) { c.Rules.FarmRate = -1 }, "rules.farm_rate"},
		{"capture scale", func(c *Config) { c.Rules.GeneralCaptureScale = 1.5 }, "rules.general_capture_scale"},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"compression", func(c *Config) { c.Export.CompressionLevel = "max" }, "export.compression_level"},
		{"generator teams", func(c *Config) { c.Generator.Teams = 1 }, "generator.teams"},
		{"generator players", func(c *Config) { c.Generator.Players = 13 }, "generator.players"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := Validate(&c)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	assert.NoError(t, Validate(&base))
}
