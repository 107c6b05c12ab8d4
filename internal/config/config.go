package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds all configuration for the replay tools
type Config struct {
	Rules      RulesConfig      `mapstructure:"rules"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Viewer     ViewerConfig     `mapstructure:"viewer"`
	Export     ExportConfig     `mapstructure:"export"`
	Generator  GeneratorConfig  `mapstructure:"generator"`
}

// RulesConfig holds the growth and capture constants of the game.
type RulesConfig struct {
	RecruitRate            int     `mapstructure:"recruit_rate"`
	FarmRate               int     `mapstructure:"farm_rate"`
	MinCityArmy            int     `mapstructure:"min_city_army"`
	GeneralCaptureScale    float64 `mapstructure:"general_capture_scale"`
	LegacyCityRegenVersion int     `mapstructure:"legacy_city_regen_version"`
}

// SimulationConfig holds simulator limits
type SimulationConfig struct {
	MaxTurns int `mapstructure:"max_turns"`
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Events bool   `mapstructure:"events"`
}

// ViewerConfig holds terminal viewer settings
type ViewerConfig struct {
	TurnIntervalMs  int  `mapstructure:"turn_interval_ms"`
	ShowCoordinates bool `mapstructure:"show_coordinates"`
	ShowArmies      bool `mapstructure:"show_armies"`
}

// ExportConfig holds timeline export settings
type ExportConfig struct {
	CompressionLevel string `mapstructure:"compression_level"`
}

// GeneratorConfig holds synthetic replay generation settings
type GeneratorConfig struct {
	Width             int `mapstructure:"width"`
	Height            int `mapstructure:"height"`
	Players           int `mapstructure:"players"`
	Teams             int `mapstructure:"teams"`
	CityRatio         int `mapstructure:"city_ratio"`
	CityStartArmy     int `mapstructure:"city_start_army"`
	MountainRatio     int `mapstructure:"mountain_ratio"`
	SwampRatio        int `mapstructure:"swamp_ratio"`
	MinGeneralSpacing int `mapstructure:"min_general_spacing"`
	Turns             int `mapstructure:"turns"`
}

// CompressionLevels are the accepted export.compression_level values.
var CompressionLevels = []string{"fastest", "default", "better", "best"}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

func setViperDefaults(v *viper.Viper) {
	v.SetDefault("rules.recruit_rate", 2)
	v.SetDefault("rules.farm_rate", 50)
	v.SetDefault("rules.min_city_army", 40)
	v.SetDefault("rules.general_capture_scale", 0.5)
	v.SetDefault("rules.legacy_city_regen_version", 6)

	v.SetDefault("simulation.max_turns", 2000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.events", false)

	v.SetDefault("viewer.turn_interval_ms", 250)
	v.SetDefault("viewer.show_coordinates", false)
	v.SetDefault("viewer.show_armies", true)

	v.SetDefault("export.compression_level", "better")

	v.SetDefault("generator.width", 18)
	v.SetDefault("generator.height", 18)
	v.SetDefault("generator.players", 2)
	v.SetDefault("generator.teams", 0)
	v.SetDefault("generator.city_ratio", 20)
	v.SetDefault("generator.city_start_army", 40)
	v.SetDefault("generator.mountain_ratio", 6)
	v.SetDefault("generator.swamp_ratio", 0)
	v.SetDefault("generator.min_general_spacing", 5)
	v.SetDefault("generator.turns", 600)
}

// Init loads configuration from configPath, or from config.yaml in the
// default search paths when configPath is empty. Environment variables with
// the GRR_ prefix override file values.
func Init(configPath string) error {
	v = viper.New()
	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/generals-replay")
	}

	v.SetEnvPrefix("GRR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing files fall back to defaults.
		if !isNotFound(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg = &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	return nil
}

// Get returns the global config instance, loading defaults on first use.
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for advanced usage
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// LoadEnvironmentConfig merges config.<env>.yaml over the loaded config. The
// overlay is looked up next to the base config file, or in the working
// directory when no file was loaded.
func LoadEnvironmentConfig(env string) error {
	if env == "" {
		return nil
	}

	envFile := fmt.Sprintf("config.%s.yaml", env)
	if used := v.ConfigFileUsed(); used != "" {
		envFile = filepath.Join(filepath.Dir(used), envFile)
	}

	v.SetConfigFile(envFile)
	if err := v.MergeInConfig(); err != nil {
		if !isNotFound(err) {
			return fmt.Errorf("error merging environment config %s: %w", envFile, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unable to decode merged config into struct: %w", err)
	}
	return Validate(cfg)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Set allows runtime config updates
func Set(key string, value interface{}) {
	v.Set(key, value)
	_ = v.Unmarshal(cfg)
}

func GetString(key string) string   { return v.GetString(key) }
func GetInt(key string) int         { return v.GetInt(key) }
func GetBool(key string) bool       { return v.GetBool(key) }
func GetFloat64(key string) float64 { return v.GetFloat64(key) }

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return v.ConfigFileUsed()
}

// WatchConfig reloads the config when the file changes and calls onChange
// with the new values. Invalid edits are ignored.
func WatchConfig(onChange func(*Config)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		next := &Config{}
		if err := v.Unmarshal(next); err != nil {
			return
		}
		if err := Validate(next); err != nil {
			return
		}
		*cfg = *next
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if c.Rules.RecruitRate <= 0 {
		return fmt.Errorf("rules.recruit_rate must be positive")
	}
	if c.Rules.FarmRate <= 0 {
		return fmt.Errorf("rules.farm_rate must be positive")
	}
	if c.Rules.MinCityArmy < 0 {
		return fmt.Errorf("rules.min_city_army must be non-negative")
	}
	if c.Rules.GeneralCaptureScale <= 0 || c.Rules.GeneralCaptureScale > 1 {
		return fmt.Errorf("rules.general_capture_scale must be in (0, 1]")
	}

	if c.Simulation.MaxTurns <= 0 {
		return fmt.Errorf("simulation.max_turns must be positive")
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}

	if c.Viewer.TurnIntervalMs <= 0 {
		return fmt.Errorf("viewer.turn_interval_ms must be positive")
	}

	validLevel := false
	for _, l := range CompressionLevels {
		if c.Export.CompressionLevel == l {
			validLevel = true
		}
	}
	if !validLevel {
		return fmt.Errorf("export.compression_level must be one of %s", strings.Join(CompressionLevels, ", "))
	}

	g := c.Generator
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("generator dimensions must be positive")
	}
	if g.Players < 1 || g.Players > 12 {
		return fmt.Errorf("generator.players must be between 1 and 12")
	}
	if g.Teams < 0 || g.Teams == 1 || g.Teams > g.Players {
		return fmt.Errorf("generator.teams must be 0 or between 2 and generator.players")
	}
	if g.CityRatio < 0 || g.MountainRatio < 0 || g.SwampRatio < 0 {
		return fmt.Errorf("generator ratios must be non-negative")
	}
	if g.MinGeneralSpacing < 1 {
		return fmt.Errorf("generator.min_general_spacing must be at least 1")
	}
	if g.Turns < 0 {
		return fmt.Errorf("generator.turns must be non-negative")
	}

	return nil
}
