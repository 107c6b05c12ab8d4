package game

import (
	"github.com/mitchelldurbincs/GeneralsReplay/internal/config"
)

// DeadGeneral marks a player whose general has been captured or removed.
const DeadGeneral = -1

// Rules holds the growth and capture constants used by a Match.
type Rules struct {
	// RecruitRate: generals and cities grow by one every RecruitRate turns.
	RecruitRate int
	// FarmRate: every owned cell grows by one every FarmRate turns.
	FarmRate int
	// MinCityArmy is the level unowned cities regenerate to in legacy replays.
	MinCityArmy int
	// GeneralCaptureScale multiplies the armies handed over on a capture.
	GeneralCaptureScale float64
	// Replays older than this version regenerate unowned cities.
	LegacyCityRegenVersion int
}

// DefaultRules returns the constants of the live game.
func DefaultRules() Rules {
	return Rules{
		RecruitRate:            2,
		FarmRate:               50,
		MinCityArmy:            40,
		GeneralCaptureScale:    0.5,
		LegacyCityRegenVersion: 6,
	}
}

// RulesFromConfig maps the rules section of cfg onto a Rules value.
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		RecruitRate:            cfg.Rules.RecruitRate,
		FarmRate:               cfg.Rules.FarmRate,
		MinCityArmy:            cfg.Rules.MinCityArmy,
		GeneralCaptureScale:    cfg.Rules.GeneralCaptureScale,
		LegacyCityRegenVersion: cfg.Rules.LegacyCityRegenVersion,
	}
}

// CityRegen reports whether a replay of the given version regenerates
// unowned cities.
func (r Rules) CityRegen(version int) bool {
	return version < r.LegacyCityRegenVersion
}

func (r Rules) isZero() bool {
	return r == Rules{}
}
