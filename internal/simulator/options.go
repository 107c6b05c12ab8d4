package simulator

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
)

// DefaultMaxTurns stops replays that never reach game over.
const DefaultMaxTurns = 2000

// Option configures a Simulator.
type Option interface {
	apply(*options)
}

type optionFunc func(*options)

func (f optionFunc) apply(o *options) { f(o) }

type options struct {
	logger   zerolog.Logger
	eventBus *events.EventBus
	maxTurns int
	rules    game.Rules
	gameID   string
}

// WithLogger sets the logger used by the simulator and its match.
func WithLogger(logger zerolog.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = logger
	})
}

// WithEventBus publishes match and simulation events on bus.
func WithEventBus(bus *events.EventBus) Option {
	return optionFunc(func(o *options) {
		o.eventBus = bus
	})
}

// WithMaxTurns overrides the turn ceiling. Values below 1 keep the default.
func WithMaxTurns(n int) Option {
	return optionFunc(func(o *options) {
		if n > 0 {
			o.maxTurns = n
		}
	})
}

// WithRules replaces the growth and capture constants.
func WithRules(r game.Rules) Option {
	return optionFunc(func(o *options) {
		o.rules = r
	})
}

// WithGameID sets the id carried on published events. It defaults to the
// replay id.
func WithGameID(id string) Option {
	return optionFunc(func(o *options) {
		o.gameID = id
	})
}
