package subscribers

import (
	"github.com/goccy/go-json"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber writes every event it receives as one structured log line.
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // nil logs everything
	devMode         bool            // include the full event as JSON
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter restricts logging to eventTypes. An empty list logs all.
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent logs event with its type-specific fields.
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Int("turn", event.Turn())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Int("num_players", e.NumPlayers).
			Int("map_width", e.MapWidth).
			Int("map_height", e.MapHeight).
			Int("version", e.Version).
			Bool("teams", e.Teams)

	case *events.GameEndedEvent:
		logEvent.
			Int("winner", e.Winner).
			Int("final_turn", e.FinalTurn).
			Dur("duration", e.Duration)

	case *events.TurnEndedEvent:
		logEvent.
			Int("commands_applied", e.CommandsApplied).
			Int("alive_players", e.AlivePlayers).
			Dur("process_time", e.ProcessedTime)

	case *events.GeneralCapturedEvent:
		logEvent.
			Int("captor", e.Captor).
			Int("defeated", e.Defeated).
			Int("tile", e.Tile).
			Int("tiles_transferred", e.TilesTransferred)

	case *events.PlayerEliminatedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("eliminated_by", e.EliminatedBy).
			Int("rank", e.Rank)

	case *events.PlayerDisconnectedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("rank", e.Rank)

	case *events.PlayerNeutralizedEvent:
		logEvent.
			Int("player_id", e.PlayerID).
			Int("heir", e.Heir).
			Int("tiles_transferred", e.TilesTransferred)

	case *events.ProductionAppliedEvent:
		logEvent.
			Int("general_production", e.GeneralProduction).
			Int("city_production", e.CityProduction).
			Int("land_production", e.LandProduction).
			Int("swamp_loss", e.SwampLoss)

	case *events.SimulationOverrunEvent:
		logEvent.
			Int("max_turns", e.MaxTurns).
			Int("alive_players", e.AlivePlayers)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	}
	return zerolog.InfoLevel
}
