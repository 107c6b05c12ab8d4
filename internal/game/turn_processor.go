package game

import (
	"time"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/rs/zerolog"
)

// TurnProcessor runs the phases of a single tick in a fixed order:
// command resolution, growth, scoring.
type TurnProcessor struct {
	match  *Match
	logger zerolog.Logger
}

// NewTurnProcessor creates a new turn processor
func NewTurnProcessor(m *Match) *TurnProcessor {
	return &TurnProcessor{
		match:  m,
		logger: m.baseLogger.With().Str("component", "TurnProcessor").Logger(),
	}
}

// ProcessTurn executes a complete game turn
func (tp *TurnProcessor) ProcessTurn() {
	m := tp.match
	turnStartTime := time.Now()
	turnLogger := tp.logger.With().Int("turn", m.Turn).Logger()
	turnLogger.Debug().Msg("Starting game step")
	m.publish(events.NewTurnStartedEvent(m.gameID, m.Turn))

	applied := tp.processCommandPhase(turnLogger)
	tp.processProductionPhase()
	tp.processScoringPhase()

	m.publish(events.NewTurnEndedEvent(m.gameID, m.Turn, applied, m.AlivePlayers, time.Since(turnStartTime)))
	turnLogger.Debug().Int("new_turn", m.Turn).Msg("Game step finished")
}

// processCommandPhase resolves at most one queued command per player. The
// priority order flips every turn.
func (tp *TurnProcessor) processCommandPhase(turnLogger zerolog.Logger) int {
	m := tp.match
	applied := m.queues.Resolve(m.Turn, m.handleAttack)
	turnLogger.Debug().Int("commands_applied", len(applied)).Msg("Finished processing commands")
	return len(applied)
}

// processProductionPhase advances the turn counter and grows armies.
func (tp *TurnProcessor) processProductionPhase() {
	m := tp.match
	m.Turn++
	m.production.ProcessTurnProduction(m, m.Turn)
}

func (tp *TurnProcessor) processScoringPhase() {
	tp.match.recalculateScores()
}
