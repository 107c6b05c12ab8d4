package simulator

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/common"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
)

// ErrSimulationOverrun is reported when the turn ceiling is reached before
// the game is over. The simulated timeline is still usable.
var ErrSimulationOverrun = errors.New("simulation reached the turn ceiling before game over")

// Simulator replays a record to completion once, caching the match state
// after every turn, and then serves any turn from the cache.
type Simulator struct {
	record   *replay.Record
	gameID   string
	maxTurns int

	cache   []*game.Match // indexed by turn
	current *game.Match
	overrun bool

	eventBus *events.EventBus
	logger   zerolog.Logger
}

// New builds the match described by rec and simulates it until game over or
// the turn ceiling.
func New(rec *replay.Record, opts ...Option) (*Simulator, error) {
	o := options{maxTurns: DefaultMaxTurns}
	for _, opt := range opts {
		if opt != nil {
			opt.apply(&o)
		}
	}
	if rec == nil {
		return nil, errors.New("nil replay record")
	}

	gameID := o.gameID
	if gameID == "" {
		gameID = rec.ID
	}
	if gameID == "" {
		gameID = uuid.NewString()
	}

	s := &Simulator{
		record:   rec,
		gameID:   gameID,
		maxTurns: o.maxTurns,
		eventBus: o.eventBus,
		logger:   o.logger.With().Str("component", "Simulator").Str("game_id", gameID).Logger(),
	}

	m, err := game.NewMatchFromReplay(rec, game.MatchConfig{
		Logger:   o.logger,
		EventBus: o.eventBus,
		GameID:   gameID,
		Rules:    o.rules,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build match for replay %q: %w", rec.ID, err)
	}

	s.run(m)
	s.current = s.cache[0].Clone()
	return s, nil
}

func (s *Simulator) run(m *game.Match) {
	start := time.Now()
	s.cache = append(s.cache, m.Clone())

	moves, afks := s.record.Moves, s.record.AFKs
	mi, ai := 0, 0
	for !m.IsOver() {
		if m.Turn >= s.maxTurns {
			s.overrun = true
			break
		}

		for mi < len(moves) && moves[mi].Turn <= m.Turn {
			mv := moves[mi]
			mi++
			if err := m.Enqueue(mv.Player, mv.Start, mv.End, mv.Half); err != nil {
				s.logger.Debug().Err(err).Int("turn", m.Turn).Msg("Skipping recorded move")
			}
		}
		for ai < len(afks) && afks[ai].Turn <= m.Turn {
			afk := afks[ai]
			ai++
			if err := m.Disconnect(afk.Player); err != nil {
				s.logger.Warn().Err(err).Int("turn", m.Turn).Int("player_id", afk.Player).Msg("Skipping recorded disconnect")
			}
		}

		m.Tick()
		s.cache = append(s.cache, m.Clone())

		if e := s.logger.Debug(); e.Enabled() {
			leaderArmy := 0
			if len(m.Scores) > 0 {
				leaderArmy = m.Scores[0].Total
			}
			e.Int("turn", m.Turn).
				Int("alive_players", m.AlivePlayers).
				Int("leader_army", leaderArmy).
				Msg("Simulated turn")
		}
	}

	if s.overrun {
		s.logger.Warn().
			Int("max_turns", s.maxTurns).
			Int("alive_players", m.AlivePlayers).
			Msg("Simulation stopped at the turn ceiling")
		s.publish(events.NewSimulationOverrunEvent(s.gameID, s.maxTurns, m.AlivePlayers))
		return
	}

	winner := m.Winner()
	elapsed := time.Since(start)
	s.logger.Info().
		Int("final_turn", m.Turn).
		Int("winner", winner).
		Dur("elapsed", elapsed).
		Msg("Simulation complete")
	s.publish(events.NewGameEndedEvent(s.gameID, winner, m.Turn, elapsed))
}

func (s *Simulator) publish(e events.Event) {
	if s.eventBus != nil {
		s.eventBus.Publish(e)
	}
}

// GameID returns the id carried on events.
func (s *Simulator) GameID() string { return s.gameID }

// Record returns the replay being simulated.
func (s *Simulator) Record() *replay.Record { return s.record }

// MaxTurn is the last simulated turn.
func (s *Simulator) MaxTurn() int { return len(s.cache) - 1 }

// Snapshots returns the number of cached turns, MaxTurn()+1.
func (s *Simulator) Snapshots() int { return len(s.cache) }

// CurrentTurn returns the turn of the current position.
func (s *Simulator) CurrentTurn() int { return s.current.Turn }

// Overrun reports whether simulation stopped at the turn ceiling.
func (s *Simulator) Overrun() bool { return s.overrun }

// Err returns ErrSimulationOverrun after an overrun and nil otherwise.
func (s *Simulator) Err() error {
	if s.overrun {
		return ErrSimulationOverrun
	}
	return nil
}

// IsGameOver reports whether the current position is the end of a finished
// game.
func (s *Simulator) IsGameOver() bool {
	return !s.overrun && s.current.Turn == s.MaxTurn() && s.current.IsOver()
}

// CurrentSnapshot returns a copy of the current position.
func (s *Simulator) CurrentSnapshot() *Snapshot {
	return newSnapshot(s.gameID, s.current, s.IsGameOver())
}

// SnapshotAt returns a copy of the state after turn t, clamped to
// [0, MaxTurn].
func (s *Simulator) SnapshotAt(t int) *Snapshot {
	t = s.clamp(t)
	m := s.cache[t]
	return newSnapshot(s.gameID, m, !s.overrun && t == s.MaxTurn() && m.IsOver())
}

// AdvanceOneTurn moves the current position forward and returns the new turn.
func (s *Simulator) AdvanceOneTurn() int {
	return s.JumpToTurn(s.current.Turn + 1)
}

// RewindOneTurn moves the current position back and returns the new turn.
func (s *Simulator) RewindOneTurn() int {
	return s.JumpToTurn(s.current.Turn - 1)
}

// JumpToTurn moves the current position to turn n, clamped, and returns the
// new turn.
func (s *Simulator) JumpToTurn(n int) int {
	n = s.clamp(n)
	if n != s.current.Turn {
		s.current = s.cache[n].Clone()
	}
	return n
}

func (s *Simulator) clamp(t int) int {
	return common.Clamp(t, 0, s.MaxTurn())
}
