package game

import (
	"fmt"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/processor"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/rules"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
	"github.com/rs/zerolog"
)

// MatchConfig carries the optional collaborators of a Match.
type MatchConfig struct {
	Logger   zerolog.Logger
	EventBus *events.EventBus
	GameID   string
	// Rules defaults to DefaultRules when left zero.
	Rules Rules
}

// Match is the mutable state of one replayed game. It changes only through
// Tick, Enqueue, Disconnect and TryNeutralize.
type Match struct {
	Board    *core.Board
	Players  []Player
	Generals []int
	Cities   []int
	Swamps   []int
	// Deaths lists player indices in the order they died.
	Deaths       []int
	Scores       []Score
	Teams        []int
	Turn         int
	AlivePlayers int
	CityRegen    bool

	ruleset       Rules
	queues        *processor.CommandProcessor
	production    *ProductionManager
	winCondition  *rules.WinConditionChecker
	turnProcessor *TurnProcessor
	eventBus      *events.EventBus
	gameID        string
	baseLogger    zerolog.Logger
	logger        zerolog.Logger
}

// NewMatchFromReplay lays out the starting board recorded in rec.
func NewMatchFromReplay(rec *replay.Record, cfg MatchConfig) (*Match, error) {
	if err := validateRecord(rec); err != nil {
		return nil, core.WrapGameStateError(0, "setup", err)
	}

	ruleset := cfg.Rules
	if ruleset.isZero() {
		ruleset = DefaultRules()
	}
	if ruleset.RecruitRate <= 0 || ruleset.FarmRate <= 0 {
		return nil, core.WrapGameStateError(0, "setup", fmt.Errorf("recruit and farm rates must be positive"))
	}
	logger := cfg.Logger.With().Str("component", "Match").Str("game_id", cfg.GameID).Logger()
	n := rec.PlayerCount()
	var teams []int
	if rec.HasTeams() {
		teams = append(teams, rec.Teams...)
	}

	m := &Match{
		Board:        core.NewBoard(rec.Width, rec.Height, teams),
		Players:      make([]Player, n),
		Generals:     make([]int, 0, n),
		Cities:       make([]int, 0, len(rec.Cities)),
		Swamps:       make([]int, 0, len(rec.Swamps)),
		Deaths:       make([]int, 0, n),
		Teams:        teams,
		AlivePlayers: n,
		CityRegen:    ruleset.CityRegen(rec.Version),
		ruleset:      ruleset,
		queues:       processor.NewCommandProcessor(n, cfg.Logger),
		eventBus:     cfg.EventBus,
		gameID:       cfg.GameID,
		baseLogger:   cfg.Logger,
		logger:       logger,
	}
	m.production = NewProductionManager(cfg.EventBus, cfg.GameID, cfg.Logger)
	m.winCondition = rules.NewWinConditionChecker(cfg.Logger, m.Teams)
	m.turnProcessor = NewTurnProcessor(m)

	for i := range m.Players {
		m.Players[i] = newPlayer(rec.ID, i, rec.Username(i), rec.StarsOf(i))
	}

	for _, idx := range rec.Mountains {
		m.Board.SetOwner(idx, core.Mountain)
	}
	for i, idx := range rec.Cities {
		m.Cities = append(m.Cities, idx)
		m.Board.SetArmy(idx, rec.CityArmies[i])
	}
	for i, idx := range rec.Neutrals {
		m.Board.SetArmy(idx, rec.NeutralArmies[i])
	}
	for i, idx := range rec.Generals {
		m.Generals = append(m.Generals, idx)
		m.Board.SetOwner(idx, core.PlayerOwner(i))
		m.Board.SetArmy(idx, 1)
	}
	m.Swamps = append(m.Swamps, rec.Swamps...)

	m.recalculateScores()

	m.logger.Info().
		Int("players", n).
		Int("width", rec.Width).
		Int("height", rec.Height).
		Int("version", rec.Version).
		Bool("teams", m.Teams != nil).
		Bool("city_regen", m.CityRegen).
		Msg("Match created from replay")
	m.publish(events.NewGameStartedEvent(m.gameID, n, rec.Width, rec.Height, rec.Version, m.Teams != nil))

	return m, nil
}

func validateRecord(rec *replay.Record) error {
	if rec == nil || rec.PlayerCount() == 0 {
		return core.ErrNoPlayers
	}
	if rec.Width <= 0 || rec.Height <= 0 || rec.Width > replay.MaxCells/rec.Height {
		return fmt.Errorf("%dx%d board: %w", rec.Width, rec.Height, core.ErrInvalidIndex)
	}
	size := rec.Width * rec.Height
	inRange := func(what string, list []int) error {
		for i, idx := range list {
			if idx < 0 || idx >= size {
				return fmt.Errorf("%s[%d] = %d: %w", what, i, idx, core.ErrInvalidIndex)
			}
		}
		return nil
	}
	for _, f := range []struct {
		what string
		list []int
	}{
		{"mountains", rec.Mountains},
		{"cities", rec.Cities},
		{"generals", rec.Generals},
		{"swamps", rec.Swamps},
		{"neutrals", rec.Neutrals},
	} {
		if err := inRange(f.what, f.list); err != nil {
			return err
		}
	}
	if len(rec.CityArmies) != len(rec.Cities) || len(rec.NeutralArmies) != len(rec.Neutrals) {
		return fmt.Errorf("army list length mismatch: %w", core.ErrInvalidIndex)
	}
	if rec.HasTeams() && len(rec.Teams) < rec.PlayerCount() {
		return fmt.Errorf("teams has %d entries for %d players: %w", len(rec.Teams), rec.PlayerCount(), core.ErrInvalidPlayer)
	}
	return nil
}

// GameID returns the identifier attached to published events.
func (m *Match) GameID() string { return m.gameID }

// Rules returns the constants this match runs with.
func (m *Match) Rules() Rules { return m.ruleset }

// PlayerCount returns the number of seats.
func (m *Match) PlayerCount() int { return len(m.Players) }

// Enqueue buffers a move for its player. It is resolved on a later Tick.
func (m *Match) Enqueue(player, from, to int, half bool) error {
	cmd := core.Command{Player: player, From: from, To: to, Half: half}
	if err := m.queues.Enqueue(cmd); err != nil {
		return core.WrapCommandError(m.Board, cmd, err)
	}
	return nil
}

// Pending returns the number of buffered moves for player.
func (m *Match) Pending(player int) int { return m.queues.Pending(player) }

// Tick advances the match by one turn.
func (m *Match) Tick() {
	m.turnProcessor.ProcessTurn()
}

// handleAttack applies one queued command. It reports false when the command
// had no effect, letting the processor try the player's next one.
func (m *Match) handleAttack(cmd core.Command) bool {
	b := m.Board
	if !b.IsValidIndex(cmd.From) || b.OwnerAt(cmd.From) != core.PlayerOwner(cmd.Player) {
		m.logRejected(cmd)
		return false
	}
	if !b.IsValidIndex(cmd.To) {
		m.logRejected(cmd)
		return false
	}

	prevOwner := b.OwnerAt(cmd.To)
	if !b.Attack(cmd.From, cmd.To, cmd.Half, m.Generals) {
		m.logRejected(cmd)
		return false
	}

	newOwner := b.OwnerAt(cmd.To)
	if newOwner != prevOwner {
		if gi := indexOf(m.Generals, cmd.To); gi >= 0 {
			m.captureGeneral(gi, cmd.To, prevOwner, newOwner)
		}
	}
	return true
}

func (m *Match) logRejected(cmd core.Command) {
	if e := m.logger.Debug(); e.Enabled() {
		e.Err(core.WrapCommandError(m.Board, cmd, cmd.Validate(m.Board))).
			Int("turn", m.Turn).
			Msg("Command had no effect")
	}
}

// captureGeneral hands the defeated player's land to the captor at reduced
// strength and turns the general cell into a city.
func (m *Match) captureGeneral(generalIdx, cell int, defeated, captor core.Owner) {
	transferred := 0
	if defeated.IsPlayer() {
		transferred = m.Board.ReplaceAll(defeated, captor, m.ruleset.GeneralCaptureScale)
	}
	m.Cities = append(m.Cities, cell)
	m.Generals[generalIdx] = DeadGeneral

	m.logger.Info().
		Int("turn", m.Turn).
		Int("captor", captor.Player()).
		Int("defeated", defeated.Player()).
		Int("tile", cell).
		Int("tiles_transferred", transferred).
		Msg("General captured")
	m.publish(events.NewGeneralCapturedEvent(m.gameID, captor.Player(), defeated.Player(), cell, transferred, m.Turn))

	d := defeated.Player()
	if d < 0 || m.IsDead(d) {
		return
	}
	m.Deaths = append(m.Deaths, d)
	m.AlivePlayers--
	m.publish(events.NewPlayerEliminatedEvent(m.gameID, d, captor.Player(), len(m.Deaths), m.Turn))
}

// Disconnect handles a player leaving. A living player is recorded as dead
// but keeps their land; a player who is already dead is neutralized.
func (m *Match) Disconnect(player int) error {
	if player < 0 || player >= len(m.Players) {
		return core.ErrInvalidPlayer
	}
	if m.IsDead(player) {
		m.TryNeutralize(player)
		return nil
	}
	m.Deaths = append(m.Deaths, player)
	m.AlivePlayers--
	m.logger.Info().Int("turn", m.Turn).Int("player_id", player).Msg("Player disconnected")
	m.publish(events.NewPlayerDisconnectedEvent(m.gameID, player, len(m.Deaths), m.Turn))
	return nil
}

// TryNeutralize removes a dead player's general. If the general cell is still
// theirs, their land goes to a living teammate or back to neutral, and the
// general cell becomes a city.
func (m *Match) TryNeutralize(player int) {
	if player < 0 || player >= len(m.Generals) {
		return
	}
	cell := m.Generals[player]
	m.Generals[player] = DeadGeneral

	heir := m.aliveTeammate(player)
	newOwner := core.Empty
	if heir >= 0 {
		newOwner = core.PlayerOwner(heir)
	}

	transferred := 0
	if cell != DeadGeneral && m.Board.OwnerAt(cell) == core.PlayerOwner(player) {
		transferred = m.Board.ReplaceAll(core.PlayerOwner(player), newOwner, 1)
		m.Cities = append(m.Cities, cell)
	}

	m.logger.Info().
		Int("turn", m.Turn).
		Int("player_id", player).
		Int("heir", heir).
		Int("tiles_transferred", transferred).
		Msg("Player neutralized")
	m.publish(events.NewPlayerNeutralizedEvent(m.gameID, player, heir, transferred, m.Turn))
}

// aliveTeammate returns the lowest-index living player on player's team, or -1.
func (m *Match) aliveTeammate(player int) int {
	if m.Teams == nil {
		return -1
	}
	for i := range m.Players {
		if m.winCondition.SameTeam(i, player) && !m.IsDead(i) {
			return i
		}
	}
	return -1
}

// IsDead reports whether player appears in the death list.
func (m *Match) IsDead(player int) bool {
	return m.deathRank(player) >= 0
}

func (m *Match) deathRank(player int) int {
	return indexOf(m.Deaths, player)
}

// Alive returns one flag per player.
func (m *Match) Alive() []bool {
	alive := make([]bool, len(m.Players))
	for i := range alive {
		alive[i] = !m.IsDead(i)
	}
	return alive
}

// IsOver reports whether the match has a decided outcome.
func (m *Match) IsOver() bool {
	return m.winCondition.IsOver(m.Alive())
}

// Winner returns the winning player index or rules.NoWinner.
func (m *Match) Winner() int {
	return m.winCondition.Winner(m.Alive())
}

// Clone returns a deep copy. The copy does not publish events.
func (m *Match) Clone() *Match {
	c := *m
	c.Board = m.Board.Clone()
	c.Players = append([]Player(nil), m.Players...)
	c.Generals = append([]int(nil), m.Generals...)
	c.Cities = append([]int(nil), m.Cities...)
	c.Swamps = append([]int(nil), m.Swamps...)
	c.Deaths = append([]int(nil), m.Deaths...)
	c.Scores = append([]Score(nil), m.Scores...)
	if m.Teams != nil {
		c.Teams = append([]int(nil), m.Teams...)
	}
	c.queues = m.queues.Clone()
	c.eventBus = nil
	c.production = NewProductionManager(nil, m.gameID, m.baseLogger)
	c.turnProcessor = NewTurnProcessor(&c)
	return &c
}

func (m *Match) publish(e events.Event) {
	if m.eventBus != nil {
		m.eventBus.Publish(e)
	}
}

func indexOf(list []int, v int) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return -1
}
