package events

import (
	"time"
)

// Event type constants
const (
	TypeGameStarted        = "game.started"
	TypeGameEnded          = "game.ended"
	TypeTurnStarted        = "turn.started"
	TypeTurnEnded          = "turn.ended"
	TypeGeneralCaptured    = "general.captured"
	TypePlayerEliminated   = "player.eliminated"
	TypePlayerDisconnected = "player.disconnected"
	TypePlayerNeutralized  = "player.neutralized"
	TypeProductionApplied  = "production.applied"
	TypeSimulationOverrun  = "simulation.overrun"
)

// AllTypes lists every event type in publication order within a turn.
var AllTypes = []string{
	TypeGameStarted,
	TypeTurnStarted,
	TypePlayerDisconnected,
	TypePlayerNeutralized,
	TypeGeneralCaptured,
	TypePlayerEliminated,
	TypeProductionApplied,
	TypeTurnEnded,
	TypeGameEnded,
	TypeSimulationOverrun,
}

// GameStartedEvent is published once the match has been built from a replay.
type GameStartedEvent struct {
	BaseEvent
	NumPlayers int
	MapWidth   int
	MapHeight  int
	Version    int
	Teams      bool
}

func NewGameStartedEvent(gameID string, numPlayers, width, height, version int, teams bool) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent:  newBase(TypeGameStarted, gameID, 0),
		NumPlayers: numPlayers,
		MapWidth:   width,
		MapHeight:  height,
		Version:    version,
		Teams:      teams,
	}
}

// GameEndedEvent is published when the simulated match reaches game over.
// Winner is -1 when nobody survived.
type GameEndedEvent struct {
	BaseEvent
	Winner    int
	FinalTurn int
	Duration  time.Duration
}

func NewGameEndedEvent(gameID string, winner, finalTurn int, duration time.Duration) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID, finalTurn),
		Winner:    winner,
		FinalTurn: finalTurn,
		Duration:  duration,
	}
}

// TurnStartedEvent is published before commands are resolved.
type TurnStartedEvent struct {
	BaseEvent
	TurnNumber int
}

func NewTurnStartedEvent(gameID string, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent:  newBase(TypeTurnStarted, gameID, turn),
		TurnNumber: turn,
	}
}

// TurnEndedEvent is published after scoring. TurnNumber is the new turn.
type TurnEndedEvent struct {
	BaseEvent
	TurnNumber      int
	CommandsApplied int
	AlivePlayers    int
	ProcessedTime   time.Duration
}

func NewTurnEndedEvent(gameID string, turn, commandsApplied, alivePlayers int, processedTime time.Duration) *TurnEndedEvent {
	return &TurnEndedEvent{
		BaseEvent:       newBase(TypeTurnEnded, gameID, turn),
		TurnNumber:      turn,
		CommandsApplied: commandsApplied,
		AlivePlayers:    alivePlayers,
		ProcessedTime:   processedTime,
	}
}

// GeneralCapturedEvent is published when an attack takes a general cell.
type GeneralCapturedEvent struct {
	BaseEvent
	Captor           int
	Defeated         int
	Tile             int
	TilesTransferred int
}

func NewGeneralCapturedEvent(gameID string, captor, defeated, tile, transferred, turn int) *GeneralCapturedEvent {
	return &GeneralCapturedEvent{
		BaseEvent:        newBase(TypeGeneralCaptured, gameID, turn),
		Captor:           captor,
		Defeated:         defeated,
		Tile:             tile,
		TilesTransferred: transferred,
	}
}

// PlayerEliminatedEvent is published the first time a player dies to a
// capture. Rank is the 1-based position in the death order.
type PlayerEliminatedEvent struct {
	BaseEvent
	PlayerID     int
	EliminatedBy int
	Rank         int
}

func NewPlayerEliminatedEvent(gameID string, playerID, eliminatedBy, rank, turn int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{
		BaseEvent:    newBase(TypePlayerEliminated, gameID, turn),
		PlayerID:     playerID,
		EliminatedBy: eliminatedBy,
		Rank:         rank,
	}
}

// PlayerDisconnectedEvent is published when a living player leaves the match.
type PlayerDisconnectedEvent struct {
	BaseEvent
	PlayerID int
	Rank     int
}

func NewPlayerDisconnectedEvent(gameID string, playerID, rank, turn int) *PlayerDisconnectedEvent {
	return &PlayerDisconnectedEvent{
		BaseEvent: newBase(TypePlayerDisconnected, gameID, turn),
		PlayerID:  playerID,
		Rank:      rank,
	}
}

// PlayerNeutralizedEvent is published when a dead player's general is
// removed. Heir is the teammate that inherited the land, or -1 if it went
// neutral. TilesTransferred is 0 when the general had already been taken.
type PlayerNeutralizedEvent struct {
	BaseEvent
	PlayerID         int
	Heir             int
	TilesTransferred int
}

func NewPlayerNeutralizedEvent(gameID string, playerID, heir, transferred, turn int) *PlayerNeutralizedEvent {
	return &PlayerNeutralizedEvent{
		BaseEvent:        newBase(TypePlayerNeutralized, gameID, turn),
		PlayerID:         playerID,
		Heir:             heir,
		TilesTransferred: transferred,
	}
}

// ProductionAppliedEvent summarizes the growth step of a turn.
type ProductionAppliedEvent struct {
	BaseEvent
	GeneralProduction int
	CityProduction    int
	LandProduction    int
	SwampLoss         int
}

func NewProductionAppliedEvent(gameID string, generals, cities, land, swamps, turn int) *ProductionAppliedEvent {
	return &ProductionAppliedEvent{
		BaseEvent:         newBase(TypeProductionApplied, gameID, turn),
		GeneralProduction: generals,
		CityProduction:    cities,
		LandProduction:    land,
		SwampLoss:         swamps,
	}
}

// SimulationOverrunEvent is published when the turn ceiling is reached before
// the match ended.
type SimulationOverrunEvent struct {
	BaseEvent
	MaxTurns     int
	AlivePlayers int
}

func NewSimulationOverrunEvent(gameID string, maxTurns, alivePlayers int) *SimulationOverrunEvent {
	return &SimulationOverrunEvent{
		BaseEvent:    newBase(TypeSimulationOverrun, gameID, maxTurns),
		MaxTurns:     maxTurns,
		AlivePlayers: alivePlayers,
	}
}
