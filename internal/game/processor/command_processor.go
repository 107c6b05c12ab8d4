package processor

import (
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/rs/zerolog"
)

// CommandProcessor buffers queued commands per player and resolves at most
// one successful command per player each turn.
type CommandProcessor struct {
	queues [][]core.Command
	logger zerolog.Logger
}

// NewCommandProcessor creates a processor with one empty queue per player.
func NewCommandProcessor(players int, logger zerolog.Logger) *CommandProcessor {
	return &CommandProcessor{
		queues: make([][]core.Command, players),
		logger: logger.With().Str("component", "CommandProcessor").Logger(),
	}
}

// Players returns the number of queues.
func (cp *CommandProcessor) Players() int { return len(cp.queues) }

// Enqueue appends cmd to its player's queue.
func (cp *CommandProcessor) Enqueue(cmd core.Command) error {
	if cmd.Player < 0 || cmd.Player >= len(cp.queues) {
		return core.ErrInvalidPlayer
	}
	cp.queues[cmd.Player] = append(cp.queues[cmd.Player], cmd)
	return nil
}

// Pending returns how many commands are waiting for player.
func (cp *CommandProcessor) Pending(player int) int {
	if player < 0 || player >= len(cp.queues) {
		return 0
	}
	return len(cp.queues[player])
}

// Order returns the player order for a turn: ascending on even turns,
// descending on odd ones, so no player always moves first.
func Order(turn, players int) []int {
	order := make([]int, players)
	for i := range order {
		if turn%2 == 0 {
			order[i] = i
		} else {
			order[i] = players - 1 - i
		}
	}
	return order
}

// Resolve walks the players in priority order. For each one it pops commands
// until apply reports success or the queue runs dry. It returns the commands
// that were applied, in application order.
func (cp *CommandProcessor) Resolve(turn int, apply func(core.Command) bool) []core.Command {
	var applied []core.Command
	for _, p := range Order(turn, len(cp.queues)) {
		for len(cp.queues[p]) > 0 {
			cmd := cp.queues[p][0]
			cp.queues[p][0] = core.Command{}
			cp.queues[p] = cp.queues[p][1:]
			if apply(cmd) {
				applied = append(applied, cmd)
				break
			}
			cp.logger.Debug().
				Int("turn", turn).
				Int("player_id", p).
				Int("from", cmd.From).
				Int("to", cmd.To).
				Msg("Discarded command")
		}
	}
	return applied
}

// Clone returns an independent copy of the queues.
func (cp *CommandProcessor) Clone() *CommandProcessor {
	c := &CommandProcessor{
		queues: make([][]core.Command, len(cp.queues)),
		logger: cp.logger,
	}
	for i, q := range cp.queues {
		c.queues[i] = append([]core.Command(nil), q...)
	}
	return c
}
