package simulator

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
)

// Snapshot is an independent copy of the match state after one turn.
// Nothing in it is shared with the simulator.
type Snapshot struct {
	GameID       string        `msgpack:"game_id"`
	Turn         int           `msgpack:"turn"`
	Width        int           `msgpack:"width"`
	Height       int           `msgpack:"height"`
	Owners       []core.Owner  `msgpack:"owners"`
	Armies       []int         `msgpack:"armies"`
	Generals     []int         `msgpack:"generals"`
	Cities       []int         `msgpack:"cities"`
	Swamps       []int         `msgpack:"swamps"`
	Deaths       []int         `msgpack:"deaths"`
	Teams        []int         `msgpack:"teams"`
	Scores       []game.Score  `msgpack:"scores"`
	Players      []game.Player `msgpack:"players"`
	AlivePlayers int           `msgpack:"alive_players"`
	GameOver     bool          `msgpack:"game_over"`
}

func newSnapshot(gameID string, m *game.Match, over bool) *Snapshot {
	s := &Snapshot{
		GameID:       gameID,
		Turn:         m.Turn,
		Width:        m.Board.W,
		Height:       m.Board.H,
		Owners:       append([]core.Owner(nil), m.Board.Owner...),
		Armies:       append([]int(nil), m.Board.Army...),
		Generals:     append([]int(nil), m.Generals...),
		Cities:       append([]int(nil), m.Cities...),
		Swamps:       append([]int(nil), m.Swamps...),
		Deaths:       append([]int(nil), m.Deaths...),
		Scores:       append([]game.Score(nil), m.Scores...),
		Players:      append([]game.Player(nil), m.Players...),
		AlivePlayers: m.AlivePlayers,
		GameOver:     over,
	}
	if m.Teams != nil {
		s.Teams = append([]int(nil), m.Teams...)
	}
	return s
}

// OwnerAt returns the owner of cell i, or core.Empty when i is off the board.
func (s *Snapshot) OwnerAt(i int) core.Owner {
	if i < 0 || i >= len(s.Owners) {
		return core.Empty
	}
	return s.Owners[i]
}

// ArmyAt returns the army on cell i, or 0 when i is off the board.
func (s *Snapshot) ArmyAt(i int) int {
	if i < 0 || i >= len(s.Armies) {
		return 0
	}
	return s.Armies[i]
}

// Player returns the seat with index i.
func (s *Snapshot) Player(i int) (game.Player, bool) {
	if i < 0 || i >= len(s.Players) {
		return game.Player{}, false
	}
	return s.Players[i], true
}

// IsAlive reports whether player i has neither died nor disconnected.
func (s *Snapshot) IsAlive(i int) bool {
	if i < 0 || i >= len(s.Players) {
		return false
	}
	for _, d := range s.Deaths {
		if d == i {
			return false
		}
	}
	return true
}

// Leader returns the player at the top of the standings, or -1.
func (s *Snapshot) Leader() int {
	if len(s.Scores) == 0 {
		return -1
	}
	return s.Scores[0].Index
}

// Board rebuilds a board from the snapshot. The board is a fresh copy.
func (s *Snapshot) Board() *core.Board {
	b := core.NewBoard(s.Width, s.Height, s.Teams)
	copy(b.Owner, s.Owners)
	copy(b.Army, s.Armies)
	return b
}

// Render draws the snapshot board as text.
func (s *Snapshot) Render(opts game.RenderOptions) string {
	return game.RenderBoard(s.Board(), s.Generals, s.Cities, s.Swamps, opts)
}

// Encode serializes the snapshot with msgpack. Equal snapshots encode to
// equal bytes.
func (s *Snapshot) Encode() ([]byte, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot turn %d: %w", s.Turn, err)
	}
	return b, nil
}

// DecodeSnapshot parses bytes produced by Snapshot.Encode.
func DecodeSnapshot(b []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &s, nil
}
