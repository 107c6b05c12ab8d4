package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/rules"
)

// Player is the identity of one seat in the match. Players are never
// reordered; Index is the value stored in board owner cells.
type Player struct {
	Index    int
	Username string
	Stars    int
	// Token is a stable identifier derived from the replay id and seat, so
	// the same replay always yields the same tokens.
	Token string
}

func newPlayer(replayID string, idx int, username string, stars int) Player {
	name := fmt.Sprintf("%s/%d/%s", replayID, idx, username)
	return Player{
		Index:    idx,
		Username: username,
		Stars:    stars,
		Token:    uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String(),
	}
}

// Score is one player's standing for the current turn.
type Score = rules.Score
