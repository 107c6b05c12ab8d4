package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/testutil"
)

func gameRules(recruit int) game.Rules {
	r := game.DefaultRules()
	r.RecruitRate = recruit
	return r
}

func TestSnapshot_Accessors(t *testing.T) {
	rec := testutil.TeamRecord()
	sim, err := New(rec, WithMaxTurns(2))
	require.NoError(t, err)
	s := sim.SnapshotAt(2)

	assert.Equal(t, core.PlayerOwner(2), s.OwnerAt(3))
	assert.Equal(t, core.Empty, s.OwnerAt(-1))
	assert.Equal(t, core.Empty, s.OwnerAt(6))
	assert.Equal(t, 2, s.ArmyAt(5))
	assert.Zero(t, s.ArmyAt(42))

	p, ok := s.Player(1)
	require.True(t, ok)
	assert.Equal(t, "b", p.Username)
	_, ok = s.Player(4)
	assert.False(t, ok)

	assert.True(t, s.IsAlive(0))
	assert.False(t, s.IsAlive(4))
	assert.Equal(t, 0, s.Leader())
	assert.Equal(t, []int{1, 2, 1, 2}, s.Teams)

	b := s.Board()
	assert.Equal(t, s.Owners, b.Owner)
	b.SetArmy(0, 77)
	assert.Equal(t, 2, s.ArmyAt(0))

	assert.Contains(t, s.Render(game.RenderOptions{}), "A♔2")
	assert.Equal(t, -1, (&Snapshot{}).Leader())
}

func TestSnapshot_EncodeRoundTrip(t *testing.T) {
	sim, err := New(testutil.DuelRecord(), WithMaxTurns(6))
	require.NoError(t, err)
	s := sim.SnapshotAt(6)

	b, err := s.Encode()
	require.NoError(t, err)
	decoded, err := DecodeSnapshot(b)
	require.NoError(t, err)

	assert.Equal(t, s.Turn, decoded.Turn)
	assert.Equal(t, s.Owners, decoded.Owners)
	assert.Equal(t, s.Armies, decoded.Armies)
	assert.Equal(t, s.Scores, decoded.Scores)
	assert.Equal(t, s.Players, decoded.Players)
	assert.Nil(t, decoded.Teams)

	again, err := decoded.Encode()
	require.NoError(t, err)
	assert.Equal(t, b, again)

	_, err = DecodeSnapshot([]byte{0xc1})
	assert.Error(t, err)
}
