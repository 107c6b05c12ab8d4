package mapgen

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/common"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/config"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
)

// newTestRNG provides a random number generator with a fixed seed for deterministic tests.
func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func TestDefaultMapConfig(t *testing.T) {
	cfg := DefaultMapConfig(20, 15, 2)

	assert.Equal(t, 20, cfg.Width)
	assert.Equal(t, 15, cfg.Height)
	assert.Equal(t, 2, cfg.PlayerCount)
	assert.Equal(t, 20, cfg.CityRatio)
	assert.Equal(t, 40, cfg.CityStartArmy)
	assert.Equal(t, 5, cfg.MinGeneralSpacing)
	assert.Equal(t, 7, cfg.Version)
	assert.Zero(t, cfg.Teams)
}

func TestMapConfigFromSettings(t *testing.T) {
	cfg := MapConfigFromSettings(config.GeneratorConfig{
		Width: 9, Height: 7, Players: 4, Teams: 2, CityRatio: 10,
		CityStartArmy: 45, MountainRatio: 8, SwampRatio: 12, MinGeneralSpacing: 3,
	})
	assert.Equal(t, MapConfig{
		Width: 9, Height: 7, PlayerCount: 4, Teams: 2, CityRatio: 10,
		CityStartArmy: 45, MountainRatio: 8, SwampRatio: 12, MinGeneralSpacing: 3, Version: 7,
	}, cfg)
}

func TestGenerateMap(t *testing.T) {
	cfg := DefaultMapConfig(18, 18, 4)
	cfg.SwampRatio = 30
	cfg.Teams = 2
	rec, err := NewGenerator(cfg, newTestRNG()).GenerateMap("gen-1")
	require.NoError(t, err)

	assert.Equal(t, "gen-1", rec.ID)
	assert.Equal(t, 4, rec.PlayerCount())
	assert.Len(t, rec.Usernames, 4)
	assert.Equal(t, []int{1, 2, 1, 2}, rec.Teams)
	assert.Len(t, rec.Cities, 18*18/20)
	assert.Len(t, rec.CityArmies, len(rec.Cities))
	assert.Empty(t, rec.Moves)

	for _, a := range rec.CityArmies {
		assert.GreaterOrEqual(t, a, 40)
		assert.LessOrEqual(t, a, 50)
	}

	// Every special cell is distinct and on the board.
	seen := make(map[int]string)
	mark := func(kind string, cells []int) {
		for _, c := range cells {
			assert.True(t, c >= 0 && c < rec.Width*rec.Height, "%s %d out of range", kind, c)
			prev, dup := seen[c]
			assert.False(t, dup, "%s %d already used as %s", kind, c, prev)
			seen[c] = kind
		}
	}
	mark("general", rec.Generals)
	mark("city", rec.Cities)
	mark("mountain", rec.Mountains)
	mark("swamp", rec.Swamps)

	for i, a := range rec.Generals {
		for _, b := range rec.Generals[i+1:] {
			d := common.ManhattanDistance(a%rec.Width, a/rec.Width, b%rec.Width, b/rec.Width)
			assert.GreaterOrEqual(t, d, cfg.MinGeneralSpacing)
		}
	}
}

func TestGenerateMap_CrowdedFallsBackToFreeCells(t *testing.T) {
	cfg := DefaultMapConfig(3, 1, 3)
	cfg.CityRatio = 0
	cfg.MountainRatio = 0
	rec, err := NewGenerator(cfg, newTestRNG()).GenerateMap("tight")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1, 2}, rec.Generals)
}

func TestGenerateMap_Errors(t *testing.T) {
	_, err := NewGenerator(DefaultMapConfig(0, 5, 2), newTestRNG()).GenerateMap("x")
	assert.Error(t, err)

	cfg := DefaultMapConfig(2, 1, 3)
	_, err = NewGenerator(cfg, newTestRNG()).GenerateMap("x")
	assert.Error(t, err)
}

func TestGenerateRecord_Deterministic(t *testing.T) {
	gen := func() *replay.Record {
		rec, err := NewGenerator(DefaultMapConfig(12, 12, 3), rand.New(rand.NewSource(7))).
			GenerateRecord("seeded", 200, 1)
		require.NoError(t, err)
		return rec
	}
	a, b := gen(), gen()
	assert.Equal(t, a, b)
	assert.NotEmpty(t, a.Moves)
	assert.Len(t, a.AFKs, 1)
}

func TestGenerateMoves(t *testing.T) {
	g := NewGenerator(DefaultMapConfig(10, 10, 2), newTestRNG())
	rec, err := g.GenerateMap("moves")
	require.NoError(t, err)

	moves, afks := g.GenerateMoves(rec, 120, 2)
	require.NotEmpty(t, moves)
	assert.Len(t, afks, 2)
	assert.NotEqual(t, afks[0].Player, afks[1].Player)

	leftAt := map[int]int{}
	for _, a := range afks {
		leftAt[a.Player] = a.Turn
	}
	for i, m := range moves {
		if i > 0 {
			assert.GreaterOrEqual(t, m.Turn, moves[i-1].Turn, "moves must be ordered by turn")
		}
		assert.Less(t, m.Turn, 120)
		sx, sy := m.Start%rec.Width, m.Start/rec.Width
		ex, ey := m.End%rec.Width, m.End/rec.Width
		assert.Equal(t, 1, common.ManhattanDistance(sx, sy, ex, ey))
		if t0, ok := leftAt[m.Player]; ok {
			assert.Less(t, m.Turn, t0, "player %d moved after leaving", m.Player)
		}
	}

	// A generated record survives the wire format.
	rec.Moves, rec.AFKs = moves, afks
	buf, err := replay.Encode(rec)
	require.NoError(t, err)
	decoded, err := replay.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, rec.Moves, decoded.Moves)
	assert.Equal(t, rec.Generals, decoded.Generals)
}
