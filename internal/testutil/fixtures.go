package testutil

import (
	"testing"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
	"github.com/stretchr/testify/require"
)

// StripRecord is a 4x1 duel: generals at both ends, nothing in between.
//
//	[G0][  ][  ][G1]
func StripRecord() *replay.Record {
	return &replay.Record{
		Version:    7,
		ID:         "strip",
		Width:      4,
		Height:     1,
		Usernames:  []string{"left", "right"},
		Stars:      []int{50, 60},
		Cities:     []int{},
		CityArmies: []int{},
		Generals:   []int{0, 3},
		Mountains:  []int{},
		Moves:      []replay.Move{},
		AFKs:       []replay.AFK{},
		MapTitle:   "Strip",
	}
}

// DuelRecord is a 5x5 two player map with a mountain wall, one city on each
// side and a neutral city in the middle.
//
//	[G0][  ][  ][  ][  ]
//	[  ][C ][M ][  ][  ]
//	[  ][M ][C ][M ][  ]
//	[  ][  ][M ][C ][  ]
//	[  ][  ][  ][  ][G1]
func DuelRecord() *replay.Record {
	return &replay.Record{
		Version:    6,
		ID:         "duel",
		Width:      5,
		Height:     5,
		Usernames:  []string{"alice", "bob"},
		Stars:      []int{70, 65},
		Cities:     []int{6, 12, 18},
		CityArmies: []int{40, 45, 40},
		Generals:   []int{0, 24},
		Mountains:  []int{7, 11, 13, 17},
		Moves:      []replay.Move{},
		AFKs:       []replay.AFK{},
	}
}

// TeamRecord is a 6x1 two-versus-two map. Players 0 and 2 form team 1.
func TeamRecord() *replay.Record {
	return &replay.Record{
		Version:    7,
		ID:         "teams",
		Width:      6,
		Height:     1,
		Usernames:  []string{"a", "b", "c", "d"},
		Stars:      []int{0, 0, 0, 0},
		Cities:     []int{},
		CityArmies: []int{},
		Generals:   []int{0, 2, 3, 5},
		Mountains:  []int{},
		Moves:      []replay.Move{},
		AFKs:       []replay.AFK{},
		Teams:      []int{1, 2, 1, 2},
	}
}

// EncodeRecord compresses rec the way replay files are stored.
func EncodeRecord(t testing.TB, rec *replay.Record) []byte {
	t.Helper()
	buf, err := replay.Encode(rec)
	require.NoError(t, err)
	return buf
}
