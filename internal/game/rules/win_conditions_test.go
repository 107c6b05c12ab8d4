package rules

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWinConditionChecker_FreeForAll(t *testing.T) {
	wc := NewWinConditionChecker(zerolog.Nop(), nil)

	tests := []struct {
		name   string
		alive  []bool
		over   bool
		winner int
	}{
		{"everyone alive", []bool{true, true, true}, false, NoWinner},
		{"two left", []bool{true, false, true}, false, NoWinner},
		{"one left", []bool{false, false, true}, true, 2},
		{"nobody left", []bool{false, false}, true, NoWinner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.over, wc.IsOver(tt.alive))
			assert.Equal(t, tt.winner, wc.Winner(tt.alive))
		})
	}
}

func TestWinConditionChecker_Teams(t *testing.T) {
	wc := NewWinConditionChecker(zerolog.Nop(), []int{1, 2, 1, 2})

	tests := []struct {
		name   string
		alive  []bool
		over   bool
		winner int
	}{
		{"both teams alive", []bool{true, true, true, true}, false, NoWinner},
		{"one per team", []bool{false, true, true, false}, false, NoWinner},
		{"team one survives", []bool{true, false, true, false}, true, 0},
		{"single survivor", []bool{false, false, false, true}, true, 3},
		{"nobody alive", []bool{false, false, false, false}, true, NoWinner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.over, wc.IsOver(tt.alive))
			assert.Equal(t, tt.winner, wc.Winner(tt.alive))
		})
	}

	assert.True(t, wc.SameTeam(0, 2))
	assert.False(t, wc.SameTeam(0, 1))
	assert.False(t, NewWinConditionChecker(zerolog.Nop(), nil).SameTeam(0, 1))
}

func TestSortStandings(t *testing.T) {
	deaths := []int{3, 1}
	rank := func(p int) int {
		for i, d := range deaths {
			if d == p {
				return i
			}
		}
		return -1
	}

	scores := []Score{
		{Index: 0, Total: 10, Tiles: 4},
		{Index: 1, Total: 50, Tiles: 9, Dead: true},
		{Index: 2, Total: 10, Tiles: 6},
		{Index: 3, Total: 0, Tiles: 0, Dead: true},
		{Index: 4, Total: 30, Tiles: 2},
		{Index: 5, Total: 10, Tiles: 4},
	}
	SortStandings(scores, rank)

	var order []int
	for _, s := range scores {
		order = append(order, s.Index)
	}
	// 4 leads on army, 2 beats 0 and 5 on land, 0 stays ahead of 5 on a full
	// tie, and player 1 died after player 3.
	assert.Equal(t, []int{4, 2, 0, 5, 1, 3}, order)
}
