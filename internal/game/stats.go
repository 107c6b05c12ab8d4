package game

import "github.com/mitchelldurbincs/GeneralsReplay/internal/game/rules"

// recalculateScores rebuilds Scores from a single board scan and sorts them
// into standings order.
func (m *Match) recalculateScores() {
	if cap(m.Scores) < len(m.Players) {
		m.Scores = make([]Score, len(m.Players))
	}
	m.Scores = m.Scores[:len(m.Players)]
	for i := range m.Scores {
		m.Scores[i] = Score{Index: i, Dead: m.IsDead(i)}
	}

	b := m.Board
	for i := 0; i < b.Size(); i++ {
		o := b.OwnerAt(i)
		if !o.IsPlayer() || int(o) >= len(m.Scores) {
			continue
		}
		m.Scores[o].Total += b.ArmyAt(i)
		m.Scores[o].Tiles++
	}

	rules.SortStandings(m.Scores, m.deathRank)
}

// ScoreOf returns the current score of player, independent of standings order.
func (m *Match) ScoreOf(player int) (Score, bool) {
	for _, s := range m.Scores {
		if s.Index == player {
			return s, true
		}
	}
	return Score{}, false
}

// Leader returns the player index at the top of the standings, or -1.
func (m *Match) Leader() int {
	if len(m.Scores) == 0 {
		return -1
	}
	return m.Scores[0].Index
}
