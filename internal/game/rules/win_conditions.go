package rules

import "github.com/rs/zerolog"

// NoWinner is returned by Winner while the match is undecided or drawn.
const NoWinner = -1

// WinConditionChecker handles game over detection and winner determination
type WinConditionChecker struct {
	logger zerolog.Logger
	teams  []int
}

// NewWinConditionChecker creates a checker. teams maps player index to team
// id; nil means free-for-all.
func NewWinConditionChecker(logger zerolog.Logger, teams []int) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
		teams:  teams,
	}
}

// IsOver reports whether the match has ended. In free-for-all at most one
// player may remain. With teams every living player must share a team.
// A match with nobody left alive is over in both modes.
func (wc *WinConditionChecker) IsOver(alive []bool) bool {
	if wc.teams == nil {
		n := 0
		for _, a := range alive {
			if a {
				n++
			}
		}
		return n <= 1
	}

	team, seen := 0, false
	for p, a := range alive {
		if !a {
			continue
		}
		t := wc.teamOf(p)
		if !seen {
			team, seen = t, true
			continue
		}
		if t != team {
			return false
		}
	}
	return true
}

// Winner returns the surviving player, or the lowest-index living player of
// the surviving team. NoWinner if the match is not over or nobody survived.
func (wc *WinConditionChecker) Winner(alive []bool) int {
	if !wc.IsOver(alive) {
		return NoWinner
	}
	for p, a := range alive {
		if a {
			wc.logger.Info().Int("winner_player_id", p).Msg("Winner determined")
			return p
		}
	}
	wc.logger.Info().Msg("No winner found (all players eliminated)")
	return NoWinner
}

// SameTeam reports whether two players are allies. Always false in
// free-for-all unless a == b.
func (wc *WinConditionChecker) SameTeam(a, b int) bool {
	if a == b {
		return true
	}
	if wc.teams == nil {
		return false
	}
	return wc.teamOf(a) == wc.teamOf(b)
}

func (wc *WinConditionChecker) teamOf(p int) int {
	if p < 0 || p >= len(wc.teams) {
		return -1 - p
	}
	return wc.teams[p]
}
