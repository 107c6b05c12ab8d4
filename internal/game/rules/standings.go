package rules

import "sort"

// Score is one player's standing for a turn.
type Score struct {
	Index int
	Total int
	Tiles int
	Dead  bool
}

// SortStandings orders scores in place: living players first by army then
// land, dead players after them with the most recent death first. deathRank
// returns a player's position in the death order. Ties keep index order.
func SortStandings(scores []Score, deathRank func(player int) int) {
	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Dead != b.Dead {
			return !a.Dead
		}
		if a.Dead {
			return deathRank(a.Index) > deathRank(b.Index)
		}
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.Tiles > b.Tiles
	})
}
