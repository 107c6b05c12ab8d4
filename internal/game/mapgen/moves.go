package mapgen

import (
	"sort"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
)

// GenerateMoves produces a reproducible move and afk stream for rec. Moves
// are chosen against a rough shadow of the board so most of them are legal
// when replayed; the shadow ignores general captures.
func (g *Generator) GenerateMoves(rec *replay.Record, turns, disconnects int) ([]replay.Move, []replay.AFK) {
	n := rec.PlayerCount()
	shadow := core.NewBoard(rec.Width, rec.Height, rec.Teams)
	for _, m := range rec.Mountains {
		shadow.SetOwner(m, core.Mountain)
	}
	for i, c := range rec.Cities {
		shadow.SetArmy(c, rec.CityArmies[i])
	}
	for p, gen := range rec.Generals {
		shadow.SetOwner(gen, core.PlayerOwner(p))
		shadow.SetArmy(gen, 1)
	}

	afks := make([]replay.AFK, 0, disconnects)
	leftAt := make(map[int]int)
	for len(afks) < disconnects && len(afks) < n && turns > 0 {
		p := g.rng.Intn(n)
		if _, ok := leftAt[p]; ok {
			continue
		}
		t := g.rng.Intn(turns)
		leftAt[p] = t
		afks = append(afks, replay.AFK{Player: p, Turn: t})
	}
	sort.SliceStable(afks, func(i, j int) bool { return afks[i].Turn < afks[j].Turn })

	moves := []replay.Move{}
	owned := make([]int, 0, shadow.Size())
	for turn := 0; turn < turns; turn++ {
		for p := 0; p < n; p++ {
			if t, ok := leftAt[p]; ok && turn >= t {
				continue
			}
			owned = owned[:0]
			for i := 0; i < shadow.Size(); i++ {
				if shadow.OwnerAt(i) == core.PlayerOwner(p) && shadow.ArmyAt(i) > 1 {
					owned = append(owned, i)
				}
			}
			if len(owned) == 0 {
				continue
			}
			from := owned[g.rng.Intn(len(owned))]
			neighbors := core.FromIndex(from, shadow.W).ValidNeighbors(shadow.W, shadow.H)
			if len(neighbors) == 0 {
				continue
			}
			to := neighbors[g.rng.Intn(len(neighbors))].ToIndex(shadow.W)
			half := g.rng.Intn(6) == 0
			if shadow.Attack(from, to, half, rec.Generals) {
				moves = append(moves, replay.Move{Player: p, Start: from, End: to, Half: half, Turn: turn})
			}
		}
		growShadow(shadow, rec, turn+1)
	}
	return moves, afks
}

func growShadow(b *core.Board, rec *replay.Record, turn int) {
	if turn%2 == 0 {
		for _, gen := range rec.Generals {
			b.IncrementArmy(gen)
		}
		for _, c := range rec.Cities {
			if b.OwnerAt(c).IsPlayer() {
				b.IncrementArmy(c)
			}
		}
	}
	if turn%50 == 0 {
		for i := 0; i < b.Size(); i++ {
			if b.OwnerAt(i).IsPlayer() {
				b.IncrementArmy(i)
			}
		}
	}
}
