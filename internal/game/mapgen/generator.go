package mapgen

import (
	"fmt"
	"math/rand"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/common"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/config"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
)

// MapConfig holds configuration for synthetic replay generation
type MapConfig struct {
	Width             int
	Height            int
	PlayerCount       int
	Teams             int // 0 for free-for-all
	CityRatio         int // 1 city per N cells, 0 for none
	CityStartArmy     int
	MountainRatio     int // 1 mountain per N cells, 0 for none
	SwampRatio        int // 1 swamp per N cells, 0 for none
	MinGeneralSpacing int
	Version           int
}

// DefaultMapConfig returns a sensible default configuration
func DefaultMapConfig(w, h, players int) MapConfig {
	return MapConfig{
		Width:             w,
		Height:            h,
		PlayerCount:       players,
		CityRatio:         20,
		CityStartArmy:     40,
		MountainRatio:     6,
		MinGeneralSpacing: 5,
		Version:           7,
	}
}

// MapConfigFromSettings builds a MapConfig from the generator config section.
func MapConfigFromSettings(c config.GeneratorConfig) MapConfig {
	return MapConfig{
		Width:             c.Width,
		Height:            c.Height,
		PlayerCount:       c.Players,
		Teams:             c.Teams,
		CityRatio:         c.CityRatio,
		CityStartArmy:     c.CityStartArmy,
		MountainRatio:     c.MountainRatio,
		SwampRatio:        c.SwampRatio,
		MinGeneralSpacing: c.MinGeneralSpacing,
		Version:           7,
	}
}

// Generator produces replay records with deterministic RNG
type Generator struct {
	config MapConfig
	rng    *rand.Rand
}

// NewGenerator creates a new map generator
func NewGenerator(config MapConfig, rng *rand.Rand) *Generator {
	return &Generator{
		config: config,
		rng:    rng,
	}
}

// GenerateMap lays out terrain, cities and generals. The returned record has
// no moves.
func (g *Generator) GenerateMap(id string) (*replay.Record, error) {
	c := g.config
	if c.Width <= 0 || c.Height <= 0 || c.PlayerCount <= 0 {
		return nil, fmt.Errorf("invalid map config %dx%d with %d players", c.Width, c.Height, c.PlayerCount)
	}

	board := core.NewBoard(c.Width, c.Height, nil)
	taken := make([]bool, board.Size())

	rec := &replay.Record{
		Version:    c.Version,
		ID:         id,
		Width:      c.Width,
		Height:     c.Height,
		Usernames:  make([]string, c.PlayerCount),
		Stars:      make([]int, c.PlayerCount),
		Cities:     []int{},
		CityArmies: []int{},
		Mountains:  []int{},
		Moves:      []replay.Move{},
		AFKs:       []replay.AFK{},
	}
	if c.Version >= 7 {
		rec.MapTitle = fmt.Sprintf("Generated %dx%d", c.Width, c.Height)
	}
	for i := range rec.Usernames {
		rec.Usernames[i] = fmt.Sprintf("bot-%d", i)
		rec.Stars[i] = g.rng.Intn(100)
	}

	generals, err := g.placeGenerals(board, taken)
	if err != nil {
		return nil, err
	}
	rec.Generals = generals

	rec.Mountains = g.scatter(taken, c.MountainRatio)
	rec.Cities = g.scatter(taken, c.CityRatio)
	for range rec.Cities {
		rec.CityArmies = append(rec.CityArmies, c.CityStartArmy+g.rng.Intn(11))
	}
	if c.SwampRatio > 0 {
		rec.Swamps = g.scatter(taken, c.SwampRatio)
	}

	if c.Teams > 1 {
		rec.Teams = make([]int, c.PlayerCount)
		for i := range rec.Teams {
			rec.Teams[i] = i%c.Teams + 1
		}
	}
	return rec, nil
}

// scatter marks size/ratio free cells and returns them in ascending order.
func (g *Generator) scatter(taken []bool, ratio int) []int {
	out := []int{}
	if ratio <= 0 {
		return out
	}
	want := len(taken) / ratio
	maxAttempts := want * 10
	for attempts := 0; len(out) < want && attempts < maxAttempts; attempts++ {
		idx := g.rng.Intn(len(taken))
		if taken[idx] {
			continue
		}
		taken[idx] = true
		out = append(out, idx)
	}
	return out
}

func (g *Generator) placeGenerals(b *core.Board, taken []bool) ([]int, error) {
	generals := make([]int, 0, g.config.PlayerCount)
	for pid := 0; pid < g.config.PlayerCount; pid++ {
		idx, ok := g.findGeneralLocation(b, taken, generals)
		if !ok {
			return nil, fmt.Errorf("unable to place general %d on a %dx%d map", pid, b.W, b.H)
		}
		taken[idx] = true
		generals = append(generals, idx)
	}
	return generals, nil
}

func (g *Generator) findGeneralLocation(b *core.Board, taken []bool, existing []int) (int, bool) {
	spaced := func(idx int) bool {
		x, y := b.XY(idx)
		for _, other := range existing {
			ox, oy := b.XY(other)
			if common.ManhattanDistance(x, y, ox, oy) < g.config.MinGeneralSpacing {
				return false
			}
		}
		return true
	}

	for attempts := 0; attempts < b.Size(); attempts++ {
		idx := g.rng.Intn(b.Size())
		if !taken[idx] && spaced(idx) {
			return idx, true
		}
	}
	// Spacing could not be met; take the first free cell.
	for idx := range taken {
		if !taken[idx] {
			return idx, true
		}
	}
	return 0, false
}

// GenerateRecord builds a map and a move stream covering turns turns, with
// disconnects players leaving at random turns.
func (g *Generator) GenerateRecord(id string, turns, disconnects int) (*replay.Record, error) {
	rec, err := g.GenerateMap(id)
	if err != nil {
		return nil, err
	}
	rec.Moves, rec.AFKs = g.GenerateMoves(rec, turns, disconnects)
	return rec, nil
}
