package core

import (
	"fmt"
	"math"
)

// Owner is the occupant of a cell: a player index (0..N-1) or one of the
// terrain sentinels below. Values compare exactly like the raw integers used
// by the replay format.
type Owner int

const (
	Empty       Owner = -1
	Mountain    Owner = -2
	Fog         Owner = -3
	FogObstacle Owner = -4
)

// PlayerOwner returns the Owner for player index idx.
func PlayerOwner(idx int) Owner {
	if idx < 0 {
		return Empty
	}
	return Owner(idx)
}

func (o Owner) IsPlayer() bool   { return o >= 0 }
func (o Owner) IsEmpty() bool    { return o == Empty }
func (o Owner) IsMountain() bool { return o == Mountain }

// Player returns the player index, or -1 for terrain owners.
func (o Owner) Player() int {
	if o.IsPlayer() {
		return int(o)
	}
	return -1
}

func (o Owner) String() string {
	switch o {
	case Empty:
		return "empty"
	case Mountain:
		return "mountain"
	case Fog:
		return "fog"
	case FogObstacle:
		return "fog_obstacle"
	}
	if o.IsPlayer() {
		return fmt.Sprintf("player(%d)", int(o))
	}
	return fmt.Sprintf("Owner(%d)", int(o))
}

// Board is a W*H grid stored as two parallel row-major arrays.
// Teams maps player index -> team id; nil means free-for-all.
type Board struct {
	W, H  int
	Owner []Owner
	Army  []int
	Teams []int
}

func NewBoard(w, h int, teams []int) *Board {
	b := &Board{
		W:     w,
		H:     h,
		Owner: make([]Owner, w*h),
		Army:  make([]int, w*h),
	}
	for i := range b.Owner {
		b.Owner[i] = Empty
	}
	if teams != nil {
		b.Teams = append([]int(nil), teams...)
	}
	return b
}

func (b *Board) Size() int               { return len(b.Owner) }
func (b *Board) Idx(x, y int) int        { return y*b.W + x }
func (b *Board) XY(idx int) (int, int)   { return idx % b.W, idx / b.W }
func (b *Board) IsValidIndex(i int) bool { return i >= 0 && i < len(b.Owner) }

// InBounds checks if coordinates are within board boundaries
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.W && y >= 0 && y < b.H
}

func (b *Board) OwnerAt(i int) Owner { return b.Owner[i] }
func (b *Board) ArmyAt(i int) int    { return b.Army[i] }

func (b *Board) SetOwner(i int, o Owner) { b.Owner[i] = o }
func (b *Board) SetArmy(i int, army int) { b.Army[i] = army }
func (b *Board) IncrementArmy(i int)     { b.Army[i]++ }

// DecrementArmy removes one unit from cell i, never going below zero.
func (b *Board) DecrementArmy(i int) {
	if b.Army[i] > 0 {
		b.Army[i]--
	}
}

// Distance returns the Manhattan distance between two cell indices.
func (b *Board) Distance(i1, i2 int) int {
	return FromIndex(i1, b.W).DistanceTo(FromIndex(i2, b.W))
}

// IsAdjacent reports whether two cells are orthogonal neighbours.
func (b *Board) IsAdjacent(i1, i2 int) bool {
	return b.Distance(i1, i2) == 1
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{
		W:     b.W,
		H:     b.H,
		Owner: append([]Owner(nil), b.Owner...),
		Army:  append([]int(nil), b.Army...),
	}
	if b.Teams != nil {
		c.Teams = append([]int(nil), b.Teams...)
	}
	return c
}

func (b *Board) teamOf(o Owner) (int, bool) {
	if !o.IsPlayer() || int(o) >= len(b.Teams) {
		return 0, false
	}
	return b.Teams[o], true
}

// friendly reports whether a move from an owner a onto a cell owned by c is a
// reinforcement rather than an attack. Owners without a team only match each
// other.
func (b *Board) friendly(a, c Owner) bool {
	if a == c {
		return true
	}
	if b.Teams == nil {
		return false
	}
	ta, okA := b.teamOf(a)
	tc, okC := b.teamOf(c)
	if !okA || !okC {
		return !okA && !okC
	}
	return ta == tc
}

// Attack moves armies from one cell to an adjacent one and resolves combat.
// It returns false and leaves the board untouched when the move is not
// possible. A general cell is never absorbed by an allied move.
func (b *Board) Attack(from, to int, half bool, generals []int) bool {
	if !b.IsValidIndex(from) || !b.IsValidIndex(to) {
		return false
	}
	if !b.IsAdjacent(from, to) {
		return false
	}
	if b.Owner[to] == Mountain {
		return false
	}
	if b.Army[from] <= 1 {
		return false
	}

	reserve := 1
	if half {
		reserve = (b.Army[from] + 1) / 2
	}
	moving := b.Army[from] - reserve
	attacker := b.Owner[from]

	switch {
	case b.friendly(attacker, b.Owner[to]):
		b.Army[to] += moving
		if !containsIndex(generals, to) {
			b.Owner[to] = attacker
		}
	case b.Army[to] >= moving:
		// Ties go to the defender.
		b.Army[to] -= moving
	default:
		b.Army[to] = moving - b.Army[to]
		b.Owner[to] = attacker
	}

	b.Army[from] = reserve
	return true
}

// ReplaceAll hands every cell owned by oldOwner to newOwner, multiplying its
// army by scale and rounding half up. A scale <= 0 is treated as 1.
func (b *Board) ReplaceAll(oldOwner, newOwner Owner, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	replaced := 0
	for i, o := range b.Owner {
		if o != oldOwner {
			continue
		}
		b.Owner[i] = newOwner
		if scale != 1 {
			b.Army[i] = int(math.Floor(float64(b.Army[i])*scale + 0.5))
		}
		replaced++
	}
	return replaced
}

func containsIndex(list []int, idx int) bool {
	for _, v := range list {
		if v == idx {
			return true
		}
	}
	return false
}
