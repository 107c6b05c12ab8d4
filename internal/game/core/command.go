package core

// Command is a queued attack order: move armies from one cell to an adjacent
// one. Half moves only half of the source army (rounded up stays behind).
type Command struct {
	Player int
	From   int
	To     int
	Half   bool
}

// Validate explains why the command would be rejected on b, or returns nil if
// Board.Attack would accept it.
func (c Command) Validate(b *Board) error {
	if c.Player < 0 {
		return ErrInvalidPlayer
	}
	if !b.IsValidIndex(c.From) || !b.IsValidIndex(c.To) {
		return ErrInvalidCoordinates
	}
	if c.From == c.To {
		return ErrMoveToSelf
	}
	if !b.IsAdjacent(c.From, c.To) {
		return ErrNotAdjacent
	}
	if b.Owner[c.From] != PlayerOwner(c.Player) {
		return ErrNotOwned
	}
	if b.Owner[c.To] == Mountain {
		return ErrTargetIsMountain
	}
	if b.Army[c.From] <= 1 {
		return ErrInsufficientArmy
	}
	return nil
}
