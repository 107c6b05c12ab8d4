package replay

// Move is one recorded attack order. Turn is the match turn at which it was
// buffered; Half moves split the source army.
type Move struct {
	Player int
	Start  int
	End    int
	Half   bool
	Turn   int
}

// AFK marks the turn at which a player left the match.
type AFK struct {
	Player int
	Turn   int
}

// Record is a decoded replay. It is never modified after Decode returns.
type Record struct {
	Version    int
	ID         string
	Width      int
	Height     int
	Usernames  []string
	Stars      []int
	Cities     []int
	CityArmies []int
	Generals   []int
	Mountains  []int
	Moves      []Move
	AFKs       []AFK
	// Teams maps player index to team id. Nil for free-for-all matches.
	Teams []int
	// MapTitle is only recorded from version 7 on.
	MapTitle string

	// Trailing fields written by newer servers. All optional.
	Neutrals      []int
	NeutralArmies []int
	Swamps        []int
	PlayerColors  []int
}

// PlayerCount is the number of seats, one per recorded general.
func (r *Record) PlayerCount() int { return len(r.Generals) }

// HasTeams reports whether the match was played in teams.
func (r *Record) HasTeams() bool { return len(r.Teams) > 0 }

// Username returns the recorded name of player i, or "" if none was stored.
func (r *Record) Username(i int) string {
	if i < 0 || i >= len(r.Usernames) {
		return ""
	}
	return r.Usernames[i]
}

// StarsOf returns the recorded rating of player i, or 0.
func (r *Record) StarsOf(i int) int {
	if i < 0 || i >= len(r.Stars) {
		return 0
	}
	return r.Stars[i]
}

// LastTurn is the turn of the latest recorded move or afk.
func (r *Record) LastTurn() int {
	last := 0
	if n := len(r.Moves); n > 0 {
		last = r.Moves[n-1].Turn
	}
	if n := len(r.AFKs); n > 0 && r.AFKs[n-1].Turn > last {
		last = r.AFKs[n-1].Turn
	}
	return last
}
