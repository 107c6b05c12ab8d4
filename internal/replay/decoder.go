package replay

import (
	"bytes"
	"math"
	"sort"

	lzstring "github.com/daku10/go-lz-string"
	"github.com/goccy/go-json"
)

// Positional layout of the serialized replay array.
const (
	fieldVersion = iota
	fieldID
	fieldWidth
	fieldHeight
	fieldUsernames
	fieldStars
	fieldCities
	fieldCityArmies
	fieldGenerals
	fieldMountains
	fieldMoves
	fieldAFKs
	fieldTeams
	fieldMapTitle
	fieldNeutrals
	fieldNeutralArmies
	fieldSwamps
	fieldChat
	fieldPlayerColors
	fieldLights

	requiredFields = fieldTeams + 1
)

// titleVersion is the first format version that records a map title.
const titleVersion = 7

// MaxCells bounds Width*Height. Real maps are far smaller; anything above
// this is treated as a corrupt header rather than allocated.
const MaxCells = 1 << 22

var fieldNames = [...]string{
	fieldVersion:       "version",
	fieldID:            "id",
	fieldWidth:         "mapWidth",
	fieldHeight:        "mapHeight",
	fieldUsernames:     "usernames",
	fieldStars:         "stars",
	fieldCities:        "cities",
	fieldCityArmies:    "cityArmies",
	fieldGenerals:      "generals",
	fieldMountains:     "mountains",
	fieldMoves:         "moves",
	fieldAFKs:          "afks",
	fieldTeams:         "teams",
	fieldMapTitle:      "mapTitle",
	fieldNeutrals:      "neutrals",
	fieldNeutralArmies: "neutralArmies",
	fieldSwamps:        "swamps",
	fieldChat:          "chat",
	fieldPlayerColors:  "playerColors",
	fieldLights:        "lights",
}

// Decode turns a compressed replay buffer into a Record. It is pure: the same
// bytes always produce an identical Record. Only the shape of the data is
// checked, never whether the recorded match is legal.
func Decode(buf []byte) (*Record, error) {
	raw, err := lzstring.DecompressFromUint8Array(buf)
	if err != nil {
		return nil, &DecodeError{Index: -1, Err: wrapCause(ErrDecompress, err)}
	}
	if raw == "" {
		return nil, &DecodeError{Index: -1, Err: ErrDecompress}
	}
	return decodeJSON([]byte(raw))
}

func decodeJSON(data []byte) (*Record, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, &DecodeError{Index: -1, Err: ErrMalformed}
	}
	var fields []json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, &DecodeError{Index: -1, Err: wrapCause(ErrMalformed, err)}
	}
	if len(fields) < requiredFields {
		return nil, &DecodeError{
			Index: len(fields),
			Field: fieldNames[len(fields)],
			Err:   ErrTruncated,
		}
	}

	d := fieldDecoder{fields: fields}
	rec := &Record{}
	d.scalar(fieldVersion, &rec.Version)
	d.id(&rec.ID)
	d.scalar(fieldWidth, &rec.Width)
	d.scalar(fieldHeight, &rec.Height)
	d.scalar(fieldUsernames, &rec.Usernames)
	rec.Stars = d.stars()
	d.scalar(fieldCities, &rec.Cities)
	d.scalar(fieldCityArmies, &rec.CityArmies)
	d.scalar(fieldGenerals, &rec.Generals)
	d.scalar(fieldMountains, &rec.Mountains)
	rec.Moves = d.moves()
	rec.AFKs = d.afks()
	d.scalar(fieldTeams, &rec.Teams)
	if len(rec.Teams) == 0 {
		rec.Teams = nil
	}
	if rec.Version >= titleVersion {
		optional(&d, fieldMapTitle, &rec.MapTitle)
	}
	optional(&d, fieldNeutrals, &rec.Neutrals)
	optional(&d, fieldNeutralArmies, &rec.NeutralArmies)
	optional(&d, fieldSwamps, &rec.Swamps)
	optional(&d, fieldPlayerColors, &rec.PlayerColors)
	if d.err != nil {
		return nil, d.err
	}

	if err := checkShape(rec); err != nil {
		return nil, err
	}

	sort.SliceStable(rec.Moves, func(i, j int) bool { return rec.Moves[i].Turn < rec.Moves[j].Turn })
	sort.SliceStable(rec.AFKs, func(i, j int) bool { return rec.AFKs[i].Turn < rec.AFKs[j].Turn })
	return rec, nil
}

func checkShape(rec *Record) error {
	if rec.Width <= 0 {
		return fieldError(fieldWidth, ErrMalformed, "width must be positive, got %d", rec.Width)
	}
	if rec.Height <= 0 {
		return fieldError(fieldHeight, ErrMalformed, "height must be positive, got %d", rec.Height)
	}
	if rec.Width > MaxCells/rec.Height {
		return fieldError(fieldWidth, ErrMalformed, "%dx%d map exceeds %d cells", rec.Width, rec.Height, MaxCells)
	}
	if len(rec.CityArmies) != len(rec.Cities) {
		return fieldError(fieldCityArmies, ErrMalformed, "%d armies for %d cities", len(rec.CityArmies), len(rec.Cities))
	}
	if len(rec.NeutralArmies) != len(rec.Neutrals) {
		rec.Neutrals, rec.NeutralArmies = nil, nil
	}
	return nil
}

// fieldDecoder keeps the first error so the field list reads top to bottom.
type fieldDecoder struct {
	fields []json.RawMessage
	err    error
}

func (d *fieldDecoder) scalar(idx int, dst any) {
	if d.err != nil {
		return
	}
	if err := json.Unmarshal(d.fields[idx], dst); err != nil {
		d.err = fieldError(idx, ErrMalformed, "%v", err)
	}
}

// optional decodes a trailing field if present. Unknown shapes are skipped
// and leave dst untouched; newer servers have changed some of them between
// versions.
func optional[T any](d *fieldDecoder, idx int, dst *T) {
	if d.err != nil || idx >= len(d.fields) {
		return
	}
	var v T
	if err := json.Unmarshal(d.fields[idx], &v); err != nil {
		return
	}
	*dst = v
}

// id accepts both string and numeric replay ids.
func (d *fieldDecoder) id(dst *string) {
	if d.err != nil {
		return
	}
	raw := d.fields[fieldID]
	if err := json.Unmarshal(raw, dst); err == nil {
		return
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		d.err = fieldError(fieldID, ErrMalformed, "%v", err)
		return
	}
	*dst = n.String()
}

// stars tolerates null entries for unrated players.
func (d *fieldDecoder) stars() []int {
	if d.err != nil {
		return nil
	}
	var raw []*float64
	if err := json.Unmarshal(d.fields[fieldStars], &raw); err != nil {
		d.err = fieldError(fieldStars, ErrMalformed, "%v", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	out := make([]int, len(raw))
	for i, v := range raw {
		if v != nil {
			out[i] = int(math.Round(*v))
		}
	}
	return out
}

func (d *fieldDecoder) moves() []Move {
	if d.err != nil {
		return nil
	}
	var raw [][]int
	if err := json.Unmarshal(d.fields[fieldMoves], &raw); err != nil {
		d.err = fieldError(fieldMoves, ErrMalformed, "%v", err)
		return nil
	}
	out := make([]Move, 0, len(raw))
	for i, m := range raw {
		if len(m) < 5 {
			d.err = fieldError(fieldMoves, ErrMalformed, "move %d has %d values, want 5", i, len(m))
			return nil
		}
		out = append(out, Move{Player: m[0], Start: m[1], End: m[2], Half: m[3] != 0, Turn: m[4]})
	}
	return out
}

func (d *fieldDecoder) afks() []AFK {
	if d.err != nil {
		return nil
	}
	var raw [][]int
	if err := json.Unmarshal(d.fields[fieldAFKs], &raw); err != nil {
		d.err = fieldError(fieldAFKs, ErrMalformed, "%v", err)
		return nil
	}
	out := make([]AFK, 0, len(raw))
	for i, a := range raw {
		if len(a) < 2 {
			d.err = fieldError(fieldAFKs, ErrMalformed, "afk %d has %d values, want 2", i, len(a))
			return nil
		}
		out = append(out, AFK{Player: a[0], Turn: a[1]})
	}
	return out
}
