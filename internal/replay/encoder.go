package replay

import (
	"fmt"

	lzstring "github.com/daku10/go-lz-string"
	"github.com/goccy/go-json"
)

// Encode serializes rec into the compressed positional format read by Decode.
func Encode(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("encode replay: nil record")
	}
	data, err := json.Marshal(encodeFields(rec))
	if err != nil {
		return nil, fmt.Errorf("encode replay: %w", err)
	}
	buf, err := lzstring.CompressToUint8Array(string(data))
	if err != nil {
		return nil, fmt.Errorf("encode replay: compress: %w", err)
	}
	return buf, nil
}

func encodeFields(rec *Record) []any {
	moves := make([][5]int, len(rec.Moves))
	for i, m := range rec.Moves {
		half := 0
		if m.Half {
			half = 1
		}
		moves[i] = [5]int{m.Player, m.Start, m.End, half, m.Turn}
	}
	afks := make([][2]int, len(rec.AFKs))
	for i, a := range rec.AFKs {
		afks[i] = [2]int{a.Player, a.Turn}
	}

	var teams any
	if rec.Teams != nil {
		teams = rec.Teams
	}

	fields := []any{
		rec.Version,
		rec.ID,
		rec.Width,
		rec.Height,
		orEmpty(rec.Usernames),
		orEmpty(rec.Stars),
		orEmpty(rec.Cities),
		orEmpty(rec.CityArmies),
		orEmpty(rec.Generals),
		orEmpty(rec.Mountains),
		moves,
		afks,
		teams,
	}

	trailing := rec.Neutrals != nil || rec.Swamps != nil || rec.PlayerColors != nil
	if rec.Version < titleVersion && !trailing {
		return fields
	}
	var title any
	if rec.Version >= titleVersion {
		title = rec.MapTitle
	}
	fields = append(fields, title)
	if !trailing {
		return fields
	}
	return append(fields,
		orEmpty(rec.Neutrals),
		orEmpty(rec.NeutralArmies),
		orEmpty(rec.Swamps),
		[]any{},
		orEmpty(rec.PlayerColors),
		[]any{},
	)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
