// Package export writes simulated replays to columnar files for offline
// analysis.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/simulator"
)

// TimelineRow is one simulated turn. State holds the msgpack-encoded
// simulator snapshot, so a row is enough to rebuild the full board.
type TimelineRow struct {
	GameID       string `parquet:"game_id,dict"`
	Turn         int32  `parquet:"turn"`
	Width        int32  `parquet:"width"`
	Height       int32  `parquet:"height"`
	AlivePlayers int32  `parquet:"alive_players"`
	Leader       int32  `parquet:"leader"`
	GameOver     bool   `parquet:"game_over"`

	// Standings in rank order.
	Players []TimelinePlayer `parquet:"players"`

	State []byte `parquet:"state,zstd"`
}

// TimelinePlayer is one entry of the standings on a turn.
type TimelinePlayer struct {
	Index    int32  `parquet:"index"`
	Username string `parquet:"username,dict"`
	Total    int32  `parquet:"total"`
	Tiles    int32  `parquet:"tiles"`
	Dead     bool   `parquet:"dead"`
}

const schemaVersion = "timeline_v1"

// Codec maps a configured compression level name to a zstd codec.
func Codec(level string) (*zstd.Codec, error) {
	switch level {
	case "fastest":
		return &zstd.Codec{Level: zstd.SpeedFastest}, nil
	case "", "default":
		return &zstd.Codec{Level: zstd.SpeedDefault}, nil
	case "better":
		return &zstd.Codec{Level: zstd.SpeedBetterCompression}, nil
	case "best":
		return &zstd.Codec{Level: zstd.SpeedBestCompression}, nil
	}
	return nil, fmt.Errorf("unknown compression level %q", level)
}

// TimelineRows builds one row per cached turn of sim.
func TimelineRows(sim *simulator.Simulator) ([]TimelineRow, error) {
	rows := make([]TimelineRow, 0, sim.Snapshots())
	for turn := 0; turn <= sim.MaxTurn(); turn++ {
		snap := sim.SnapshotAt(turn)
		state, err := snap.Encode()
		if err != nil {
			return nil, err
		}

		players := make([]TimelinePlayer, len(snap.Scores))
		for i, s := range snap.Scores {
			p, _ := snap.Player(s.Index)
			players[i] = TimelinePlayer{
				Index:    int32(s.Index),
				Username: p.Username,
				Total:    int32(s.Total),
				Tiles:    int32(s.Tiles),
				Dead:     s.Dead,
			}
		}

		rows = append(rows, TimelineRow{
			GameID:       snap.GameID,
			Turn:         int32(snap.Turn),
			Width:        int32(snap.Width),
			Height:       int32(snap.Height),
			AlivePlayers: int32(snap.AlivePlayers),
			Leader:       int32(snap.Leader()),
			GameOver:     snap.GameOver,
			Players:      players,
			State:        state,
		})
	}
	return rows, nil
}

// WriteTimeline writes the timeline of sim to outPath. The file is written
// next to outPath first and renamed into place.
func WriteTimeline(outPath string, sim *simulator.Simulator, level string) error {
	codec, err := Codec(level)
	if err != nil {
		return err
	}
	rows, err := TimelineRows(sim)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(codec),
		parquet.KeyValueMetadata("schema", schemaVersion),
		parquet.KeyValueMetadata("game_id", sim.GameID()),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadTimeline reads every row of a file written by WriteTimeline.
func ReadTimeline(path string) ([]TimelineRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet %s: %w", path, err)
	}
	if v, ok := pf.Lookup("schema"); ok && v != schemaVersion {
		return nil, fmt.Errorf("unexpected schema %q in %s", v, path)
	}

	reader := parquet.NewGenericReader[TimelineRow](pf)
	defer reader.Close()

	rows := make([]TimelineRow, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows[:n], nil
}
