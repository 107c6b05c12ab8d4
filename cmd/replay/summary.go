package main

import (
	"fmt"
	"io"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/simulator"
)

func printSummary(out io.Writer, sim *simulator.Simulator, timeline []events.Event) {
	rec := sim.Record()
	final := sim.SnapshotAt(sim.MaxTurn())

	title := rec.MapTitle
	if title == "" {
		title = "untitled"
	}
	fmt.Fprintf(out, "Replay %s (v%d, %dx%d, %s)\n", rec.ID, rec.Version, rec.Width, rec.Height, title)

	switch {
	case sim.Overrun():
		fmt.Fprintf(out, "Stopped at turn %d without a winner\n", sim.MaxTurn())
	case final.Leader() >= 0 && final.IsAlive(final.Leader()):
		p, _ := final.Player(final.Leader())
		fmt.Fprintf(out, "%s wins on turn %d\n", p.Username, sim.MaxTurn())
	default:
		fmt.Fprintf(out, "Game over on turn %d\n", sim.MaxTurn())
	}

	fmt.Fprintln(out, "\nStandings:")
	for rank, s := range final.Scores {
		p, _ := final.Player(s.Index)
		status := "alive"
		if s.Dead {
			status = "dead"
		}
		fmt.Fprintf(out, "%2d. %-18s %6d army %4d land  %s\n", rank+1, p.Username, s.Total, s.Tiles, status)
	}

	if len(timeline) == 0 {
		return
	}
	fmt.Fprintln(out, "\nTimeline:")
	name := func(i int) string {
		if p, ok := final.Player(i); ok {
			return p.Username
		}
		return "neutral"
	}
	for _, e := range timeline {
		switch ev := e.(type) {
		case *events.GeneralCapturedEvent:
			fmt.Fprintf(out, "  turn %4d  %s captured %s's general\n", ev.Turn(), name(ev.Captor), name(ev.Defeated))
		case *events.PlayerDisconnectedEvent:
			fmt.Fprintf(out, "  turn %4d  %s disconnected\n", ev.Turn(), name(ev.PlayerID))
		case *events.PlayerNeutralizedEvent:
			fmt.Fprintf(out, "  turn %4d  %s's land was handed over\n", ev.Turn(), name(ev.PlayerID))
		case *events.PlayerEliminatedEvent:
			fmt.Fprintf(out, "  turn %4d  %s eliminated (rank %d)\n", ev.Turn(), name(ev.PlayerID), ev.Rank)
		}
	}
}
