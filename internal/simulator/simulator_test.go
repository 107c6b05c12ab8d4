package simulator

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/core"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/mapgen"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/replay"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/testutil"
)

func generatedRecord(t testing.TB, seed int64, turns int) *replay.Record {
	t.Helper()
	g := mapgen.NewGenerator(mapgen.DefaultMapConfig(12, 12, 3), rand.New(rand.NewSource(seed)))
	rec, err := g.GenerateRecord("generated", turns, 1)
	require.NoError(t, err)
	return rec
}

func newRecordingBus() (*events.EventBus, *events.Recorder) {
	bus := events.NewEventBusWithLogger(testutil.NopLogger())
	r := events.NewRecorder("sim-test", events.TypeGameEnded, events.TypeSimulationOverrun, events.TypeGameStarted)
	bus.Subscribe(r)
	return bus, r
}

func TestNew_FullSendFromRecordedMove(t *testing.T) {
	rec := testutil.StripRecord()
	rec.Moves = []replay.Move{{Player: 0, Start: 0, End: 1, Turn: 8}}
	bus, recorder := newRecordingBus()

	sim, err := New(rec, WithMaxTurns(20), WithEventBus(bus), WithLogger(testutil.NopLogger()))
	require.NoError(t, err)

	before := sim.SnapshotAt(8)
	assert.Equal(t, core.Empty, before.OwnerAt(1))
	assert.Equal(t, 5, before.ArmyAt(0))

	after := sim.SnapshotAt(9)
	assert.Equal(t, 9, after.Turn)
	assert.Equal(t, []core.Owner{0, 0, core.Empty, 1}, after.Owners)
	assert.Equal(t, []int{1, 4, 0, 5}, after.Armies)

	assert.True(t, sim.Overrun())
	assert.ErrorIs(t, sim.Err(), ErrSimulationOverrun)
	assert.Equal(t, 20, sim.MaxTurn())
	assert.Equal(t, 21, sim.Snapshots())
	sim.JumpToTurn(sim.MaxTurn())
	assert.False(t, sim.IsGameOver(), "an overrun never counts as game over")

	assert.Len(t, recorder.OfType(events.TypeGameStarted), 1)
	overruns := recorder.OfType(events.TypeSimulationOverrun)
	require.Len(t, overruns, 1)
	assert.Equal(t, 20, overruns[0].(*events.SimulationOverrunEvent).MaxTurns)
	assert.Empty(t, recorder.OfType(events.TypeGameEnded))
}

func TestNew_DisconnectAtTurnFive(t *testing.T) {
	rec := testutil.StripRecord()
	rec.AFKs = []replay.AFK{{Player: 1, Turn: 5}}
	bus, recorder := newRecordingBus()

	sim, err := New(rec, WithEventBus(bus))
	require.NoError(t, err)
	require.NoError(t, sim.Err())

	assert.Equal(t, 6, sim.MaxTurn(), "the game ends on the tick after the disconnect")

	atFive := sim.SnapshotAt(5)
	assert.Equal(t, 2, atFive.AlivePlayers)
	assert.True(t, atFive.IsAlive(1))
	assert.False(t, atFive.GameOver)

	last := sim.SnapshotAt(6)
	assert.Equal(t, 1, last.AlivePlayers)
	assert.Equal(t, []int{1}, last.Deaths)
	assert.False(t, last.IsAlive(1))
	assert.True(t, last.IsAlive(0))
	assert.Equal(t, core.PlayerOwner(1), last.OwnerAt(3), "a disconnect alone keeps the land")
	assert.True(t, last.GameOver)

	ended := recorder.OfType(events.TypeGameEnded)
	require.Len(t, ended, 1)
	ev := ended[0].(*events.GameEndedEvent)
	assert.Equal(t, 0, ev.Winner)
	assert.Equal(t, 6, ev.FinalTurn)
}

func TestNew_LogsWinnerOnce(t *testing.T) {
	rec := testutil.StripRecord()
	rec.AFKs = []replay.AFK{{Player: 1, Turn: 5}}
	var buf bytes.Buffer

	sim, err := New(rec, WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))
	require.NoError(t, err)
	require.True(t, sim.SnapshotAt(sim.MaxTurn()).GameOver)

	assert.Equal(t, 1, strings.Count(buf.String(), "Winner determined"))
	assert.Equal(t, 1, strings.Count(buf.String(), "Simulation complete"))
}

func TestSimulator_Navigation(t *testing.T) {
	rec := testutil.StripRecord()
	rec.AFKs = []replay.AFK{{Player: 1, Turn: 5}}
	sim, err := New(rec)
	require.NoError(t, err)

	assert.Equal(t, 0, sim.CurrentTurn())
	assert.False(t, sim.IsGameOver())

	assert.Equal(t, 1, sim.AdvanceOneTurn())
	assert.Equal(t, 0, sim.RewindOneTurn())
	assert.Equal(t, 0, sim.RewindOneTurn(), "rewinding past the start clamps")

	assert.Equal(t, 6, sim.JumpToTurn(100), "jumping past the end clamps")
	assert.Equal(t, 6, sim.CurrentTurn())
	assert.True(t, sim.IsGameOver())
	assert.True(t, sim.CurrentSnapshot().GameOver)
	assert.Equal(t, 6, sim.AdvanceOneTurn())

	assert.Equal(t, 5, sim.RewindOneTurn())
	assert.False(t, sim.IsGameOver())
	assert.Equal(t, 0, sim.JumpToTurn(-3))

	assert.Equal(t, sim.SnapshotAt(6), sim.SnapshotAt(1000))
	assert.Equal(t, sim.SnapshotAt(0), sim.SnapshotAt(-1))
}

func TestSimulator_SnapshotsAreIndependent(t *testing.T) {
	sim, err := New(generatedRecord(t, 3, 40), WithMaxTurns(40))
	require.NoError(t, err)

	snap := sim.SnapshotAt(10)
	snap.Armies[0] = 999
	snap.Owners[0] = core.Mountain
	snap.Scores[0].Total = -1
	snap.Players[0].Username = "changed"

	fresh := sim.SnapshotAt(10)
	assert.NotEqual(t, 999, fresh.Armies[0])
	assert.NotEqual(t, core.Mountain, fresh.Owners[0])
	assert.NotEqual(t, -1, fresh.Scores[0].Total)
	assert.NotEqual(t, "changed", fresh.Players[0].Username)

	// Moving the current position does not disturb the cache.
	sim.JumpToTurn(10)
	cur := sim.CurrentSnapshot()
	assert.Equal(t, fresh, cur)
	sim.AdvanceOneTurn()
	assert.Equal(t, fresh, sim.SnapshotAt(10))
}

func TestSimulator_Deterministic(t *testing.T) {
	rec := generatedRecord(t, 11, 150)

	encodeAll := func() [][]byte {
		sim, err := New(rec, WithMaxTurns(150))
		require.NoError(t, err)
		out := make([][]byte, sim.Snapshots())
		for turn := range out {
			b, err := sim.SnapshotAt(turn).Encode()
			require.NoError(t, err)
			out[turn] = b
		}
		return out
	}

	a, b := encodeAll(), encodeAll()
	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i], b[i], "turn %d differs", i)
	}
}

func TestSimulator_SnapshotMatchesFreshRun(t *testing.T) {
	rec := generatedRecord(t, 5, 80)
	full, err := New(rec, WithMaxTurns(80))
	require.NoError(t, err)

	for _, turn := range []int{1, 17, 42, 80} {
		fresh, err := New(rec, WithMaxTurns(turn))
		require.NoError(t, err)

		want, err := fresh.SnapshotAt(turn).Encode()
		require.NoError(t, err)
		got, err := full.SnapshotAt(turn).Encode()
		require.NoError(t, err)
		assert.Equal(t, want, got, "turn %d", turn)
	}
}

func TestNew_SkipsBadRecordedEntries(t *testing.T) {
	rec := testutil.StripRecord()
	rec.Moves = []replay.Move{
		{Player: 5, Start: 0, End: 1, Turn: 0},
		{Player: 0, Start: 0, End: 2, Turn: 2},
	}
	rec.AFKs = []replay.AFK{{Player: 9, Turn: 1}}

	sim, err := New(rec, WithMaxTurns(10))
	require.NoError(t, err)
	assert.Equal(t, 10, sim.MaxTurn())
	assert.Equal(t, 2, sim.SnapshotAt(10).AlivePlayers)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	rec := testutil.StripRecord()
	rec.Generals = nil
	_, err = New(rec)
	assert.ErrorIs(t, err, core.ErrNoPlayers)
}

func TestNew_GameID(t *testing.T) {
	sim, err := New(testutil.DuelRecord(), WithMaxTurns(1))
	require.NoError(t, err)
	assert.Equal(t, "duel", sim.GameID())
	assert.Equal(t, "duel", sim.CurrentSnapshot().GameID)
	assert.Equal(t, "duel", sim.Record().ID)

	sim, err = New(testutil.DuelRecord(), WithMaxTurns(1), WithGameID("custom"))
	require.NoError(t, err)
	assert.Equal(t, "custom", sim.GameID())

	rec := testutil.DuelRecord()
	rec.ID = ""
	sim, err = New(rec, WithMaxTurns(1))
	require.NoError(t, err)
	_, err = uuid.Parse(sim.GameID())
	assert.NoError(t, err)
}

func TestNew_WithRules(t *testing.T) {
	r := testutil.StripRecord()
	sim, err := New(r, WithMaxTurns(4), WithRules(gameRules(1)))
	require.NoError(t, err)
	assert.Equal(t, 5, sim.SnapshotAt(4).ArmyAt(0), "generals grow every turn")
}

func BenchmarkSimulateGenerated(b *testing.B) {
	rec := generatedRecord(b, 1, 500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := New(rec, WithMaxTurns(500)); err != nil {
			b.Fatal(err)
		}
	}
}
