package subscribers_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events"
	"github.com/mitchelldurbincs/GeneralsReplay/internal/game/events/subscribers"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggerSubscriber(t *testing.T) {
	logSub := subscribers.NewLoggerSubscriber("test-logger", zerolog.Nop(), zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeGameStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))

	logSub.SetEventFilter([]string{events.TypeGeneralCaptured})
	assert.True(t, logSub.InterestedIn(events.TypeGeneralCaptured))
	assert.False(t, logSub.InterestedIn(events.TypeTurnStarted))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTurnStarted))
}

func TestLoggerSubscriberEventFields(t *testing.T) {
	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, line map[string]interface{})
	}{
		{
			name:  "GameStartedEvent",
			event: events.NewGameStartedEvent("g1", 4, 20, 18, 7, true),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, float64(4), line["num_players"])
				assert.Equal(t, float64(20), line["map_width"])
				assert.Equal(t, float64(18), line["map_height"])
				assert.Equal(t, true, line["teams"])
			},
		},
		{
			name:  "GeneralCapturedEvent",
			event: events.NewGeneralCapturedEvent("g1", 0, 1, 24, 9, 130),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, float64(0), line["captor"])
				assert.Equal(t, float64(1), line["defeated"])
				assert.Equal(t, float64(24), line["tile"])
				assert.Equal(t, float64(9), line["tiles_transferred"])
				assert.Equal(t, float64(130), line["turn"])
			},
		},
		{
			name:  "PlayerNeutralizedEvent",
			event: events.NewPlayerNeutralizedEvent("g1", 3, -1, 12, 40),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, float64(3), line["player_id"])
				assert.Equal(t, float64(-1), line["heir"])
			},
		},
		{
			name:  "SimulationOverrunEvent",
			event: events.NewSimulationOverrunEvent("g1", 2000, 3),
			check: func(t *testing.T, line map[string]interface{}) {
				assert.Equal(t, float64(2000), line["max_turns"])
				assert.Equal(t, float64(3), line["alive_players"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("l", zerolog.New(&buf), zerolog.InfoLevel)
			logSub.HandleEvent(tc.event)

			lines := decodeLines(t, &buf)
			require.Len(t, lines, 1)
			assert.Equal(t, "Game event", lines[0]["message"])
			assert.Equal(t, "info", lines[0]["level"])
			assert.Equal(t, tc.event.Type(), lines[0]["event_type"])
			assert.Equal(t, "g1", lines[0]["game_id"])
			tc.check(t, lines[0])
		})
	}
}

func TestLoggerSubscriberLevelsAndDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("l", zerolog.New(&buf), zerolog.WarnLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewTurnStartedEvent("g1", 12))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warn", lines[0]["level"])
	data, ok := lines[0]["event_data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(12), data["TurnNumber"])
}

func TestLoggerSubscriberOnBus(t *testing.T) {
	var buf bytes.Buffer
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	logSub := subscribers.NewLoggerSubscriber("l", zerolog.New(&buf), zerolog.InfoLevel)
	logSub.SetEventFilter([]string{events.TypePlayerEliminated})
	bus.Subscribe(logSub)

	bus.Publish(events.NewTurnStartedEvent("g1", 1))
	bus.Publish(events.NewPlayerEliminatedEvent("g1", 2, 0, 1, 77))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, events.TypePlayerEliminated, lines[0]["event_type"])
	assert.Equal(t, float64(0), lines[0]["eliminated_by"])
}
