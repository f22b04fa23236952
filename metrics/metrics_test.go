package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/traversal"
	"github.com/lixenwraith/knot-runner/vmath"
)

func TestCollector_ScriptedRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)

	g, err := knot.NewGraph([]knot.Path{
		{Knots: []vmath.Vec3F{{X: 0}, {X: 1}, {X: 2}, {X: 3}}},
		{Knots: []vmath.Vec3F{{X: 1}, {X: 1, Z: 1}, {X: 1, Z: 2}}},
	}, [][]knot.Index{{{Path: 0, Knot: 1}, {Path: 1, Knot: 0}}})
	require.NoError(t, err)

	bus := event.NewBus(c)
	e := traversal.NewEngine(g, bus, uuid.New(), traversal.DefaultConfig(), nil)

	require.NoError(t, e.Animate(2))
	assert.Error(t, e.Animate(2))
	for i := 0; i < 100 && e.Phase() == traversal.PhaseTraveling; i++ {
		e.Update(0.05)
		bus.DispatchAll()
	}
	require.Equal(t, traversal.PhaseJunction, e.Phase())
	e.AddToIndex(1)
	require.NoError(t, e.Confirm())
	for i := 0; i < 100 && e.Phase() == traversal.PhaseTraveling; i++ {
		e.Update(0.05)
		bus.DispatchAll()
	}

	// {0,1} junction, then {1,1} and {1,2}
	assert.Equal(t, 3.0, testutil.ToFloat64(c.knotEnters))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.landings))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.junctions))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.selections))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.rejected.WithLabelValues("already moving")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.stepsLeft))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.events.WithLabelValues(event.EventJunctionExit.String())))
}

func TestCollector_BoardSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	id := uuid.New()

	c.HandleEvent(event.GameEvent{Type: event.EventStatsChange, Piece: id, Payload: &event.StatsPayload{Coins: 23, Stars: 2}})
	c.HandleEvent(event.GameEvent{Type: event.EventRollResult, Piece: id, Payload: &event.RollPayload{Value: 4}})
	c.HandleEvent(event.GameEvent{Type: event.EventRollResult, Piece: id, Payload: &event.RollPayload{Value: 9}})
	c.HandleEvent(event.GameEvent{Type: event.EventPauseChange, Piece: id, Payload: &event.PausePayload{Paused: true}})

	assert.Equal(t, 23.0, testutil.ToFloat64(c.coins))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.stars))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.paused))
	assert.Equal(t, 1, testutil.CollectAndCount(c.rolls))

	c.HandleEvent(event.GameEvent{Type: event.EventPauseChange, Piece: id, Payload: &event.PausePayload{}})
	assert.Equal(t, 0.0, testutil.ToFloat64(c.paused))
}

func TestHandler_ServesSeries(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := New(reg)
	c.HandleEvent(event.GameEvent{Type: event.EventKnotLand, Payload: &event.KnotPayload{}})

	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "knot_runner_traversal_landings_total 1"), body)
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
