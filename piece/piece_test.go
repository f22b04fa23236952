package piece

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/knot-runner/board"
	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/level"
	"github.com/lixenwraith/knot-runner/levels"
	"github.com/lixenwraith/knot-runner/vmath"
)

const frame = 1.0 / 60

func crossroads(t *testing.T) *level.Level {
	t.Helper()
	data, err := levels.FS.ReadFile(levels.Default)
	require.NoError(t, err)
	lvl, err := level.Parse(data)
	require.NoError(t, err)
	return lvl
}

// runUntil ticks until the turn reaches phase, failing after a bounded number of frames
func runUntil(t *testing.T, p *Piece, phase board.TurnPhase) {
	t.Helper()
	for i := 0; i < 3000; i++ {
		p.Update(frame)
		if p.Turn.Phase() == phase {
			return
		}
	}
	t.Fatalf("turn never reached %s, stuck in %s", phase, p.Turn.Phase())
}

func TestPiece_ShortcutTurn(t *testing.T) {
	rec := event.NewRecorder(event.EventKnotEnter, event.EventKnotLand, event.EventStarOffer)
	p := New(crossroads(t), Options{Handlers: []event.Handler{rec}})

	_, err := p.Turn.RollValue(5)
	require.NoError(t, err)

	runUntil(t, p, board.TurnChoosing)
	assert.Equal(t, knot.Index{Path: 0, Knot: 1}, p.Engine.Current())
	assert.Equal(t, 5, p.Engine.Remaining())

	p.Turn.Steer(1)
	require.NoError(t, p.Turn.Confirm())

	runUntil(t, p, board.TurnHeld)
	at, ok := p.Board.Offer()
	require.True(t, ok)
	assert.Equal(t, knot.Index{Path: 1, Knot: 2}, at)
	require.NoError(t, p.Board.Decline())

	runUntil(t, p, board.TurnReady)

	// Shortcut end {1,4} hands over to ring knot {0,6}
	var entered []knot.Index
	for _, ev := range rec.OfType(event.EventKnotEnter) {
		entered = append(entered, ev.Payload.(*event.KnotPayload).Knot)
	}
	assert.Equal(t, []knot.Index{{Path: 0, Knot: 1}, {Path: 1, Knot: 1}, {Path: 1, Knot: 2}, {Path: 1, Knot: 3}, {Path: 1, Knot: 4}, {Path: 0, Knot: 7}}, entered)
	assert.Equal(t, knot.Index{Path: 0, Knot: 7}, p.Engine.Current())
	assert.Equal(t, 3, p.Board.Stats().Coins())
	assert.Len(t, rec.OfType(event.EventStarOffer), 1)

	// Driver settles onto the landing knot
	for i := 0; i < 300; i++ {
		p.Update(frame)
	}
	assert.True(t, vmath.V3FApproxEqual(p.Level.Graph.Position(knot.Index{Path: 0, Knot: 7}), p.Driver.Position(), 1e-3),
		"driver at %v", p.Driver.Position())
}

func TestPiece_StraightOnAtJunction(t *testing.T) {
	p := New(crossroads(t), Options{Roller: &constRoller{v: 1}})

	_, err := p.Turn.Roll()
	require.NoError(t, err)
	runUntil(t, p, board.TurnChoosing)
	require.NoError(t, p.Turn.Confirm())
	runUntil(t, p, board.TurnReady)

	// Junction knot is free: one step lands on {0,2}, a red space on zero coins
	assert.Equal(t, knot.Index{Path: 0, Knot: 2}, p.Engine.Current())
	assert.Equal(t, 0, p.Board.Stats().Coins())
}

func TestPiece_FrameDeltaClamped(t *testing.T) {
	p := New(crossroads(t), Options{})
	require.NoError(t, p.Engine.Animate(1))

	// A stalled frame advances at most MaxFrameDelta; the first segment is 4 units long
	p.Update(10)
	assert.Equal(t, knot.Index{Path: 0, Knot: 0}, p.Engine.Current())
	assert.Greater(t, p.Engine.State().T, 0.0)
}

func TestPiece_NegativeFrameDeltaIgnored(t *testing.T) {
	p := New(crossroads(t), Options{})
	require.NoError(t, p.Engine.Animate(1))
	p.Update(frame)
	before := p.Engine.State().T
	pos := p.Driver.Position()

	for i := 0; i < 20; i++ {
		p.Update(-frame)
	}
	assert.Equal(t, before, p.Engine.State().T)
	assert.InDelta(t, 0, vmath.V3FDist(pos, p.Driver.Position()), 1e-9)
	assert.Equal(t, knot.Index{Path: 0, Knot: 0}, p.Engine.Current())
}

func TestPiece_ResetClearsOffer(t *testing.T) {
	p := New(crossroads(t), Options{})
	_, err := p.Turn.RollValue(2)
	require.NoError(t, err)
	runUntil(t, p, board.TurnChoosing)
	p.Turn.Steer(1)
	require.NoError(t, p.Turn.Confirm())
	runUntil(t, p, board.TurnHeld)

	p.Reset()
	_, ok := p.Board.Offer()
	assert.False(t, ok)
	st := p.Engine.State()
	assert.False(t, st.Paused)
	assert.False(t, st.IsMoving)
	assert.Equal(t, p.Level.Start, st.Current)
	assert.Equal(t, p.Level.Graph.Position(p.Level.Start), p.Driver.Position())
}

type constRoller struct{ v int }

func (c *constRoller) Roll() int { return c.v }
