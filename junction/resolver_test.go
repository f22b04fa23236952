package junction

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/vmath"
)

// threeWay: path 0 has 4 knots, paths 1 and 2 have 3; {0,2},{1,0},{2,0} share a point
func threeWay(t *testing.T) *knot.Graph {
	t.Helper()
	row := func(n int, z float64) []vmath.Vec3F {
		out := make([]vmath.Vec3F, n)
		for i := range out {
			out[i] = vmath.Vec3F{X: float64(i), Z: z}
		}
		return out
	}
	g, err := knot.NewGraph([]knot.Path{
		{Knots: row(4, 0)},
		{Knots: row(3, 1)},
		{Knots: row(3, 2)},
	}, [][]knot.Index{{{Path: 0, Knot: 2}, {Path: 1, Knot: 0}, {Path: 2, Knot: 0}}, {{Path: 0, Knot: 3}, {Path: 1, Knot: 2}}})
	require.NoError(t, err)
	return g
}

func selections(bus *event.Bus) []int {
	var out []int
	for _, ev := range bus.Drain() {
		if ev.Type == event.EventJunctionSelection {
			out = append(out, ev.Payload.(*event.SelectionPayload).Index)
		}
	}
	return out
}

func TestResolve_JunctionCandidatesSortedByPath(t *testing.T) {
	g := threeWay(t)
	r := NewResolver(g, nil, uuid.Nil, nil)

	unsorted := []knot.Index{{Path: 2, Knot: 0}, {Path: 0, Knot: 2}, {Path: 1, Knot: 0}}
	ok, candidates := r.Resolve(knot.Index{Path: 1, Knot: 0}, unsorted)

	require.True(t, ok)
	assert.Equal(t, []knot.Index{{Path: 0, Knot: 2}, {Path: 1, Knot: 0}, {Path: 2, Knot: 0}}, candidates)
	assert.True(t, r.Active())
	assert.Equal(t, 0, r.Index())
	assert.Equal(t, knot.Index{Path: 1, Knot: 0}, r.At())
}

func TestResolve_NotJunction(t *testing.T) {
	g := threeWay(t)
	r := NewResolver(g, nil, uuid.Nil, nil)

	tests := []struct {
		name  string
		links []knot.Index
	}{
		{"no links", nil},
		{"single continuation", []knot.Index{{Path: 0, Knot: 3}, {Path: 1, Knot: 2}}}, // both terminal
		{"terminal plus one", []knot.Index{{Path: 0, Knot: 3}, {Path: 1, Knot: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, candidates := r.Resolve(knot.Index{Path: 0, Knot: 3}, tt.links)
			assert.False(t, ok)
			assert.Empty(t, candidates)
			assert.Empty(t, r.Candidates())
			assert.False(t, r.Active())
		})
	}
}

func TestAddToIndex_EuclideanWrap(t *testing.T) {
	g := threeWay(t)
	bus := event.NewBus()
	r := NewResolver(g, bus, uuid.New(), nil)

	r.AddToIndex(1) // inactive: ignored
	assert.Empty(t, selections(bus))

	links := g.Links(knot.Index{Path: 0, Knot: 2})
	_, _ = r.Resolve(knot.Index{Path: 0, Knot: 2}, links)
	r.AddToIndex(-1)
	assert.Equal(t, 2, r.Index())

	_, _ = r.Resolve(knot.Index{Path: 0, Knot: 2}, links)
	r.AddToIndex(4)
	assert.Equal(t, 1, r.Index())

	r.AddToIndex(-7) // 1-7 = -6 -> 0
	assert.Equal(t, 0, r.Index())

	assert.Equal(t, []int{2, 1, 0}, selections(bus))
}

func TestSelect_ClearsAndClamps(t *testing.T) {
	g := threeWay(t)
	r := NewResolver(g, nil, uuid.Nil, nil)
	links := g.Links(knot.Index{Path: 0, Knot: 2})

	_, _ = r.Resolve(knot.Index{Path: 0, Knot: 2}, links)
	chosen, ok := r.Select(1)
	require.True(t, ok)
	assert.Equal(t, knot.Index{Path: 1, Knot: 0}, chosen)
	assert.Empty(t, r.Candidates())
	assert.False(t, r.Active())

	_, _ = r.Resolve(knot.Index{Path: 0, Knot: 2}, links)
	chosen, ok = r.Select(99)
	require.True(t, ok)
	assert.Equal(t, knot.Index{Path: 2, Knot: 0}, chosen)

	_, _ = r.Resolve(knot.Index{Path: 0, Knot: 2}, links)
	chosen, ok = r.Select(-3)
	require.True(t, ok)
	assert.Equal(t, knot.Index{Path: 0, Knot: 2}, chosen)

	_, ok = r.Select(0)
	assert.False(t, ok)
}

func TestPreview(t *testing.T) {
	g := threeWay(t)
	r := NewResolver(g, nil, uuid.Nil, nil)

	_, ok := r.Preview(0)
	assert.False(t, ok)

	_, _ = r.Resolve(knot.Index{Path: 0, Knot: 2}, g.Links(knot.Index{Path: 0, Knot: 2}))
	pos, ok := r.Preview(1)
	require.True(t, ok)
	assert.Equal(t, g.Position(knot.Index{Path: 1, Knot: 1}), pos)
}
