package knot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lixenwraith/knot-runner/vmath"
)

// ErrInvalidGraph is wrapped by every NewGraph rejection
var ErrInvalidGraph = errors.New("knot: invalid graph")

// Graph is the immutable knot network shared by all pieces
// Thread-Safety: read-only after NewGraph, safe for concurrent readers
type Graph struct {
	paths []pathGeom
	links map[Index][]Index // member -> full link set in canonical order (shared, read-only)
}

// NewGraph bakes path geometry and the link table
// Link groups that share a member are merged into one link set
func NewGraph(paths []Path, links [][]Index) (*Graph, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no paths", ErrInvalidGraph)
	}

	g := &Graph{
		paths: make([]pathGeom, len(paths)),
		links: make(map[Index][]Index),
	}
	for i, p := range paths {
		if len(p.Knots) < 2 {
			return nil, fmt.Errorf("%w: path %d has %d knots, need at least 2", ErrInvalidGraph, i, len(p.Knots))
		}
		g.paths[i] = bakePath(p)
	}

	if err := g.bakeLinks(links); err != nil {
		return nil, err
	}
	return g, nil
}

// bakeLinks unions link groups and stores each set sorted canonically
func (g *Graph) bakeLinks(groups [][]Index) error {
	parent := make(map[Index]Index)
	var find func(Index) Index
	find = func(i Index) Index {
		p, ok := parent[i]
		if !ok || p == i {
			return i
		}
		root := find(p)
		parent[i] = root
		return root
	}
	union := func(a, b Index) {
		ra, rb := find(a), find(b)
		if ra == rb {
			return
		}
		// Canonical (lowest) member stays root
		if rb.Less(ra) {
			ra, rb = rb, ra
		}
		parent[rb] = ra
	}

	for gi, group := range groups {
		distinct := make(map[Index]struct{}, len(group))
		for _, idx := range group {
			if !g.Valid(idx) {
				return fmt.Errorf("%w: link group %d references unknown knot %s", ErrInvalidGraph, gi, idx)
			}
			distinct[idx] = struct{}{}
		}
		if len(distinct) < 2 {
			return fmt.Errorf("%w: link group %d has fewer than 2 distinct knots", ErrInvalidGraph, gi)
		}
		for _, idx := range group {
			if _, ok := parent[idx]; !ok {
				parent[idx] = idx
			}
			union(group[0], idx)
		}
	}

	sets := make(map[Index][]Index)
	for idx := range parent {
		root := find(idx)
		sets[root] = append(sets[root], idx)
	}
	for _, members := range sets {
		sort.Slice(members, func(a, b int) bool { return members[a].Less(members[b]) })
		for _, m := range members {
			g.links[m] = members
		}
	}
	return nil
}

// PathCount returns the number of paths
func (g *Graph) PathCount() int {
	return len(g.paths)
}

// KnotCount returns the number of knots on a path, 0 for unknown paths
func (g *Graph) KnotCount(path int) int {
	if path < 0 || path >= len(g.paths) {
		return 0
	}
	return len(g.paths[path].knots)
}

// IsClosed reports whether the path loops back to its first knot
func (g *Graph) IsClosed(path int) bool {
	if path < 0 || path >= len(g.paths) {
		return false
	}
	return g.paths[path].closed
}

// Valid reports whether idx addresses an existing knot
func (g *Graph) Valid(idx Index) bool {
	return idx.Path >= 0 && idx.Path < len(g.paths) && idx.Knot >= 0 && idx.Knot < len(g.paths[idx.Path].knots)
}

// Next returns the following knot on the same path
// Closed paths wrap to 0; open paths advance linearly and may exceed bounds (see IsTerminal)
func (g *Graph) Next(idx Index) Index {
	n := g.KnotCount(idx.Path)
	if g.IsClosed(idx.Path) && n > 0 {
		return Index{Path: idx.Path, Knot: (idx.Knot + 1) % n}
	}
	return Index{Path: idx.Path, Knot: idx.Knot + 1}
}

// IsTerminal reports whether idx is the last knot of an open path
func (g *Graph) IsTerminal(idx Index) bool {
	if g.IsClosed(idx.Path) {
		return false
	}
	return idx.Knot >= g.KnotCount(idx.Path)-1
}

// Links returns the link set containing idx, including idx itself, in canonical order
// Empty when idx has no links. The returned slice is shared and must not be modified
func (g *Graph) Links(idx Index) []Index {
	return g.links[idx]
}

// Canonical returns the first member of idx's link set, or idx when unlinked
func (g *Graph) Canonical(idx Index) Index {
	if set := g.links[idx]; len(set) > 0 {
		return set[0]
	}
	return idx
}

// Param returns the normalized path parameter of a knot
// Out-of-range knots clamp to the path ends
func (g *Graph) Param(idx Index) float64 {
	n := g.KnotCount(idx.Path)
	if n == 0 {
		return 0
	}
	if idx.Knot <= 0 {
		return 0
	}
	if idx.Knot >= n {
		return 1
	}
	return g.paths[idx.Path].knotParam[idx.Knot]
}

// Length returns the arc length of a path
func (g *Graph) Length(path int) float64 {
	if path < 0 || path >= len(g.paths) {
		return 0
	}
	return g.paths[path].length
}

// Evaluate samples a path at normalized t, returning position and unit tangent
// The tangent is zero on degenerate paths
func (g *Graph) Evaluate(path int, t float64) (vmath.Vec3F, vmath.Vec3F) {
	if path < 0 || path >= len(g.paths) {
		return vmath.Vec3F{}, vmath.Vec3F{}
	}
	return g.paths[path].evaluate(t)
}

// Position returns the authored world position of a knot
func (g *Graph) Position(idx Index) vmath.Vec3F {
	if !g.Valid(idx) {
		return vmath.Vec3F{}
	}
	return g.paths[idx.Path].knots[idx.Knot]
}

// Bounds returns the axis-aligned box around all knots
func (g *Graph) Bounds() (lo, hi vmath.Vec3F) {
	first := true
	for _, p := range g.paths {
		for _, k := range p.knots {
			if first {
				lo, hi = k, k
				first = false
				continue
			}
			lo = vmath.Vec3F{X: minf(lo.X, k.X), Y: minf(lo.Y, k.Y), Z: minf(lo.Z, k.Z)}
			hi = vmath.Vec3F{X: maxf(hi.X, k.X), Y: maxf(hi.Y, k.Y), Z: maxf(hi.Z, k.Z)}
		}
	}
	return lo, hi
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
