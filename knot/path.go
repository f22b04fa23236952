package knot

import (
	"math"
	"sort"

	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/vmath"
)

// Path is the authoring input for one curve: ordered knot positions and closure
type Path struct {
	Knots  []vmath.Vec3F
	Closed bool
}

// pathGeom is the baked, immutable form of a Path
// cum holds cumulative arc length at every sample; sample g sits on
// segment g/N at local parameter (g%N)/N, N = PathSamplesPerSegment
type pathGeom struct {
	knots     []vmath.Vec3F
	closed    bool
	segments  int
	length    float64
	cum       []float64
	knotParam []float64
}

func bakePath(p Path) pathGeom {
	n := len(p.Knots)
	g := pathGeom{
		knots:  append([]vmath.Vec3F(nil), p.Knots...),
		closed: p.Closed,
	}
	g.segments = n - 1
	if p.Closed {
		g.segments = n
	}

	const N = parameter.PathSamplesPerSegment
	g.cum = make([]float64, g.segments*N+1)
	prev := g.knots[0]
	for s := 0; s < g.segments; s++ {
		p0, p1, p2, p3 := g.controls(s)
		for k := 1; k <= N; k++ {
			pt := vmath.CatmullRom(p0, p1, p2, p3, float64(k)/N)
			idx := s*N + k
			g.cum[idx] = g.cum[idx-1] + vmath.V3FDist(prev, pt)
			prev = pt
		}
	}
	g.length = g.cum[len(g.cum)-1]

	g.knotParam = make([]float64, n)
	for i := 0; i < n; i++ {
		if g.degenerate() {
			g.knotParam[i] = float64(i) / float64(g.segments)
			continue
		}
		g.knotParam[i] = g.cum[i*N] / g.length
	}
	return g
}

func (g *pathGeom) degenerate() bool {
	return g.length < parameter.TraversalMinPathLength
}

// knotAt resolves a possibly out-of-range knot index: wraps on closed paths, clamps on open
func (g *pathGeom) knotAt(i int) vmath.Vec3F {
	n := len(g.knots)
	if g.closed {
		return g.knots[vmath.Repeat(i, n)]
	}
	if i < 0 {
		return g.knots[0]
	}
	if i >= n {
		return g.knots[n-1]
	}
	return g.knots[i]
}

// controls returns the four Catmull-Rom control points of segment s
func (g *pathGeom) controls(s int) (p0, p1, p2, p3 vmath.Vec3F) {
	return g.knotAt(s - 1), g.knotAt(s), g.knotAt(s + 1), g.knotAt(s + 2)
}

// locate maps normalized t to (segment, local u)
func (g *pathGeom) locate(t float64) (int, float64) {
	const N = parameter.PathSamplesPerSegment
	t = vmath.Clamp01(t)
	total := float64(g.segments * N)

	var gp float64
	if g.degenerate() {
		gp = t * total
	} else {
		d := t * g.length
		// Last sample with cum <= d
		i := sort.Search(len(g.cum), func(i int) bool { return g.cum[i] > d }) - 1
		if i < 0 {
			i = 0
		}
		if i >= len(g.cum)-1 {
			gp = total
		} else {
			span := g.cum[i+1] - g.cum[i]
			frac := 0.0
			if span > 0 {
				frac = (d - g.cum[i]) / span
			}
			gp = float64(i) + frac
		}
	}

	seg := int(math.Floor(gp / N))
	if seg >= g.segments {
		seg = g.segments - 1
	}
	u := (gp - float64(seg*N)) / N
	return seg, vmath.Clamp01(u)
}

func (g *pathGeom) evaluate(t float64) (vmath.Vec3F, vmath.Vec3F) {
	seg, u := g.locate(t)
	p0, p1, p2, p3 := g.controls(seg)
	pos := vmath.CatmullRom(p0, p1, p2, p3, u)
	tangent := vmath.V3FNormalize(vmath.CatmullRomTangent(p0, p1, p2, p3, u))
	return pos, tangent
}
