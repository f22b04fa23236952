package viewer

import (
	"math"

	"github.com/lixenwraith/knot-runner/vmath"
)

// cellAspect is the height/width ratio of a terminal cell
const cellAspect = 2.0

// Projector maps the world XZ plane onto a screen rectangle, top-down
// World +Z points down the screen
type Projector struct {
	lo     vmath.Vec3F
	scale  float64 // rows per world unit; columns use scale*cellAspect
	ox, oy int
}

// NewProjector fits the lo..hi bounds into a w x h cell area with a one-cell margin
func NewProjector(lo, hi vmath.Vec3F, w, h int) Projector {
	spanX := math.Max(hi.X-lo.X, 1e-6)
	spanZ := math.Max(hi.Z-lo.Z, 1e-6)
	usableW := float64(max(w-2, 1))
	usableH := float64(max(h-2, 1))

	scale := math.Min(usableW/(spanX*cellAspect), usableH/spanZ)
	drawnW := int(math.Round(spanX * scale * cellAspect))
	drawnH := int(math.Round(spanZ * scale))

	return Projector{
		lo:    lo,
		scale: scale,
		ox:    1 + max(int(usableW)-drawnW, 0)/2,
		oy:    1 + max(int(usableH)-drawnH, 0)/2,
	}
}

// Cell returns the screen cell of world point v
func (p Projector) Cell(v vmath.Vec3F) (x, y int) {
	x = p.ox + int(math.Round((v.X-p.lo.X)*p.scale*cellAspect))
	y = p.oy + int(math.Round((v.Z-p.lo.Z)*p.scale))
	return x, y
}
