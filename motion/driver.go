// Package motion smooths a piece's rendered transform toward its logical
// position on the path. It only reads traversal state
package motion

import (
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/vmath"
)

// Source exposes the logical pose being followed
type Source interface {
	Pose() (path int, t float64, moving bool)
}

// Sampler maps a path parameter to world position and unit tangent
type Sampler interface {
	Evaluate(path int, t float64) (vmath.Vec3F, vmath.Vec3F)
}

// Config holds smoothing rates in halvings per second
type Config struct {
	MovementLerp float64
	RotationLerp float64
	Up           vmath.Vec3F
}

func DefaultConfig() Config {
	return Config{
		MovementLerp: parameter.TraversalMovementLerp,
		RotationLerp: parameter.TraversalRotationLerp,
		Up:           vmath.V3FUp,
	}
}

// Driver holds the smoothed transform of one piece
type Driver struct {
	src  Source
	geom Sampler
	cfg  Config

	position vmath.Vec3F
	rotation vmath.Quat
}

// NewDriver creates a driver snapped onto the source's current pose
func NewDriver(src Source, geom Sampler, cfg Config) *Driver {
	if vmath.V3FMagSq(cfg.Up) == 0 {
		cfg.Up = vmath.V3FUp
	}
	d := &Driver{
		src:      src,
		geom:     geom,
		cfg:      cfg,
		rotation: vmath.QuatIdentity,
	}
	d.Snap()
	return d
}

// Update runs every tick regardless of movement so residual offset settles
func (d *Driver) Update(dt float64) {
	path, t, moving := d.src.Pose()
	target, tangent := d.geom.Evaluate(path, t)

	d.position = vmath.V3FLerp(target, d.position, vmath.Blend(dt, d.cfg.MovementLerp))

	if !moving || vmath.V3FMagSq(tangent) <= parameter.DirectionEpsilon {
		return
	}
	look := vmath.QuatLookRotation(tangent, d.cfg.Up)
	d.rotation = vmath.QuatSlerp(d.rotation, look, 1-vmath.Blend(dt, d.cfg.RotationLerp))
}

// Snap jumps to the target transform; orientation follows the tangent when defined
func (d *Driver) Snap() {
	path, t, _ := d.src.Pose()
	target, tangent := d.geom.Evaluate(path, t)
	d.position = target
	if vmath.V3FMagSq(tangent) > parameter.DirectionEpsilon {
		d.rotation = vmath.QuatLookRotation(tangent, d.cfg.Up)
	}
}

func (d *Driver) Position() vmath.Vec3F {
	return d.position
}

func (d *Driver) Rotation() vmath.Quat {
	return d.rotation
}

// Forward returns the facing direction of the smoothed rotation
func (d *Driver) Forward() vmath.Vec3F {
	return vmath.QuatForward(d.rotation)
}

// Target returns the unsmoothed position the driver converges on
func (d *Driver) Target() vmath.Vec3F {
	path, t, _ := d.src.Pose()
	pos, _ := d.geom.Evaluate(path, t)
	return pos
}
