package parameter

// Traversal - Movement
const (
	// TraversalMoveSpeed is the piece speed along a path in world units per second
	// Normalized by path length so visual speed is constant across path geometry
	TraversalMoveSpeed = 10.0

	// TraversalMovementLerp is the position smoothing rate, in halvings per second
	TraversalMovementLerp = 10.0

	// TraversalRotationLerp is the orientation smoothing rate, in halvings per second
	TraversalRotationLerp = 10.0

	// TraversalMinPathLength is the length below which a path is degenerate (instant arrival)
	TraversalMinPathLength = 1e-6

	// DirectionEpsilon is the squared tangent magnitude below which orientation is held
	DirectionEpsilon = 0.0001
)

// Traversal - Geometry
const (
	// PathSamplesPerSegment is the arc-length table resolution between two knots
	PathSamplesPerSegment = 16

	// ParamEpsilon is the tolerance when comparing normalized path parameters
	ParamEpsilon = 1e-9
)
