package parameter

import "time"

// Game Loop & Engine Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps a single tick's delta so a stalled frame cannot teleport a piece
	MaxFrameDelta = 100 * time.Millisecond
)

// Event Bus Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// EventDispatchIterations bounds same-frame cascades when handlers emit during dispatch
const EventDispatchIterations = 8
