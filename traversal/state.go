package traversal

import (
	"errors"

	"github.com/lixenwraith/knot-runner/junction"
	"github.com/lixenwraith/knot-runner/knot"
)

var (
	// ErrAlreadyMoving rejects Animate while a step sequence is active
	ErrAlreadyMoving = errors.New("traversal: step sequence already active")
	// ErrInvalidSteps rejects Animate with a step count below 1
	ErrInvalidSteps = errors.New("traversal: step count must be at least 1")
	// ErrNotInJunction rejects SelectPath when no choice is pending
	ErrNotInJunction = errors.New("traversal: not at a junction")
)

// Phase is the engine's position in its step cycle
// Idle -> Traveling -> (Junction -> Traveling)* -> Idle
// Paused is orthogonal and only suspends Traveling
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseTraveling
	PhaseJunction
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseTraveling:
		return "traveling"
	case PhaseJunction:
		return "junction"
	default:
		return "unknown"
	}
}

// Graph is the knot network as seen by the engine
type Graph interface {
	junction.Topology
	Links(idx knot.Index) []knot.Index
	Param(idx knot.Index) float64
	Length(path int) float64
	IsClosed(path int) bool
}

// State is a copy of one piece's traversal state
type State struct {
	Phase          Phase
	Current        knot.Index
	Next           knot.Index
	T              float64 // Normalized parameter on Current.Path, always in [0,1]
	Target         float64 // T value that completes the active segment
	RemainingSteps int
	IsMoving       bool
	InJunction     bool
	Paused         bool
	JunctionIndex  int
	Walkable       []knot.Index // Non-empty only while InJunction
}
