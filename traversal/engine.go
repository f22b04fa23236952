// Package traversal converts step counts into knot-by-knot movement over a
// knot graph. The engine is a tick-driven state machine: Animate starts a
// sequence, Update advances it, and junctions or the pause gate suspend it
// until the host resolves them
package traversal

import (
	"log/slog"
	"math"

	"github.com/google/uuid"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/junction"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/vmath"
)

// Config holds engine tuning
type Config struct {
	// MoveSpeed is world units per second along a path
	MoveSpeed float64
}

// DefaultConfig returns the parameter package defaults
func DefaultConfig() Config {
	return Config{MoveSpeed: parameter.TraversalMoveSpeed}
}

// Engine owns and mutates the traversal state of one piece
// Thread-Safety: not safe for concurrent use; drive from the frame loop
type Engine struct {
	graph    Graph
	resolver *junction.Resolver
	emitter  event.Emitter
	piece    uuid.UUID
	log      *slog.Logger
	cfg      Config

	phase     Phase
	current   knot.Index
	next      knot.Index
	t         float64
	target    float64
	inSegment bool // next/target computed for the active segment
	remaining int
	moving    bool
	paused    bool
}

// NewEngine creates an engine parked on the first knot of path 0
func NewEngine(graph Graph, emitter event.Emitter, piece uuid.UUID, cfg Config, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.MoveSpeed <= 0 {
		cfg.MoveSpeed = parameter.TraversalMoveSpeed
	}
	e := &Engine{
		graph:    graph,
		resolver: junction.NewResolver(graph, emitter, piece, logger),
		emitter:  emitter,
		piece:    piece,
		log:      logger.With("piece", piece.String()),
		cfg:      cfg,
	}
	e.Reset()
	return e
}

// Reset returns the piece to path 0 knot 0, clearing any sequence and junction
func (e *Engine) Reset() {
	e.phase = PhaseIdle
	e.current = knot.Index{}
	e.next = e.graph.Next(e.current)
	e.t = e.graph.Param(e.current)
	e.target = e.t
	e.inSegment = false
	e.remaining = 0
	e.moving = false
	e.paused = false
	e.resolver.Resolve(e.current, nil)
}

// Place moves an idle piece onto idx without emitting events
// Used for spawning on a start knot other than the default
func (e *Engine) Place(idx knot.Index) bool {
	if e.phase != PhaseIdle {
		return false
	}
	e.current = idx
	e.next = e.graph.Next(idx)
	e.t = e.graph.Param(idx)
	e.target = e.t
	e.inSegment = false
	return true
}

// Animate starts a sequence of steps
// Rejected without state change while a sequence is active, including while
// parked at a junction, and for steps < 1
func (e *Engine) Animate(steps int) error {
	if e.moving || e.phase != PhaseIdle {
		e.log.Info("already animating", "requested", steps, "remaining", e.remaining, "phase", e.phase.String())
		e.emit(event.EventAnimateRejected, &event.RejectPayload{Requested: steps, Reason: "already moving"})
		return ErrAlreadyMoving
	}
	if steps < 1 {
		e.log.Info("animate rejected", "requested", steps)
		e.emit(event.EventAnimateRejected, &event.RejectPayload{Requested: steps, Reason: "step count below 1"})
		return ErrInvalidSteps
	}

	e.remaining = steps
	e.moving = true
	e.phase = PhaseTraveling
	e.inSegment = false
	e.log.Debug("animate", "steps", steps, "from", e.current.String())
	return nil
}

// Update advances the active sequence by dt seconds
// At most one knot arrival happens per call
func (e *Engine) Update(dt float64) {
	// Suspension: idle or awaiting a junction choice
	if e.phase != PhaseTraveling {
		return
	}
	// Suspension: external gate
	if e.paused {
		return
	}
	if dt < 0 {
		return
	}

	if !e.inSegment {
		// A sequence may start on a path end: leave through a link or stay put
		if e.graph.IsTerminal(e.current) {
			e.jumpLink(e.graph.Links(e.current))
			if e.graph.IsTerminal(e.current) {
				e.deadEnd()
				return
			}
		}
		e.beginSegment()
	}

	e.t = vmath.MoveTowards(e.t, e.target, e.adjustedSpeed(e.current.Path)*dt)
	if e.t != e.target {
		return
	}
	e.arrive()
}

// beginSegment anchors T on the current knot and picks the segment target
func (e *Engine) beginSegment() {
	e.next = e.graph.Next(e.current)
	e.t = e.graph.Param(e.current)
	if e.next.Knot == 0 && e.graph.IsClosed(e.current.Path) {
		e.target = 1
	} else {
		e.target = e.graph.Param(e.next)
	}
	e.inSegment = true
}

// adjustedSpeed converts world speed into normalized-parameter speed
// Degenerate paths return +Inf: arrival is instant
func (e *Engine) adjustedSpeed(path int) float64 {
	length := e.graph.Length(path)
	if length < parameter.TraversalMinPathLength {
		return math.Inf(1)
	}
	return e.cfg.MoveSpeed / length
}

// arrive commits the knot transition and resolves junctions, links and landing
func (e *Engine) arrive() {
	e.current = e.next
	// A closed path wrap lands on knot 0, whose parameter is 0
	e.t = e.graph.Param(e.current)
	e.target = e.t
	e.inSegment = false
	e.next = e.graph.Next(e.current)

	links := e.graph.Links(e.current)
	isJunction, candidates := e.resolver.Resolve(e.current, links)
	if isJunction {
		e.phase = PhaseJunction
		e.moving = false
		e.log.Debug("junction entered", "at", e.current.String(), "candidates", len(candidates))
		e.emit(event.EventJunctionEnter, &event.JunctionPayload{
			Active:     true,
			Knot:       e.current,
			Candidates: candidates,
		})
		e.resolver.EmitInitialSelection()
	} else {
		// Steps are only consumed on non-junction knots
		e.remaining--
	}

	e.emit(event.EventKnotEnter, &event.KnotPayload{Knot: e.current, Remaining: e.remaining})

	// Parked state reports the arrival knot; SelectPath re-anchors
	if e.phase == PhaseJunction {
		return
	}

	if e.graph.IsTerminal(e.current) {
		e.jumpLink(links)
	}

	if e.remaining > 0 {
		if !e.graph.IsTerminal(e.current) {
			return
		}
		e.deadEnd()
		return
	}
	e.land()
}

// jumpLink relocates a path end onto the first continuing member of its link set
func (e *Engine) jumpLink(links []knot.Index) {
	for _, l := range links {
		if e.graph.IsTerminal(l) {
			continue
		}
		e.log.Debug("link jump", "from", e.current.String(), "to", l.String())
		e.current = l
		e.t = e.graph.Param(l)
		e.target = e.t
		e.next = e.graph.Next(l)
		return
	}
}

// deadEnd ends the sequence on a path end with no way forward
func (e *Engine) deadEnd() {
	if e.remaining > 0 {
		e.log.Info("dead end, dropping remaining steps", "at", e.current.String(), "dropped", e.remaining)
	}
	e.remaining = 0
	e.land()
}

func (e *Engine) land() {
	e.moving = false
	e.phase = PhaseIdle
	e.log.Debug("landed", "at", e.current.String())
	e.emit(event.EventKnotLand, &event.KnotPayload{Knot: e.current, Remaining: 0})
}

// AddToIndex moves the junction highlight by delta; ignored outside a junction
func (e *Engine) AddToIndex(delta int) {
	e.resolver.AddToIndex(delta)
}

// SelectPath commits junction candidate index and resumes travel from it
// Out-of-range indices are clamped by the resolver
func (e *Engine) SelectPath(index int) error {
	if e.phase != PhaseJunction {
		e.log.Warn("select path outside junction", "index", index)
		return ErrNotInJunction
	}

	at := e.resolver.At()
	chosen, ok := e.resolver.Select(index)
	if !ok {
		return ErrNotInJunction
	}

	e.current = chosen
	e.next = e.graph.Next(chosen)
	e.t = e.graph.Param(chosen)
	e.target = e.t
	e.inSegment = false
	e.phase = PhaseTraveling
	e.moving = true

	e.log.Debug("junction exited", "at", at.String(), "chosen", chosen.String())
	e.emit(event.EventJunctionExit, &event.JunctionPayload{Active: false, Knot: at})
	return nil
}

// Confirm commits the currently highlighted junction candidate
func (e *Engine) Confirm() error {
	return e.SelectPath(e.resolver.Index())
}

// SetPaused sets the external pause gate
func (e *Engine) SetPaused(paused bool) {
	if e.paused == paused {
		return
	}
	e.paused = paused
	e.emit(event.EventPauseChange, &event.PausePayload{Paused: paused})
}

// Preview returns the position the highlighted junction branch leads to
func (e *Engine) Preview() (vmath.Vec3F, bool) {
	return e.resolver.Preview(e.resolver.Index())
}

// State returns a snapshot of the traversal state
func (e *Engine) State() State {
	return State{
		Phase:          e.phase,
		Current:        e.current,
		Next:           e.next,
		T:              e.t,
		Target:         e.target,
		RemainingSteps: e.remaining,
		IsMoving:       e.moving,
		InJunction:     e.resolver.Active(),
		Paused:         e.paused,
		JunctionIndex:  e.resolver.Index(),
		Walkable:       e.resolver.Candidates(),
	}
}

// Pose exposes what the interpolation driver samples each tick
func (e *Engine) Pose() (path int, t float64, moving bool) {
	return e.current.Path, e.t, e.moving
}

// Piece returns the owning piece ID
func (e *Engine) Piece() uuid.UUID {
	return e.piece
}

// Remaining returns steps left in the active sequence
func (e *Engine) Remaining() int {
	return e.remaining
}

// Current returns the logical knot
func (e *Engine) Current() knot.Index {
	return e.current
}

// Phase returns the state machine phase
func (e *Engine) Phase() Phase {
	return e.phase
}

func (e *Engine) emit(et event.EventType, payload any) {
	if e.emitter == nil {
		return
	}
	e.emitter.Emit(et, e.piece, payload)
}
