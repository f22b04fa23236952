// Package junction detects decision points among linked knots and tracks the
// player's pending branch choice
package junction

import (
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/vmath"
)

// Topology is the subset of the knot graph the resolver queries
type Topology interface {
	IsTerminal(idx knot.Index) bool
	Next(idx knot.Index) knot.Index
	Position(idx knot.Index) vmath.Vec3F
}

// Resolver holds the candidate list and selection index of one piece
// Mutated only by the owning traversal engine
type Resolver struct {
	topo    Topology
	emitter event.Emitter
	piece   uuid.UUID
	log     *slog.Logger

	active     bool
	at         knot.Index
	candidates []knot.Index
	index      int
}

// NewResolver creates a resolver emitting selection changes on behalf of piece
func NewResolver(topo Topology, emitter event.Emitter, piece uuid.UUID, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{
		topo:    topo,
		emitter: emitter,
		piece:   piece,
		log:     logger,
	}
}

// Resolve decides whether arrival is a junction given its link set
// Candidates are the non-terminal link members sorted by path index; a
// junction needs more than one. Missing link data is never a junction
// On a junction the resolver becomes active with index 0; otherwise the list is cleared
func (r *Resolver) Resolve(arrival knot.Index, links []knot.Index) (bool, []knot.Index) {
	r.candidates = r.candidates[:0]
	r.active = false
	r.index = 0

	for _, l := range links {
		if !r.topo.IsTerminal(l) {
			r.candidates = append(r.candidates, l)
		}
	}
	sort.SliceStable(r.candidates, func(a, b int) bool {
		return r.candidates[a].Path < r.candidates[b].Path
	})

	if len(r.candidates) <= 1 {
		r.candidates = r.candidates[:0]
		return false, nil
	}

	r.active = true
	r.at = arrival
	return true, r.Candidates()
}

// AddToIndex moves the selection by delta with wraparound
// No-op outside a junction. Emits EventJunctionSelection
func (r *Resolver) AddToIndex(delta int) {
	if !r.active {
		return
	}
	r.index = vmath.Repeat(r.index+delta, len(r.candidates))
	r.emitSelection()
}

// Select commits candidates[index] and clears the junction
// An out-of-range index is clamped and logged; player input never fails
// ok is false only when no junction is active
func (r *Resolver) Select(index int) (knot.Index, bool) {
	if !r.active || len(r.candidates) == 0 {
		r.log.Warn("junction select without active junction", "index", index)
		return knot.Index{}, false
	}

	if index < 0 || index >= len(r.candidates) {
		clamped := min(max(index, 0), len(r.candidates)-1)
		r.log.Warn("junction index out of range, clamped",
			"at", r.at.String(), "index", index, "clamped", clamped, "candidates", len(r.candidates))
		index = clamped
	}

	chosen := r.candidates[index]
	r.candidates = r.candidates[:0]
	r.active = false
	r.index = 0
	return chosen, true
}

// EmitInitialSelection announces the default selection on junction entry
func (r *Resolver) EmitInitialSelection() {
	if r.active {
		r.emitSelection()
	}
}

func (r *Resolver) emitSelection() {
	if r.emitter == nil {
		return
	}
	r.emitter.Emit(event.EventJunctionSelection, r.piece, &event.SelectionPayload{
		Index:     r.index,
		Candidate: r.candidates[r.index],
	})
}

// Active reports whether a choice is pending
func (r *Resolver) Active() bool {
	return r.active
}

// Index returns the highlighted candidate index
func (r *Resolver) Index() int {
	return r.index
}

// At returns the junction knot the piece is parked on
func (r *Resolver) At() knot.Index {
	return r.at
}

// Candidates returns a copy of the candidate list
func (r *Resolver) Candidates() []knot.Index {
	if len(r.candidates) == 0 {
		return nil
	}
	return append([]knot.Index(nil), r.candidates...)
}

// Preview returns the position of the knot following candidate index, used to
// point at the branch the piece would take
func (r *Resolver) Preview(index int) (vmath.Vec3F, bool) {
	if !r.active || index < 0 || index >= len(r.candidates) {
		return vmath.Vec3F{}, false
	}
	return r.topo.Position(r.topo.Next(r.candidates[index])), true
}
