package event

import (
	"github.com/google/uuid"
)

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value and never emitted
	EventNone EventType = iota

	// === Traversal Events ===

	// EventKnotEnter signals the piece committed arrival at a knot
	// Trigger: TraversalEngine on every knot arrival, junction or not
	// Consumer: Board (step counter), Audio, Viewer | Payload: *KnotPayload
	EventKnotEnter

	// EventKnotLand signals the step sequence is exhausted
	// Trigger: TraversalEngine when remaining steps reach zero or a dead end
	// Consumer: Board (rewards, space events), Turn controller | Payload: *KnotPayload
	EventKnotLand

	// EventJunctionEnter signals the piece parked at a junction awaiting a choice
	// Trigger: TraversalEngine on junction arrival
	// Consumer: Viewer (choice overlay), Turn controller | Payload: *JunctionPayload
	EventJunctionEnter

	// EventJunctionExit signals a junction choice was committed
	// Trigger: TraversalEngine.SelectPath
	// Consumer: Viewer | Payload: *JunctionPayload
	EventJunctionExit

	// EventJunctionSelection signals the highlighted junction candidate changed
	// Trigger: Junction entry (index 0), AddToIndex
	// Consumer: Viewer, Audio | Payload: *SelectionPayload
	EventJunctionSelection

	// EventAnimateRejected signals an Animate request was refused
	// Trigger: Animate while a sequence is active or with a non-positive count
	// Consumer: Metrics, logs | Payload: *RejectPayload
	EventAnimateRejected

	// EventPauseChange signals the external pause gate toggled
	// Trigger: TraversalEngine.SetPaused
	// Consumer: Viewer | Payload: *PausePayload
	EventPauseChange

	// === Board Events ===

	// EventRollResult signals a dice roll completed and movement is about to start
	// Trigger: Turn controller
	// Consumer: Viewer, Audio | Payload: *RollPayload
	EventRollResult

	// EventStatsChange signals coins or stars changed
	// Trigger: Board landing rewards, star purchase
	// Consumer: Viewer, Metrics | Payload: *StatsPayload
	EventStatsChange

	// EventStarOffer signals a star space holds the piece until bought or declined
	// Trigger: Board on entering a pause-on-entry knot
	// Consumer: Viewer | Payload: *StarOfferPayload
	EventStarOffer

	eventTypeCount
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Piece   uuid.UUID // Emitting piece; uuid.Nil for board-wide events
	Payload any
	Frame   int64 // Dispatch frame the event was emitted in
}
