package board

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/traversal"
)

var ErrTurnBusy = errors.New("board: turn in progress")

// Mover is the traversal surface the turn controller drives
type Mover interface {
	Animate(steps int) error
	AddToIndex(delta int)
	Confirm() error
	State() traversal.State
}

// TurnPhase is what the controller is waiting on
type TurnPhase uint8

const (
	TurnReady    TurnPhase = iota // Accepting a roll
	TurnRolling                   // Showing the roll before moving
	TurnMoving                    // Traversal active
	TurnChoosing                  // Parked at a junction
	TurnHeld                      // Paused by a space event
	TurnSettling                  // Landed, short delay before the next roll
)

func (p TurnPhase) String() string {
	switch p {
	case TurnReady:
		return "ready"
	case TurnRolling:
		return "rolling"
	case TurnMoving:
		return "moving"
	case TurnChoosing:
		return "choosing"
	case TurnHeld:
		return "held"
	case TurnSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Turn sequences roll, move and junction choice for one piece
// Registered on the bus for landing notifications
type Turn struct {
	mover   Mover
	roller  Roller
	emitter event.Emitter
	piece   uuid.UUID
	log     *slog.Logger

	pending int     // Rolled value awaiting Animate
	wait    float64 // Seconds left on the current presentation delay
	settle  bool
	turns   int
	last    int
}

func NewTurn(mover Mover, roller Roller, emitter event.Emitter, piece uuid.UUID, logger *slog.Logger) *Turn {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Turn{
		mover:   mover,
		roller:  roller,
		emitter: emitter,
		piece:   piece,
		log:     logger,
	}
}

func (t *Turn) EventTypes() []event.EventType {
	return []event.EventType{event.EventKnotLand}
}

func (t *Turn) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventKnotLand {
		return
	}
	t.settle = true
	t.wait = parameter.LandSettleDelay.Seconds()
}

// Roll starts a turn with a fresh dice value; movement begins after RollResultDelay
func (t *Turn) Roll() (int, error) {
	return t.RollValue(t.roller.Roll())
}

// RollValue starts a turn with a fixed step count
func (t *Turn) RollValue(steps int) (int, error) {
	if !t.AllowInput() {
		return 0, ErrTurnBusy
	}
	t.pending = steps
	t.last = steps
	t.wait = parameter.RollResultDelay.Seconds()
	t.turns++
	t.log.Debug("rolled", "value", steps, "turn", t.turns)
	if t.emitter != nil {
		t.emitter.Emit(event.EventRollResult, t.piece, &event.RollPayload{Value: steps})
	}
	return steps, nil
}

// Update advances presentation delays; call before the traversal update
func (t *Turn) Update(dt float64) {
	if t.pending == 0 && !t.settle {
		return
	}
	t.wait -= dt
	if t.wait > 0 {
		return
	}
	t.wait = 0

	if t.settle {
		t.settle = false
		return
	}

	steps := t.pending
	t.pending = 0
	if err := t.mover.Animate(steps); err != nil {
		t.log.Warn("turn move rejected", "steps", steps, "error", err)
	}
}

// Steer moves the junction highlight; ignored unless choosing
func (t *Turn) Steer(delta int) {
	if t.Phase() != TurnChoosing {
		return
	}
	t.mover.AddToIndex(delta)
}

// Confirm commits the highlighted junction branch
func (t *Turn) Confirm() error {
	if t.Phase() != TurnChoosing {
		return traversal.ErrNotInJunction
	}
	return t.mover.Confirm()
}

// AllowInput reports whether a new roll is accepted
func (t *Turn) AllowInput() bool {
	return t.Phase() == TurnReady
}

func (t *Turn) Phase() TurnPhase {
	if t.pending > 0 {
		return TurnRolling
	}
	st := t.mover.State()
	switch {
	case st.InJunction:
		return TurnChoosing
	case st.Paused:
		return TurnHeld
	case st.IsMoving:
		return TurnMoving
	case t.settle:
		return TurnSettling
	}
	return TurnReady
}

// Turns returns the number of rolls taken
func (t *Turn) Turns() int {
	return t.turns
}

// LastRoll returns the most recent step count
func (t *Turn) LastRoll() int {
	return t.last
}
