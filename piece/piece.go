// Package piece assembles one game piece on a level: traversal engine,
// interpolation driver, board rules and event bus, ticked as a unit
package piece

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/lixenwraith/knot-runner/board"
	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/level"
	"github.com/lixenwraith/knot-runner/motion"
	"github.com/lixenwraith/knot-runner/parameter"
	"github.com/lixenwraith/knot-runner/traversal"
)

// Options configures a piece; zero values fall back to parameter defaults
type Options struct {
	Traversal traversal.Config
	Motion    motion.Config
	Roller    board.Roller
	Logger    *slog.Logger
	// Handlers are registered on the bus after the board and turn handlers
	Handlers []event.Handler
}

// Piece owns every per-piece component
// Thread-Safety: all methods must be called from the frame goroutine
type Piece struct {
	ID     uuid.UUID
	Level  *level.Level
	Bus    *event.Bus
	Engine *traversal.Engine
	Driver *motion.Driver
	Board  *board.Board
	Turn   *board.Turn

	log *slog.Logger
}

func New(lvl *level.Level, opts Options) *Piece {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Traversal.MoveSpeed <= 0 {
		opts.Traversal = traversal.DefaultConfig()
	}
	if opts.Motion.MovementLerp <= 0 || opts.Motion.RotationLerp <= 0 {
		opts.Motion = motion.DefaultConfig()
	}
	if opts.Roller == nil {
		opts.Roller = board.NewDiceRoller(0)
	}

	p := &Piece{
		ID:    uuid.New(),
		Level: lvl,
		Bus:   event.NewBus(),
		log:   logger,
	}
	p.log = logger.With("piece", p.ID.String())

	p.Engine = traversal.NewEngine(lvl.Graph, p.Bus, p.ID, opts.Traversal, logger)
	p.Engine.Place(lvl.Start)
	p.Driver = motion.NewDriver(p.Engine, lvl.Graph, opts.Motion)
	p.Board = board.NewBoard(lvl, board.NewStats(p.Bus, p.ID), p.Engine, p.Bus, p.log)
	p.Turn = board.NewTurn(p.Engine, opts.Roller, p.Bus, p.ID, p.log)

	p.Bus.Register(p.Board)
	p.Bus.Register(p.Turn)
	for _, h := range opts.Handlers {
		p.Bus.Register(h)
	}
	return p
}

// Update runs one frame: turn timers, traversal, interpolation, then event dispatch
func (p *Piece) Update(dt float64) {
	dt = min(max(dt, 0), parameter.MaxFrameDelta.Seconds())
	p.Turn.Update(dt)
	p.Engine.Update(dt)
	p.Driver.Update(dt)
	p.Bus.DispatchAll()
}

// Reset returns the piece to the level start and snaps the transform
func (p *Piece) Reset() {
	p.Board.Clear()
	p.Engine.Reset()
	p.Engine.Place(p.Level.Start)
	p.Driver.Snap()
	p.log.Debug("reset", "start", p.Level.Start.String())
}
