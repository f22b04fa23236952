// Package board is the game layer on top of traversal: landing rewards,
// star spaces that hold the piece, player stats and the turn controller
package board

import (
	"errors"
	"log/slog"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/level"
	"github.com/lixenwraith/knot-runner/parameter"
)

var (
	ErrNoOffer           = errors.New("board: no star offer pending")
	ErrInsufficientCoins = errors.New("board: not enough coins")
)

// MetaSource resolves per-knot board data
type MetaSource interface {
	Meta(idx knot.Index) level.Meta
}

// Gate is the traversal pause switch
type Gate interface {
	SetPaused(paused bool)
}

// Board reacts to traversal events for one piece
// Registered on the piece's bus; handlers run on the frame goroutine
type Board struct {
	meta    MetaSource
	stats   *Stats
	gate    Gate
	emitter event.Emitter
	log     *slog.Logger
	cost    int

	offer    knot.Index
	offering bool
}

func NewBoard(meta MetaSource, stats *Stats, gate Gate, emitter event.Emitter, logger *slog.Logger) *Board {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Board{
		meta:    meta,
		stats:   stats,
		gate:    gate,
		emitter: emitter,
		log:     logger,
		cost:    parameter.StarCost,
	}
}

func (b *Board) EventTypes() []event.EventType {
	return []event.EventType{event.EventKnotEnter, event.EventKnotLand}
}

func (b *Board) HandleEvent(ev event.GameEvent) {
	p, ok := ev.Payload.(*event.KnotPayload)
	if !ok {
		return
	}
	m := b.meta.Meta(p.Knot)

	switch ev.Type {
	case event.EventKnotEnter:
		if m.PauseOnEntry {
			b.startOffer(ev, p.Knot)
		}
	case event.EventKnotLand:
		if m.Coins != 0 {
			applied := b.stats.AddCoins(m.Coins)
			b.log.Debug("landing reward", "knot", p.Knot.String(), "kind", string(m.Kind), "coins", applied)
		}
	}
}

func (b *Board) startOffer(ev event.GameEvent, at knot.Index) {
	b.offer = at
	b.offering = true
	b.gate.SetPaused(true)
	b.log.Debug("star offer", "knot", at.String(), "coins", b.stats.Coins())
	if b.emitter != nil {
		b.emitter.Emit(event.EventStarOffer, ev.Piece, &event.StarOfferPayload{
			Knot:       at,
			Cost:       b.cost,
			Affordable: b.stats.Coins() >= b.cost,
		})
	}
}

// Offer returns the knot of the pending star offer
func (b *Board) Offer() (knot.Index, bool) {
	return b.offer, b.offering
}

// BuyStar pays for a star and releases the piece
// An unaffordable purchase keeps the offer open
func (b *Board) BuyStar() error {
	if !b.offering {
		return ErrNoOffer
	}
	if b.stats.Coins() < b.cost {
		return ErrInsufficientCoins
	}
	b.stats.AddCoins(-b.cost)
	b.stats.AddStars(1)
	b.closeOffer()
	return nil
}

// Decline releases the piece without buying
func (b *Board) Decline() error {
	if !b.offering {
		return ErrNoOffer
	}
	b.closeOffer()
	return nil
}

func (b *Board) closeOffer() {
	b.offering = false
	b.gate.SetPaused(false)
}

// Clear drops a pending offer without touching the gate
func (b *Board) Clear() {
	b.offering = false
}

func (b *Board) Stats() *Stats {
	return b.stats
}
