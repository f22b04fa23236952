package board

import (
	"github.com/google/uuid"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/parameter"
)

// Stats holds a player's coin and star counters, clamped to [StatsMin, StatsMax]
type Stats struct {
	coins   int
	stars   int
	emitter event.Emitter
	piece   uuid.UUID
}

func NewStats(emitter event.Emitter, piece uuid.UUID) *Stats {
	return &Stats{emitter: emitter, piece: piece}
}

func (s *Stats) Coins() int { return s.coins }
func (s *Stats) Stars() int { return s.stars }

// AddCoins applies a signed delta and reports the change actually applied
func (s *Stats) AddCoins(amount int) int {
	before := s.coins
	s.coins = clampStat(s.coins + amount)
	s.changed(s.coins-before, 0)
	return s.coins - before
}

// AddStars applies a signed delta and reports the change actually applied
func (s *Stats) AddStars(amount int) int {
	before := s.stars
	s.stars = clampStat(s.stars + amount)
	s.changed(0, s.stars-before)
	return s.stars - before
}

func (s *Stats) changed(coinsDelta, starsDelta int) {
	if s.emitter == nil || (coinsDelta == 0 && starsDelta == 0) {
		return
	}
	s.emitter.Emit(event.EventStatsChange, s.piece, &event.StatsPayload{
		Coins:      s.coins,
		Stars:      s.stars,
		CoinsDelta: coinsDelta,
		StarsDelta: starsDelta,
	})
}

func clampStat(v int) int {
	return min(max(v, parameter.StatsMin), parameter.StatsMax)
}
