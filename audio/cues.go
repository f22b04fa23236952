package audio

import (
	"time"

	"github.com/lixenwraith/knot-runner/event"
	"github.com/lixenwraith/knot-runner/parameter"
)

// Cues plays a sound for traversal and board events
// Runs on the frame goroutine as a bus handler
type Cues struct {
	cfg   *AudioConfig
	sink  Sink
	muted bool
	now   func() time.Time

	last       [soundTypeCount]time.Time
	played     uint64
	suppressed uint64
}

func NewCues(cfg *AudioConfig, sink Sink) *Cues {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &Cues{cfg: cfg, sink: sink, now: time.Now}
}

func (c *Cues) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventKnotEnter,
		event.EventKnotLand,
		event.EventJunctionEnter,
		event.EventJunctionSelection,
		event.EventAnimateRejected,
		event.EventStatsChange,
		event.EventStarOffer,
	}
}

func (c *Cues) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventKnotEnter:
		c.Play(SoundStep)
	case event.EventKnotLand:
		c.Play(SoundLand)
	case event.EventJunctionEnter:
		c.Play(SoundJunction)
	case event.EventJunctionSelection:
		c.Play(SoundSelect)
	case event.EventAnimateRejected:
		c.Play(SoundError)
	case event.EventStarOffer:
		c.Play(SoundStar)
	case event.EventStatsChange:
		p, ok := ev.Payload.(*event.StatsPayload)
		if !ok {
			return
		}
		switch {
		case p.StarsDelta > 0:
			c.Play(SoundStar)
		case p.CoinsDelta > 0:
			c.Play(SoundCoin)
		case p.CoinsDelta < 0:
			c.Play(SoundError)
		}
	}
}

// Play sends st to the sink unless muted, disabled or repeated within MinSoundGap
func (c *Cues) Play(st SoundType) bool {
	if !c.cfg.Enabled || c.muted || c.sink == nil {
		return false
	}
	if st < 0 || st >= soundTypeCount {
		return false
	}

	now := c.now()
	if !c.last[st].IsZero() && now.Sub(c.last[st]) < parameter.MinSoundGap {
		c.suppressed++
		return false
	}

	s := GetSoundEffect(st, c.cfg)
	if s == nil {
		return false
	}
	c.last[st] = now
	c.sink.Play(s)
	c.played++
	return true
}

// ToggleMute flips muting and returns the new state
func (c *Cues) ToggleMute() bool {
	c.muted = !c.muted
	return c.muted
}

func (c *Cues) IsMuted() bool {
	return c.muted
}

// Stats returns cue counters
func (c *Cues) Stats() (played, suppressed uint64) {
	return c.played, c.suppressed
}
