package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/knot-runner/parameter"
)

// Wave selects the tone generator behind a cue
type Wave uint8

const (
	Sine Wave = iota
	Square
	Sawtooth
	Noise
)

// source returns an endless stream of the wave; an unplayable frequency yields silence
func source(w Wave, freq float64, rate beep.SampleRate) beep.Streamer {
	var (
		s   beep.Streamer
		err error
	)
	switch w {
	case Sine:
		s, err = generators.SineTone(rate, freq)
	case Square:
		s, err = generators.SquareTone(rate, freq)
	case Sawtooth:
		s, err = generators.SawtoothTone(rate, freq)
	case Noise:
		return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
			for i := range samples {
				v := rand.Float64()*2 - 1
				samples[i] = [2]float64{v, v}
			}
			return len(samples), true
		})
	}
	if err != nil || s == nil {
		return generators.Silence(-1)
	}
	return s
}

// gain is the linear attack/release level at sample pos of a total-sample cue
func gain(pos, total, attack, release int) float64 {
	g := 1.0
	if attack > 0 && pos < attack {
		g = float64(pos) / float64(attack)
	}
	if left := total - pos; release > 0 && left < release {
		g = min(g, float64(left)/float64(release))
	}
	return max(g, 0)
}

// shape cuts s to d and applies the attack/release ramps
func shape(s beep.Streamer, rate beep.SampleRate, d, attack, release time.Duration) beep.Streamer {
	total, att, rel := rate.N(d), rate.N(attack), rate.N(release)
	cut := beep.Take(total, s)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := cut.Stream(samples)
		for i := range samples[:n] {
			g := gain(pos, total, att, rel)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// newVolume scales linearly; zero volume is silent since Log2(0) is -Inf
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

func tone(w Wave, freq float64, rate beep.SampleRate, d, attack, release time.Duration) beep.Streamer {
	return shape(source(w, freq, rate), rate, d, attack, release)
}

func stepCue(rate beep.SampleRate) beep.Streamer {
	return tone(Sine, parameter.StepSoundFreq, rate,
		parameter.StepSoundDuration, parameter.StepSoundAttack, parameter.StepSoundRelease)
}

// landCue is a low sine body with a quieter square edge an octave up
func landCue(rate beep.SampleRate) beep.Streamer {
	body := tone(Sine, parameter.LandSoundFreq, rate,
		parameter.LandSoundDuration, parameter.LandSoundAttack, parameter.LandSoundRelease)
	edge := tone(Square, parameter.LandSoundFreq*2, rate,
		parameter.LandSoundDuration, parameter.LandSoundAttack, parameter.LandSoundRelease/2)
	return beep.Mix(newVolume(body, 0.8), newVolume(edge, 0.2))
}

// junctionCue rings A5 with a faster-fading octave
func junctionCue(rate beep.SampleRate) beep.Streamer {
	fund := tone(Sine, 880, rate,
		parameter.BellSoundDuration, parameter.BellSoundAttack, parameter.BellSoundFundamentalRelease)
	over := tone(Sine, 1760, rate,
		parameter.BellSoundDuration, parameter.BellSoundAttack, parameter.BellSoundOvertoneRelease)
	return beep.Mix(newVolume(fund, 0.7), newVolume(over, 0.3))
}

func selectCue(rate beep.SampleRate) beep.Streamer {
	return tone(Square, 1200, rate,
		parameter.SelectSoundDuration, parameter.SelectSoundAttack, parameter.SelectSoundRelease)
}

// coinCue plays B5 then E6
func coinCue(rate beep.SampleRate) beep.Streamer {
	return beep.Seq(
		tone(Square, 987.77, rate, parameter.CoinSoundNote1Duration, parameter.CoinSoundAttack, parameter.CoinSoundNote1Release),
		tone(Square, 1318.51, rate, parameter.CoinSoundNote2Duration, parameter.CoinSoundAttack, parameter.CoinSoundNote2Release),
	)
}

func starCue(rate beep.SampleRate) beep.Streamer {
	return tone(Noise, 0, rate,
		parameter.WhooshSoundDuration, parameter.WhooshSoundAttack, parameter.WhooshSoundRelease)
}

func errorCue(rate beep.SampleRate) beep.Streamer {
	return tone(Sawtooth, 100, rate,
		parameter.ErrorSoundDuration, parameter.ErrorSoundAttack, parameter.ErrorSoundRelease)
}

var cueBuilders = map[SoundType]func(beep.SampleRate) beep.Streamer{
	SoundStep:     stepCue,
	SoundLand:     landCue,
	SoundJunction: junctionCue,
	SoundSelect:   selectCue,
	SoundCoin:     coinCue,
	SoundStar:     starCue,
	SoundError:    errorCue,
}

// GetSoundEffect returns a fresh streamer for soundType at the configured mix level
// Returns nil for unknown types
func GetSoundEffect(soundType SoundType, cfg *AudioConfig) beep.Streamer {
	build, ok := cueBuilders[soundType]
	if !ok {
		return nil
	}
	s := build(beep.SampleRate(cfg.SampleRate))
	return newVolume(s, cfg.EffectVolumes[soundType]*cfg.MasterVolume)
}
