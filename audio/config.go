package audio

import (
	"github.com/lixenwraith/knot-runner/config"
	"github.com/lixenwraith/knot-runner/parameter"
)

// DefaultAudioConfig returns enabled output with per-cue mix levels
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: parameter.AudioMasterVolume,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundStep:     0.4,
			SoundLand:     0.8,
			SoundJunction: 1.0,
			SoundSelect:   0.3,
			SoundCoin:     0.5,
			SoundStar:     0.6,
			SoundError:    0.8,
		},
	}
}

// FromConfig builds the audio settings from the loaded runtime configuration
func FromConfig(c config.AudioConfig) *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.Enabled = c.Enabled
	cfg.MasterVolume = min(max(c.MasterVolume, 0), 1)
	if c.SampleRate > 0 {
		cfg.SampleRate = c.SampleRate
	}
	return cfg
}
