package audio

// SoundType identifies a cue
type SoundType int

const (
	SoundStep     SoundType = iota // Knot arrival
	SoundLand                      // Sequence finished
	SoundJunction                  // Parked at a junction
	SoundSelect                    // Junction highlight moved
	SoundCoin                      // Coins gained
	SoundStar                      // Star space reached or star bought
	SoundError                     // Animate refused, coins lost
	soundTypeCount
)

var soundNames = [soundTypeCount]string{
	SoundStep:     "step",
	SoundLand:     "land",
	SoundJunction: "junction",
	SoundSelect:   "select",
	SoundCoin:     "coin",
	SoundStar:     "star",
	SoundError:    "error",
}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// AudioConfig holds output and per-cue volume settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64
	SampleRate    int
	EffectVolumes map[SoundType]float64
}
