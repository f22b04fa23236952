package parameter

import "time"

// Audio Output
const (
	AudioSampleRate = 44100
	// AudioBufferDuration is the speaker buffer; larger values add latency
	AudioBufferDuration = 100 * time.Millisecond
	AudioMasterVolume   = 0.5

	// MinSoundGap suppresses repeats of the same cue inside this window
	MinSoundGap = 50 * time.Millisecond
)

// Step Tick (knot arrival)
const (
	StepSoundDuration = 60 * time.Millisecond
	StepSoundAttack   = 3 * time.Millisecond
	StepSoundRelease  = 40 * time.Millisecond
	StepSoundFreq     = 660.0
)

// Land Thud
const (
	LandSoundDuration = 220 * time.Millisecond
	LandSoundAttack   = 2 * time.Millisecond
	LandSoundRelease  = 180 * time.Millisecond
	LandSoundFreq     = 110.0
)

// Junction Bell
const (
	BellSoundDuration           = 600 * time.Millisecond
	BellSoundAttack             = 5 * time.Millisecond
	BellSoundFundamentalRelease = 550 * time.Millisecond
	BellSoundOvertoneRelease    = 200 * time.Millisecond
)

// Selection Click
const (
	SelectSoundDuration = 30 * time.Millisecond
	SelectSoundAttack   = 1 * time.Millisecond
	SelectSoundRelease  = 20 * time.Millisecond
)

// Coin Chime
const (
	CoinSoundNote1Duration = 80 * time.Millisecond
	CoinSoundNote2Duration = 280 * time.Millisecond
	CoinSoundAttack        = 5 * time.Millisecond
	CoinSoundNote1Release  = 40 * time.Millisecond
	CoinSoundNote2Release  = 200 * time.Millisecond
)

// Star Whoosh
const (
	WhooshSoundDuration = 300 * time.Millisecond
	WhooshSoundAttack   = 150 * time.Millisecond
	WhooshSoundRelease  = 150 * time.Millisecond
)

// Reject Buzz
const (
	ErrorSoundDuration = 80 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 20 * time.Millisecond
)
