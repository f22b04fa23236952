package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

// drain streams s to completion and returns the samples produced
func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok || n == 0 {
			return out
		}
	}
}

// TestSourceRange verifies every wave stays within [-1, 1] on both channels
func TestSourceRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, w := range []Wave{Sine, Square, Sawtooth, Noise} {
		samples := drain(beep.Take(rate.N(20*time.Millisecond), source(w, 440, rate)))
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d sample %d invalid: %v", w, i, s)
			}
		}
	}
}

// TestToneDuration verifies the sample count matches the duration
func TestToneDuration(t *testing.T) {
	rate := beep.SampleRate(44100)
	duration := 100 * time.Millisecond

	samples := drain(tone(Sine, 440, rate, duration, time.Millisecond, time.Millisecond))
	if want := rate.N(duration); len(samples) != want {
		t.Errorf("Expected %d samples, got %d", want, len(samples))
	}
}

// TestGainShape verifies attack starts silent, sustain is full and release ends near silent
func TestGainShape(t *testing.T) {
	tests := []struct {
		name string
		pos  int
		want float64
	}{
		{"attack start", 0, 0},
		{"attack half", 5, 0.5},
		{"sustain", 50, 1},
		{"release half", 95, 0.5},
		{"last sample", 99, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gain(tt.pos, 100, 10, 10); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Expected %f, got %f", tt.want, got)
			}
		})
	}
	if gain(3, 100, 0, 0) != 1 {
		t.Error("Expected full level without ramps")
	}
}

// TestGetSoundEffect verifies every cue produces audio and unknown types return nil
func TestGetSoundEffect(t *testing.T) {
	cfg := DefaultAudioConfig()
	for st := SoundType(0); st < soundTypeCount; st++ {
		s := GetSoundEffect(st, cfg)
		if s == nil {
			t.Fatalf("Expected streamer for %s", st)
		}
		if len(drain(s)) == 0 {
			t.Errorf("Expected samples for %s", st)
		}
	}
	if GetSoundEffect(soundTypeCount, cfg) != nil {
		t.Error("Expected nil for unknown sound type")
	}
}

// TestSoundEffectVolume verifies master volume zero yields silence
func TestSoundEffectVolume(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.MasterVolume = 0

	for _, s := range drain(GetSoundEffect(SoundStep, cfg)) {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Expected silence at zero volume, got %v", s)
		}
	}
}

func TestSoundTypeString(t *testing.T) {
	if SoundJunction.String() != "junction" {
		t.Errorf("Expected junction, got %s", SoundJunction)
	}
	if SoundType(-1).String() != "unknown" {
		t.Error("Expected unknown for out-of-range type")
	}
}
