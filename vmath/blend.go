package vmath

import "math"

// Blend returns the framerate-independent retention factor 0.5^(dt*rate)
// A value smoothed as Lerp(target, current, Blend(dt, rate)) halves its
// remaining distance `rate` times per second regardless of frame duration
func Blend(dt, rate float64) float64 {
	if dt <= 0 {
		return 1
	}
	if rate <= 0 {
		return 1
	}
	return math.Pow(0.5, dt*rate)
}

// MoveTowards advances current toward target by at most maxDelta without overshoot
// A non-finite maxDelta snaps to target
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.IsInf(maxDelta, 1) || math.IsNaN(maxDelta) {
		return target
	}
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	if target > current {
		return current + maxDelta
	}
	return current - maxDelta
}

// Clamp01 clamps f into [0,1]
func Clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Repeat wraps v into [0,n) using Euclidean modulo, n > 0
func Repeat(v, n int) int {
	if n <= 0 {
		return 0
	}
	r := v % n
	if r < 0 {
		r += n
	}
	return r
}
