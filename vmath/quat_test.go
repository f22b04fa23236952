package vmath

import (
	"math"
	"testing"
)

// TestQuatLookRotationForward verifies the built orientation faces the requested direction
func TestQuatLookRotationForward(t *testing.T) {
	dirs := []Vec3F{
		{0, 0, 1},
		{1, 0, 0},
		{0, 0, -1},
		{-1, 0, 0},
		{1, 0, 1},
		{1, 2, -3},
		{0, 1, 0},  // parallel to up
		{0, -1, 0}, // anti-parallel to up
	}
	for _, d := range dirs {
		q := QuatLookRotation(d, V3FUp)
		got := QuatForward(q)
		want := V3FNormalize(d)
		if !V3FApproxEqual(got, want, 1e-6) {
			t.Errorf("LookRotation(%v): forward %v, expected %v", d, got, want)
		}
		if mag := math.Sqrt(QuatDot(q, q)); math.Abs(mag-1) > 1e-9 {
			t.Errorf("LookRotation(%v): not unit, |q|=%f", d, mag)
		}
	}
}

// TestQuatLookRotationKeepsUp verifies horizontal facings keep world up
func TestQuatLookRotationKeepsUp(t *testing.T) {
	q := QuatLookRotation(Vec3F{1, 0, 1}, V3FUp)
	up := QuatRotate(q, V3FUp)
	if !V3FApproxEqual(up, V3FUp, 1e-6) {
		t.Errorf("Expected up preserved, got %v", up)
	}
}

func TestQuatLookRotationZero(t *testing.T) {
	if q := QuatLookRotation(Vec3F{}, V3FUp); q != QuatIdentity {
		t.Errorf("Expected identity for zero forward, got %v", q)
	}
}

// TestQuatSlerp checks endpoints, midpoint angle and shortest-arc handling
func TestQuatSlerp(t *testing.T) {
	a := QuatIdentity
	b := QuatLookRotation(Vec3F{1, 0, 0}, V3FUp) // 90 degrees about Y

	if got := QuatSlerp(a, b, 0); QuatAngle(got, a) > 1e-6 {
		t.Errorf("Expected a at t=0, got %v", got)
	}
	if got := QuatSlerp(a, b, 1); QuatAngle(got, b) > 1e-6 {
		t.Errorf("Expected b at t=1, got %v", got)
	}

	mid := QuatSlerp(a, b, 0.5)
	if ang := QuatAngle(a, mid); math.Abs(ang-math.Pi/4) > 1e-6 {
		t.Errorf("Expected 45 degrees at midpoint, got %f", ang*180/math.Pi)
	}

	// Negated target is the same orientation; slerp must not take the long way
	neg := Quat{-b.X, -b.Y, -b.Z, -b.W}
	midNeg := QuatSlerp(a, neg, 0.5)
	if QuatAngle(mid, midNeg) > 1e-6 {
		t.Errorf("Expected shortest arc for negated target, got %v vs %v", midNeg, mid)
	}

	// Clamped parameter
	if got := QuatSlerp(a, b, 2); QuatAngle(got, b) > 1e-6 {
		t.Errorf("Expected t clamped to 1, got %v", got)
	}
}

func TestCatmullRomEndpoints(t *testing.T) {
	p0, p1, p2, p3 := Vec3F{-1, 0, 0}, Vec3F{0, 0, 0}, Vec3F{1, 1, 0}, Vec3F{2, 1, 0}
	if got := CatmullRom(p0, p1, p2, p3, 0); !V3FApproxEqual(got, p1, eps) {
		t.Errorf("Expected p1 at u=0, got %v", got)
	}
	if got := CatmullRom(p0, p1, p2, p3, 1); !V3FApproxEqual(got, p2, eps) {
		t.Errorf("Expected p2 at u=1, got %v", got)
	}
	// Tangent at p1 is (p2-p0)/2
	want := V3FScale(V3FSub(p2, p0), 0.5)
	if got := CatmullRomTangent(p0, p1, p2, p3, 0); !V3FApproxEqual(got, want, eps) {
		t.Errorf("Expected tangent %v at u=0, got %v", want, got)
	}
}
