package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func assertVec(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.True(t, want.ApproxEqualThreshold(got, 1e-9), "want %v, got %v", want, got)
}

func TestForwardAndRight(t *testing.T) {
	assertVec(t, mgl64.Vec3{0, 0, 1}, Forward(0))
	assertVec(t, mgl64.Vec3{1, 0, 0}, Forward(90))
	assertVec(t, mgl64.Vec3{1, 0, 0}, Right(0))
	assertVec(t, mgl64.Vec3{0, 0, -1}, Right(90))
	assert.InDelta(t, 90, YawOf(Forward(90)), 1e-9)
}

func TestEulerMatchesForward(t *testing.T) {
	for _, yaw := range []float64{0, 45, 170, 300} {
		assertVec(t, Forward(yaw), Euler(0, yaw, 0).Rotate(WorldFwd))
	}
}

func TestEulerPitchTiltsDown(t *testing.T) {
	fwd := Euler(90, 0, 0).Rotate(WorldFwd)
	assertVec(t, mgl64.Vec3{0, -1, 0}, fwd)
}

func TestLookAngles(t *testing.T) {
	pitch, yaw, ok := LookAngles(mgl64.Vec3{0, 1, -1}, mgl64.Vec3{0, 0, 0})
	assert.True(t, ok)
	assert.InDelta(t, 45, pitch, 1e-9)
	assert.InDelta(t, 0, yaw, 1e-9)

	// the angles reproduce the direction
	dir := Euler(pitch, yaw, 0).Rotate(WorldFwd)
	assertVec(t, NormalizeOrZero(mgl64.Vec3{0, -1, 1}), dir)

	_, _, ok = LookAngles(mgl64.Vec3{1, 2, 3}, mgl64.Vec3{1, 2, 3})
	assert.False(t, ok)
}
