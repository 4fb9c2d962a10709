package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{-90, 270},
		{725, 5},
		{-720, 0},
	}
	for _, tc := range tests {
		assert.InDelta(t, tc.want, NormalizeAngle(tc.in), 1e-9, "NormalizeAngle(%v)", tc.in)
	}
}

func TestDeltaAngle(t *testing.T) {
	tests := []struct {
		name            string
		current, target float64
		want            float64
	}{
		{"forward", 10, 30, 20},
		{"backward", 30, 10, -20},
		{"across zero", 350, 10, 20},
		{"across zero backward", 10, 350, -20},
		{"half turn", 0, 180, 180},
		{"unnormalized", 720, 45, 45},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, DeltaAngle(tc.current, tc.target), 1e-9)
		})
	}
}

func TestLerpAngleTakesShortestArc(t *testing.T) {
	assert.InDelta(t, 360, LerpAngle(350, 10, 0.5), 1e-9)
	assert.InDelta(t, 350, LerpAngle(350, 10, 0), 1e-9)
	assert.InDelta(t, 370, LerpAngle(350, 10, 2), 1e-9, "t is clamped to 1")
}

func TestExpDecay(t *testing.T) {
	assert.Zero(t, ExpDecay(10, 0))
	assert.Zero(t, ExpDecay(0, 1))
	assert.InDelta(t, 0.1535, ExpDecay(10, 1.0/60), 1e-3)

	// two half steps close the same gap as one full step
	half := ExpDecay(10, 0.05)
	full := ExpDecay(10, 0.1)
	assert.InDelta(t, 1-full, (1-half)*(1-half), 1e-12)
}

func TestMoveTowards(t *testing.T) {
	assert.Equal(t, 0.5, MoveTowards(0, 1, 0.5))
	assert.Equal(t, 1.0, MoveTowards(0.9, 1, 0.5))
	assert.Equal(t, -0.5, MoveTowards(0, -1, 0.5))
}
