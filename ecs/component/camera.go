package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// CameraRig follows and orbits a player. It is the only writer of view mode
// transitions.
type CameraRig struct {
	Target uint64

	SmoothSpeed float64
	// SmoothReferenceFPS > 0 rescales SmoothSpeed so the follow lag is the
	// same at any frame rate.
	SmoothReferenceFPS  float64
	ThirdPersonOffset   mgl64.Vec3
	FirstPersonOffset   mgl64.Vec3
	LookHeight          float64
	MouseSensitivity    float64
	VerticalPitchLimit  float64
	ThirdPersonPitchMax float64
	DefaultPitch        float64
	LockReturnRate      float64
	ToggleKey           ebiten.Key
	FreeLookButton      ebiten.MouseButton

	Pitch       float64
	Yaw         float64
	FirstPerson bool
	FreeLook    bool
	Initialized bool
	Disabled    bool
}

func (c *CameraRig) Mode() ViewMode {
	return modeOf(c.FirstPerson, c.FreeLook)
}

var CameraRigComponent = NewComponent[CameraRig]()
