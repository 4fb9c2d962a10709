package component

import "github.com/go-gl/mathgl/mgl64"

// Trigger is a box volume centered on the entity transform plus Offset.
type Trigger struct {
	HalfExtents mgl64.Vec3
	Offset      mgl64.Vec3
	Enabled     bool
	// Inside lists the characters overlapping the volume last frame.
	Inside []uint64
}

var TriggerComponent = NewComponent[Trigger]()
