package component

import "github.com/go-gl/mathgl/mgl64"

type Name struct {
	Value string
}

var NameComponent = NewComponent[Name]()

// Parent attaches an entity to another one. The child's world transform is
// derived from the parent's every frame; parents contribute yaw only.
type Parent struct {
	Entity        uint64
	LocalPosition mgl64.Vec3
	LocalPitch    float64
	LocalYaw      float64
	LocalRoll     float64
}

var ParentComponent = NewComponent[Parent]()
