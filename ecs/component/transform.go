package component

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hearthlight/common"
)

// Transform is a world-space pose. Angles are degrees; Yaw turns about +Y
// from +Z toward +X and positive Pitch looks down.
type Transform struct {
	Position mgl64.Vec3
	Pitch    float64
	Yaw      float64
	Roll     float64
}

func (t *Transform) Rotation() mgl64.Quat {
	return common.Euler(t.Pitch, t.Yaw, t.Roll)
}

// Forward is the horizontal facing direction.
func (t *Transform) Forward() mgl64.Vec3 {
	return common.Forward(t.Yaw)
}

func (t *Transform) Right() mgl64.Vec3 {
	return common.Right(t.Yaw)
}

var TransformComponent = NewComponent[Transform]()
