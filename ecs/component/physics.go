package component

import "github.com/go-gl/mathgl/mgl64"

// CharacterBody is an upright collision cylinder moved by the physics world.
type CharacterBody struct {
	Radius     float64
	Height     float64
	StepOffset float64
	Layer      uint
}

var CharacterBodyComponent = NewComponent[CharacterBody]()

// RigidBody holds the simulation flags of a loose item.
type RigidBody struct {
	Kinematic       bool
	UseGravity      bool
	ColliderEnabled bool
	IsTrigger       bool
}

var RigidBodyComponent = NewComponent[RigidBody]()

// Block is a static axis-aligned box of level geometry.
type Block struct {
	Min   mgl64.Vec3
	Max   mgl64.Vec3
	Layer uint
}

var BlockComponent = NewComponent[Block]()
