package component

import "github.com/hajimehoshi/ebiten/v2"

// Weapon is an item that can lie on the ground or sit in a player's holder.
type Weapon struct {
	Key        ebiten.Key
	HolderName string
	// DropRayLength, DropLift and SurfaceOffset shape where a dropped
	// weapon lands.
	DropRayLength float64
	DropLift      float64
	SurfaceOffset float64

	Equipped  bool
	CanPickup bool
	Player    uint64
	Holder    uint64
}

var WeaponComponent = NewComponent[Weapon]()
