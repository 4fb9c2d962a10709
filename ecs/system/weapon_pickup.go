package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/rs/zerolog/log"
)

const (
	PromptPickUp = "pick up weapon"
	PromptSwap   = "swap weapon"
)

// WeaponPickupSystem handles weapons lying on the ground: it offers them to
// the player standing in their trigger and equips them on request, dropping
// whatever the holder carried before.
type WeaponPickupSystem struct{}

func NewWeaponPickupSystem() *WeaponPickupSystem {
	return &WeaponPickupSystem{}
}

func (s *WeaponPickupSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events()

	ecs.ForEach(w, component.WeaponComponent.Kind(), func(e ecs.Entity, weapon *component.Weapon) {
		for _, evt := range events.TriggerEvents(e) {
			if weapon.Equipped || !isPlayer(w, evt.Other) {
				continue
			}
			switch evt.Kind {
			case ecs.TriggerEnter:
				enterPickupZone(w, e, weapon, evt.Other)
			case ecs.TriggerExit:
				weapon.CanPickup = false
				weapon.Player = 0
				weapon.Holder = 0
				if prompt, ok := ecs.Get(w, e, component.PromptComponent.Kind()); ok {
					prompt.Hide()
				}
			}
		}

		if weapon.Equipped || !weapon.CanPickup {
			return
		}
		player := ecs.Entity(weapon.Player)
		if !ecs.IsAlive(w, player) {
			return
		}
		in, _ := ecs.Get(w, player, component.InputComponent.Kind())
		if in.KeyDown(weapon.Key) {
			PerformPickup(w, e)
		}
	})
}

func enterPickupZone(w *ecs.World, e ecs.Entity, weapon *component.Weapon, player ecs.Entity) {
	weapon.CanPickup = true
	weapon.Player = uint64(player)
	log.Debug().Stringer("weapon", e).Stringer("player", player).Msg("player entered the pickup zone")

	holder, ok := FindChild(w, player, weapon.HolderName)
	if !ok {
		weapon.CanPickup = false
		weapon.Holder = 0
		log.Error().Err(ErrMissingHolder).Str("holder", weapon.HolderName).Stringer("player", player).Msg("weapon pickup unavailable")
		return
	}
	weapon.Holder = uint64(holder)

	prompt, ok := ecs.Get(w, e, component.PromptComponent.Kind())
	if !ok {
		return
	}
	if _, occupied := HeldWeapon(w, holder); occupied {
		prompt.Show(weaponPromptText(weapon, PromptSwap))
	} else {
		prompt.Show(weaponPromptText(weapon, PromptPickUp))
	}
}

func weaponPromptText(weapon *component.Weapon, action string) string {
	return "Press " + weapon.Key.String() + " to " + action
}

// HeldWeapon returns the weapon currently attached to holder.
func HeldWeapon(w *ecs.World, holder ecs.Entity) (ecs.Entity, bool) {
	for _, child := range Children(w, holder) {
		if ecs.Has(w, child, component.WeaponComponent.Kind()) {
			return child, true
		}
	}
	return 0, false
}

// PerformPickup equips e into the holder recorded on its Weapon, dropping
// the holder's current weapon first.
func PerformPickup(w *ecs.World, e ecs.Entity) {
	weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	if !ok {
		return
	}
	holder := ecs.Entity(weapon.Holder)
	if !ecs.IsAlive(w, holder) {
		return
	}
	if old, ok := HeldWeapon(w, holder); ok && old != e {
		DropWeapon(w, old)
	}
	EquipWeapon(w, e, holder)
}

// EquipWeapon attaches e to holder and takes it out of the physics
// simulation.
func EquipWeapon(w *ecs.World, e, holder ecs.Entity) {
	weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	if !ok {
		return
	}
	log.Debug().Stringer("weapon", e).Stringer("holder", holder).Msg("equipping")

	if err := Attach(w, e, holder); err != nil {
		log.Error().Err(err).Stringer("weapon", e).Msg("equip")
		return
	}
	weapon.Equipped = true
	weapon.CanPickup = false
	weapon.Holder = uint64(holder)

	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		rb.ColliderEnabled = false
		rb.Kinematic = true
	}
	setPickupVolume(w, e, false)
	if prompt, ok := ecs.Get(w, e, component.PromptComponent.Kind()); ok {
		prompt.Hide()
	}
}

// DropWeapon detaches e and places it on the ground below the player that
// carried it.
func DropWeapon(w *ecs.World, e ecs.Entity) {
	weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind())
	if !ok {
		return
	}
	log.Debug().Stringer("weapon", e).Msg("dropping")

	Detach(w, e)
	weapon.Equipped = false

	if tr, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		if pos, ok := dropPosition(w, weapon); ok {
			tr.Position = pos
		}
	}

	if rb, ok := ecs.Get(w, e, component.RigidBodyComponent.Kind()); ok {
		rb.Kinematic = false
		rb.UseGravity = false
		rb.ColliderEnabled = true
		rb.IsTrigger = true
	}
	setPickupVolume(w, e, true)
}

// dropPosition finds where a weapon dropped by its player lands. It reports
// false when the weapon has no player to drop from.
func dropPosition(w *ecs.World, weapon *component.Weapon) (mgl64.Vec3, bool) {
	player := ecs.Entity(weapon.Player)
	playerTr, ok := ecs.Get(w, player, component.TransformComponent.Kind())
	if !ok {
		return mgl64.Vec3{}, false
	}
	var exclude ecs.Layer
	if body, ok := ecs.Get(w, player, component.CharacterBodyComponent.Kind()); ok {
		exclude = ecs.Layer(body.Layer)
	}

	origin := playerTr.Position.Add(common.Up.Mul(weapon.DropLift))
	if hit, ok := w.PhysicsWorld().RaycastDown(origin, weapon.DropRayLength, exclude); ok {
		return hit.Point.Add(hit.Normal.Mul(weapon.SurfaceOffset)), true
	}
	return origin, true
}

func setPickupVolume(w *ecs.World, e ecs.Entity, enabled bool) {
	if trig, ok := ecs.Get(w, e, component.TriggerComponent.Kind()); ok {
		trig.Enabled = enabled
		if !enabled {
			trig.Inside = nil
		}
	}
	w.PhysicsWorld().SetVolumeEnabled(e, enabled)
}
