package entity

import (
	"fmt"

	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/milk9111/hearthlight/prefabs"
)

// ReloadPrefab re-reads a prefab and copies its tuning onto every live
// entity built from it. Runtime state (view modes, lit torches, equipped
// weapons, time of day) is kept. It returns the number of entities updated.
func ReloadPrefab(w *ecs.World, prefabPath string) (int, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("reload prefab: %w", err)
	}

	var targets []ecs.Entity
	ecs.ForEach(w, component.PrefabRefComponent.Kind(), func(e ecs.Entity, ref *component.PrefabRef) {
		if ref.Path == prefabPath {
			targets = append(targets, e)
		}
	})

	for _, e := range targets {
		if err := reloadEntity(w, e, spec); err != nil {
			return 0, fmt.Errorf("reload prefab %q: %w", prefabPath, err)
		}
	}
	return len(targets), nil
}

func reloadEntity(w *ecs.World, e ecs.Entity, spec prefabs.EntityBuildSpec) error {
	if raw, ok := spec.Components["player_controller"]; ok {
		if pc, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind()); ok {
			s, err := prefabs.DecodeComponentSpec[prefabs.PlayerControllerComponentSpec](raw)
			if err != nil {
				return err
			}
			ApplyPlayerControllerSpec(pc, s)
		}
	}
	if raw, ok := spec.Components["camera_rig"]; ok {
		if rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind()); ok {
			s, err := prefabs.DecodeComponentSpec[prefabs.CameraRigComponentSpec](raw)
			if err != nil {
				return err
			}
			if err := ApplyCameraRigSpec(rig, s); err != nil {
				return err
			}
		}
	}
	if raw, ok := spec.Components["torch"]; ok {
		if torch, ok := ecs.Get(w, e, component.TorchComponent.Kind()); ok {
			s, err := prefabs.DecodeComponentSpec[prefabs.TorchComponentSpec](raw)
			if err != nil {
				return err
			}
			ApplyTorchSpec(torch, s)
		}
	}
	if raw, ok := spec.Components["weapon"]; ok {
		if weapon, ok := ecs.Get(w, e, component.WeaponComponent.Kind()); ok {
			s, err := prefabs.DecodeComponentSpec[prefabs.WeaponComponentSpec](raw)
			if err != nil {
				return err
			}
			ApplyWeaponSpec(weapon, s)
		}
	}
	if raw, ok := spec.Components["sun"]; ok {
		if sun, ok := ecs.Get(w, e, component.SunComponent.Kind()); ok {
			s, err := prefabs.DecodeComponentSpec[prefabs.SunComponentSpec](raw)
			if err != nil {
				return err
			}
			ApplySunSpec(sun, s)
		}
	}
	if raw, ok := spec.Components["light"]; ok {
		if light, ok := ecs.Get(w, e, component.LightComponent.Kind()); ok {
			s, err := prefabs.DecodeComponentSpec[prefabs.LightComponentSpec](raw)
			if err != nil {
				return err
			}
			light.Range = s.Range
			light.Color = s.Color.NRGBA(light.Color)
		}
	}
	return nil
}
