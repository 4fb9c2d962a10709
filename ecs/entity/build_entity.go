package entity

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/milk9111/hearthlight/prefabs"
	"github.com/rs/zerolog/log"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

// Placement overrides parts of a prefab when it is instantiated.
type Placement struct {
	Name     string
	Position *mgl64.Vec3
	Yaw      *float64
}

type buildContext struct {
	PrefabPath string
	Placement  Placement
	// children are created alongside the entity and destroyed with it when
	// the build fails.
	children []ecs.Entity
	links    *linker
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"name":              addName,
	"player_tag":        addPlayerTag,
	"camera_tag":        addCameraTag,
	"transform":         addTransform,
	"input":             addInput,
	"player_controller": addPlayerController,
	"character_body":    addCharacterBody,
	"animator":          addAnimator,
	"camera_rig":        addCameraRig,
	"light":             addLight,
	"particles":         addParticles,
	"prompt":            addPrompt,
	"trigger":           addTrigger,
	"torch":             addTorch,
	"weapon":            addWeapon,
	"rigid_body":        addRigidBody,
	"weapon_holder":     addWeaponHolder,
	"sun":               addSun,
}

// transform must precede everything that registers with the physics world.
var componentBuildOrder = []string{
	"name",
	"player_tag",
	"camera_tag",
	"transform",
	"input",
	"player_controller",
	"character_body",
	"animator",
	"camera_rig",
	"light",
	"particles",
	"prompt",
	"trigger",
	"torch",
	"weapon",
	"rigid_body",
	"weapon_holder",
	"sun",
}

// BuildEntity instantiates a prefab and resolves its name references
// against the entities already in the world.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	return BuildEntityAt(w, prefabPath, Placement{})
}

// BuildEntityAt instantiates a prefab with placement overrides.
func BuildEntityAt(w *ecs.World, prefabPath string, placement Placement) (ecs.Entity, error) {
	links := &linker{}
	e, err := buildEntity(w, prefabPath, placement, links)
	if err != nil {
		return 0, err
	}
	links.resolve(w)
	return e, nil
}

func buildEntity(w *ecs.World, prefabPath string, placement Placement, links *linker) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath, Placement: placement, links: links}
	fail := func(err error) (ecs.Entity, error) {
		for _, child := range ctx.children {
			ecs.DestroyEntity(w, child)
		}
		ecs.DestroyEntity(w, e)
		return 0, err
	}
	if err := ecs.Add(w, e, component.PrefabRefComponent.Kind(), &component.PrefabRef{Path: prefabPath}); err != nil {
		return fail(fmt.Errorf("build entity: %q: %w", prefabPath, err))
	}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if placement.Name != "" {
		remaining["name"] = map[string]any{"value": placement.Name}
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			return fail(fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err))
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		return fail(fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0]))
	}

	return e, nil
}

// SetEntityTransform moves an entity and anything it registered with the
// physics world.
func SetEntityTransform(w *ecs.World, e ecs.Entity, position mgl64.Vec3, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
	}
	t.Position = position
	t.Yaw = yaw
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
		return err
	}
	w.PhysicsWorld().SetCharacterPosition(e, position)
	if trig, ok := ecs.Get(w, e, component.TriggerComponent.Kind()); ok {
		w.PhysicsWorld().SetVolumeCenter(e, position.Add(trig.Offset))
	}
	return nil
}

// linker defers references by entity name until every entity of a batch
// exists.
type linker struct {
	pending []link
}

type link struct {
	from   ecs.Entity
	target string
	apply  func(target ecs.Entity)
}

func (l *linker) add(from ecs.Entity, target string, apply func(ecs.Entity)) {
	if l == nil || target == "" {
		return
	}
	l.pending = append(l.pending, link{from: from, target: target, apply: apply})
}

// resolve binds every pending reference it can. Unknown names are left
// unbound; the systems report them as configuration errors.
func (l *linker) resolve(w *ecs.World) {
	if l == nil {
		return
	}
	for _, ln := range l.pending {
		target, ok := findByName(w, ln.target)
		if !ok {
			log.Warn().Stringer("entity", ln.from).Str("target", ln.target).Msg("unresolved entity reference")
			continue
		}
		ln.apply(target)
	}
	l.pending = nil
}

func findByName(w *ecs.World, name string) (ecs.Entity, bool) {
	var found ecs.Entity
	ok := false
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		if n.Value == name && (!ok || e < found) {
			found, ok = e, true
		}
	})
	return found, ok
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.NameComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: spec.Value})
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent.Kind(), &component.CameraTag{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	t := &component.Transform{
		Position: spec.Position.Vec(),
		Pitch:    spec.Pitch,
		Yaw:      spec.Yaw,
		Roll:     spec.Roll,
	}
	if ctx.Placement.Position != nil {
		t.Position = *ctx.Placement.Position
	}
	if ctx.Placement.Yaw != nil {
		t.Yaw = *ctx.Placement.Yaw
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addPlayerController(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerControllerComponentSpec](raw)
	if err != nil {
		return err
	}
	pc := &component.PlayerController{}
	ApplyPlayerControllerSpec(pc, spec)
	if err := ecs.Add(w, e, component.PlayerControllerComponent.Kind(), pc); err != nil {
		return err
	}
	ctx.links.add(e, spec.CameraName, func(camera ecs.Entity) {
		pc.Camera = uint64(camera)
	})
	return nil
}

// ApplyPlayerControllerSpec copies tuning onto a controller, leaving its
// runtime state alone.
func ApplyPlayerControllerSpec(pc *component.PlayerController, spec prefabs.PlayerControllerComponentSpec) {
	pc.MoveSpeed = spec.MoveSpeed
	pc.Gravity = spec.Gravity
	pc.GroundedVelocity = spec.GroundedVelocity
	pc.TurnSmoothTime = spec.TurnSmoothTime
	pc.StandingTurnSmoothTime = spec.StandingTurnSmoothTime
	pc.MouseSensitivity = spec.MouseSensitivity
	pc.Deadzone = spec.Deadzone
}

func addCharacterBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Radius <= 0 || spec.Height <= 0 {
		return fmt.Errorf("character body needs a positive radius and height")
	}
	layer, err := parseLayer(spec.Layer)
	if err != nil {
		return err
	}
	body := &component.CharacterBody{
		Radius:     spec.Radius,
		Height:     spec.Height,
		StepOffset: spec.StepOffset,
		Layer:      uint(layer),
	}
	if err := ecs.Add(w, e, component.CharacterBodyComponent.Kind(), body); err != nil {
		return err
	}

	var pos mgl64.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	w.PhysicsWorld().AddCharacter(e, pos, body.Radius, body.Height, body.StepOffset, layer)
	return nil
}

func parseLayer(name string) (ecs.Layer, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return ecs.LayerDefault, nil
	case "player":
		return ecs.LayerPlayer, nil
	case "item":
		return ecs.LayerItem, nil
	default:
		return 0, fmt.Errorf("unknown collision layer %q", name)
	}
}

func addAnimator(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.AnimatorComponent.Kind(), &component.Animator{})
}

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraRigComponentSpec](raw)
	if err != nil {
		return err
	}
	rig := &component.CameraRig{}
	if err := ApplyCameraRigSpec(rig, spec); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.CameraRigComponent.Kind(), rig); err != nil {
		return err
	}
	ctx.links.add(e, spec.TargetName, func(target ecs.Entity) {
		rig.Target = uint64(target)
	})
	return nil
}

// ApplyCameraRigSpec copies tuning onto a rig, leaving its view state alone.
func ApplyCameraRigSpec(rig *component.CameraRig, spec prefabs.CameraRigComponentSpec) error {
	button, err := parseMouseButton(spec.FreeLookButton)
	if err != nil {
		return err
	}
	toggle := ebiten.KeyV
	if spec.ToggleKey != nil {
		toggle = *spec.ToggleKey
	}
	rig.SmoothSpeed = spec.SmoothSpeed
	rig.SmoothReferenceFPS = spec.SmoothReferenceFPS
	rig.ThirdPersonOffset = spec.ThirdPersonOffset.Vec()
	rig.FirstPersonOffset = spec.FirstPersonOffset.Vec()
	rig.LookHeight = spec.LookHeight
	rig.MouseSensitivity = spec.MouseSensitivity
	rig.VerticalPitchLimit = spec.VerticalPitchLimit
	rig.ThirdPersonPitchMax = spec.ThirdPersonPitchMax
	rig.DefaultPitch = spec.DefaultPitch
	rig.LockReturnRate = spec.LockReturnRate
	rig.ToggleKey = toggle
	rig.FreeLookButton = button
	return nil
}

func parseMouseButton(name string) (ebiten.MouseButton, error) {
	switch strings.ToLower(name) {
	case "", "right":
		return ebiten.MouseButtonRight, nil
	case "left":
		return ebiten.MouseButtonLeft, nil
	case "middle":
		return ebiten.MouseButtonMiddle, nil
	default:
		return 0, fmt.Errorf("unknown mouse button %q", name)
	}
}

func addLight(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LightComponentSpec](raw)
	if err != nil {
		return err
	}
	light := &component.Light{
		Enabled:     spec.Enabled == nil || *spec.Enabled,
		Intensity:   spec.Intensity,
		Range:       spec.Range,
		Color:       spec.Color.NRGBA(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Directional: spec.Directional,
	}
	return ecs.Add(w, e, component.LightComponent.Kind(), light)
}

func addParticles(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ParticlesComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ParticlesComponent.Kind(), &component.Particles{Playing: spec.Playing})
}

func addPrompt(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PromptComponent.Kind(), &component.Prompt{})
}

func addTrigger(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TriggerComponentSpec](raw)
	if err != nil {
		return err
	}
	trig := &component.Trigger{
		HalfExtents: spec.HalfExtents.Vec(),
		Offset:      spec.Offset.Vec(),
		Enabled:     spec.Enabled == nil || *spec.Enabled,
	}
	if err := ecs.Add(w, e, component.TriggerComponent.Kind(), trig); err != nil {
		return err
	}

	var pos mgl64.Vec3
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		pos = t.Position
	}
	pw := w.PhysicsWorld()
	pw.AddVolume(e, pos.Add(trig.Offset), trig.HalfExtents)
	pw.SetVolumeEnabled(e, trig.Enabled)
	return nil
}

func addTorch(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TorchComponentSpec](raw)
	if err != nil {
		return err
	}
	torch := &component.Torch{Lit: spec.Lit == nil || *spec.Lit}
	ApplyTorchSpec(torch, spec)
	if err := ecs.Add(w, e, component.TorchComponent.Kind(), torch); err != nil {
		return err
	}
	if light, ok := ecs.Get(w, e, component.LightComponent.Kind()); ok {
		light.Enabled = torch.Lit
	}
	if particles, ok := ecs.Get(w, e, component.ParticlesComponent.Kind()); ok && torch.Lit {
		particles.Play()
	}
	return nil
}

// ApplyTorchSpec copies tuning onto a torch, leaving its lit state alone.
func ApplyTorchSpec(torch *component.Torch, spec prefabs.TorchComponentSpec) {
	torch.Key = ebiten.KeyX
	if spec.Key != nil {
		torch.Key = *spec.Key
	}
	torch.MinIntensity = spec.MinIntensity
	torch.MaxIntensity = spec.MaxIntensity
	torch.FlickerInterval = spec.FlickerInterval
}

func addWeapon(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WeaponComponentSpec](raw)
	if err != nil {
		return err
	}
	weapon := &component.Weapon{}
	ApplyWeaponSpec(weapon, spec)
	return ecs.Add(w, e, component.WeaponComponent.Kind(), weapon)
}

// ApplyWeaponSpec copies tuning onto a weapon, leaving its pickup state
// alone.
func ApplyWeaponSpec(weapon *component.Weapon, spec prefabs.WeaponComponentSpec) {
	weapon.Key = ebiten.KeyX
	if spec.Key != nil {
		weapon.Key = *spec.Key
	}
	weapon.HolderName = spec.HolderName
	if weapon.HolderName == "" {
		weapon.HolderName = DefaultHolderName
	}
	weapon.DropRayLength = spec.DropRayLength
	weapon.DropLift = spec.DropLift
	weapon.SurfaceOffset = spec.SurfaceOffset
}

func addRigidBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.RigidBodyComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.RigidBodyComponent.Kind(), &component.RigidBody{
		Kinematic:       spec.Kinematic,
		UseGravity:      spec.UseGravity,
		ColliderEnabled: spec.ColliderEnabled,
		IsTrigger:       spec.IsTrigger,
	})
}

const DefaultHolderName = "WeaponHolder"

// addWeaponHolder creates the named child entity that equipped weapons
// attach to.
func addWeaponHolder(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.WeaponHolderComponentSpec](raw)
	if err != nil {
		return err
	}
	name := spec.Name
	if name == "" {
		name = DefaultHolderName
	}

	holder := ecs.CreateEntity(w)
	ctx.children = append(ctx.children, holder)
	if err := ecs.Add(w, holder, component.NameComponent.Kind(), &component.Name{Value: name}); err != nil {
		return err
	}
	if err := ecs.Add(w, holder, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return err
	}
	return ecs.Add(w, holder, component.ParentComponent.Kind(), &component.Parent{
		Entity:        uint64(e),
		LocalPosition: spec.Offset.Vec(),
		LocalYaw:      spec.Yaw,
	})
}

func addSun(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SunComponentSpec](raw)
	if err != nil {
		return err
	}
	sun := &component.Sun{TimeOfDay: spec.TimeOfDay}
	ApplySunSpec(sun, spec)
	return ecs.Add(w, e, component.SunComponent.Kind(), sun)
}

// ApplySunSpec copies tuning onto a sun, leaving the time of day alone.
func ApplySunSpec(sun *component.Sun, spec prefabs.SunComponentSpec) {
	sun.DayDuration = spec.DayDuration
	sun.Yaw = spec.Yaw
	sun.MaxIntensity = spec.MaxIntensity
	sun.LightName = spec.LightName
}
