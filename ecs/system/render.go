package system

import (
	"fmt"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/hearthlight/common"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"golang.org/x/image/colornames"
)

// RenderSystem draws a top-down debug view of the world centered on the
// player: world X runs right and world Z runs up the screen.
type RenderSystem struct {
	focus ecs.Entity
	Scale float64
	// HUD toggles the text overlay in the top-left corner.
	HUD bool
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{Scale: common.PixelsPerUnit, HUD: true}
}

// Update tracks the entity the view is centered on.
func (r *RenderSystem) Update(w *ecs.World) {
	if ecs.IsAlive(w, r.focus) {
		return
	}
	if e, ok := ecs.First(w, component.PlayerTagComponent.Kind()); ok {
		r.focus = e
	}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil {
		return
	}
	center := mgl64.Vec3{}
	if tr, ok := ecs.Get(w, r.focus, component.TransformComponent.Kind()); ok {
		center = tr.Position
	}
	bounds := screen.Bounds()
	view := viewport{
		center: center,
		scale:  r.Scale,
		halfW:  float64(bounds.Dx()) / 2,
		halfH:  float64(bounds.Dy()) / 2,
	}

	screen.Fill(skyColor(w))
	r.drawBlocks(w, screen, view)
	r.drawLights(w, screen, view)
	r.drawWeapons(w, screen, view)
	r.drawCharacters(w, screen, view)
	r.drawCameras(w, screen, view)
	if r.HUD {
		r.drawHUD(w, screen)
	}
}

type viewport struct {
	center       mgl64.Vec3
	scale        float64
	halfW, halfH float64
}

func (v viewport) project(p mgl64.Vec3) (float32, float32) {
	x := (p.X()-v.center.X())*v.scale + v.halfW
	y := -(p.Z()-v.center.Z())*v.scale + v.halfH
	return float32(x), float32(y)
}

// skyColor blends night into day by the highest sun.
func skyColor(w *ecs.World) color.Color {
	t := 0.0
	ecs.ForEach(w, component.SunComponent.Kind(), func(_ ecs.Entity, sun *component.Sun) {
		if light, ok := ecs.Get(w, ecs.Entity(sun.Light), component.TransformComponent.Kind()); ok {
			t = math.Max(t, math.Sin(mgl64.DegToRad(light.Pitch)))
		}
	})
	return lerpColor(colornames.Midnightblue, colornames.Lightsteelblue, common.Clamp01(t))
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(common.Lerp(float64(x), float64(y), t))
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

func (r *RenderSystem) drawBlocks(w *ecs.World, screen *ebiten.Image, v viewport) {
	for _, b := range w.PhysicsWorld().Blocks() {
		x0, y0 := v.project(mgl64.Vec3{b.Min.X(), 0, b.Max.Z()})
		x1, y1 := v.project(mgl64.Vec3{b.Max.X(), 0, b.Min.Z()})
		shade := colornames.Dimgray
		if b.Max.Y() > 0.5 {
			shade = colornames.Slategray
		}
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, shade, false)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colornames.Darkslategray, false)
	}
}

func (r *RenderSystem) drawLights(w *ecs.World, screen *ebiten.Image, v viewport) {
	ecs.ForEach2(w, component.LightComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, light *component.Light, tr *component.Transform) {
		if light.Directional {
			return
		}
		x, y := v.project(tr.Position)
		if light.Enabled && light.Range > 0 {
			glow := light.Color
			glow.A = uint8(common.Clamp(24*light.Intensity, 0, 96))
			vector.FillCircle(screen, x, y, float32(light.Range*v.scale), glow, true)
		}
		core := colornames.Saddlebrown
		if light.Enabled {
			core = colornames.Orange
		}
		vector.FillCircle(screen, x, y, float32(0.25*v.scale), core, true)

		if prompt, ok := ecs.Get(w, e, component.PromptComponent.Kind()); ok && prompt.Visible {
			vector.StrokeCircle(screen, x, y, float32(0.4*v.scale), 1, colornames.White, true)
		}
	})
}

func (r *RenderSystem) drawWeapons(w *ecs.World, screen *ebiten.Image, v viewport) {
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, weapon *component.Weapon, tr *component.Transform) {
		half := 0.5 * v.scale
		x, y := v.project(tr.Position)
		fx, fy := v.project(tr.Position.Add(common.Forward(tr.Yaw).Mul(0.6)))
		c := colornames.Silver
		if weapon.CanPickup {
			c = colornames.Gold
		}
		if weapon.Equipped {
			c = colornames.Lightgray
			half *= 0.6
		}
		vector.StrokeLine(screen, x, y, fx, fy, 3, c, true)
		vector.FillRect(screen, x-float32(half)/4, y-float32(half)/4, float32(half)/2, float32(half)/2, c, false)
	})
}

func (r *RenderSystem) drawCharacters(w *ecs.World, screen *ebiten.Image, v viewport) {
	ecs.ForEach2(w, component.CharacterBodyComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, body *component.CharacterBody, tr *component.Transform) {
		x, y := v.project(tr.Position)
		fx, fy := v.project(tr.Position.Add(common.Forward(tr.Yaw).Mul(body.Radius * 2)))
		vector.FillCircle(screen, x, y, float32(body.Radius*v.scale), colornames.Crimson, true)
		vector.StrokeLine(screen, x, y, fx, fy, 2, colornames.White, true)
	})
}

func (r *RenderSystem) drawCameras(w *ecs.World, screen *ebiten.Image, v viewport) {
	ecs.ForEach2(w, component.CameraRigComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, rig *component.CameraRig, tr *component.Transform) {
		if rig.FirstPerson {
			return
		}
		x, y := v.project(tr.Position)
		fx, fy := v.project(tr.Position.Add(common.Forward(tr.Yaw).Mul(1.5)))
		vector.StrokeLine(screen, x, y, fx, fy, 1, colornames.Aquamarine, true)
		vector.StrokeRect(screen, x-3, y-3, 6, 6, 1, colornames.Aquamarine, false)
	})
}

func (r *RenderSystem) drawHUD(w *ecs.World, screen *ebiten.Image) {
	msg := fmt.Sprintf("TPS %0.1f  FPS %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS())
	if pc, ok := ecs.Get(w, r.focus, component.PlayerControllerComponent.Kind()); ok {
		msg += fmt.Sprintf("\nview %s", pc.Mode())
	}
	if tr, ok := ecs.Get(w, r.focus, component.TransformComponent.Kind()); ok {
		p := tr.Position
		msg += fmt.Sprintf("\npos %.2f %.2f %.2f  yaw %.1f", p.X(), p.Y(), p.Z(), tr.Yaw)
	}
	ecs.ForEach(w, component.SunComponent.Kind(), func(_ ecs.Entity, sun *component.Sun) {
		msg += fmt.Sprintf("\ntime of day %.3f", sun.TimeOfDay)
	})
	ebitenutil.DebugPrintAt(screen, msg, 8, 8)
}
