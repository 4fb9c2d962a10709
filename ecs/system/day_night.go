package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
)

type DayNightSystem struct{}

func NewDayNightSystem() *DayNightSystem {
	return &DayNightSystem{}
}

func (s *DayNightSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.SunComponent.Kind(), func(e ecs.Entity, sun *component.Sun) {
		lightEntity, ok := sunLight(w, e, sun)
		if !ok {
			return
		}
		tr, ok := ecs.Get(w, lightEntity, component.TransformComponent.Kind())
		if !ok {
			return
		}
		light, _ := ecs.Get(w, lightEntity, component.LightComponent.Kind())
		StepDayNight(sun, tr, light, dt)
	})
}

// sunLight resolves the light a sun drives: the bound entity, then a light
// found by name, then a light on the sun entity itself.
func sunLight(w *ecs.World, e ecs.Entity, sun *component.Sun) (ecs.Entity, bool) {
	if l := ecs.Entity(sun.Light); sun.Light != 0 && ecs.IsAlive(w, l) {
		return l, true
	}
	if sun.LightName != "" {
		if l, ok := FindByName(w, sun.LightName); ok && ecs.Has(w, l, component.LightComponent.Kind()) {
			sun.Light = uint64(l)
			return l, true
		}
	}
	if ecs.Has(w, e, component.LightComponent.Kind()) {
		sun.Light = uint64(e)
		return e, true
	}
	return 0, false
}

// StepDayNight advances the time of day and points the light along the
// sun's arc. light may be nil.
func StepDayNight(sun *component.Sun, tr *component.Transform, light *component.Light, dt float64) {
	if sun.DayDuration > 0 {
		sun.TimeOfDay = math.Mod(sun.TimeOfDay+dt/sun.DayDuration, 1)
		if sun.TimeOfDay < 0 {
			sun.TimeOfDay++
		}
	}

	tr.Pitch = sun.TimeOfDay * 360
	tr.Yaw = sun.Yaw
	tr.Roll = 0

	if light != nil && sun.MaxIntensity > 0 {
		light.Intensity = sun.MaxIntensity * math.Max(0, math.Sin(mgl64.DegToRad(tr.Pitch)))
	}
}
