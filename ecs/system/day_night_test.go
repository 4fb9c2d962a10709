package system

import (
	"testing"

	"github.com/milk9111/hearthlight/ecs"
	"github.com/milk9111/hearthlight/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepDayNight(t *testing.T) {
	tests := []struct {
		name          string
		start, dt     float64
		wantTime      float64
		wantPitch     float64
		wantIntensity float64
	}{
		{"noon", 0.2, 6, 0.25, 90, 1.2},
		{"sunset", 0.45, 6, 0.5, 180, 0},
		{"night", 0.6, 12, 0.7, 252, 0},
		{"wraps past midnight", 0.95, 12, 0.05, 18, 1.2 * 0.30901699437494745},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sun := &component.Sun{TimeOfDay: tc.start, DayDuration: 120, Yaw: -30, MaxIntensity: 1.2}
			tr := &component.Transform{Roll: 7}
			light := &component.Light{Intensity: 9}

			StepDayNight(sun, tr, light, tc.dt)
			assert.InDelta(t, tc.wantTime, sun.TimeOfDay, 1e-9)
			assert.InDelta(t, tc.wantPitch, tr.Pitch, 1e-6)
			assert.Equal(t, -30.0, tr.Yaw)
			assert.Zero(t, tr.Roll)
			assert.InDelta(t, tc.wantIntensity, light.Intensity, 1e-6)
		})
	}
}

func TestStepDayNightWithoutDurationHoldsTime(t *testing.T) {
	sun := &component.Sun{TimeOfDay: 0.3}
	tr := &component.Transform{}
	light := &component.Light{Intensity: 2}

	StepDayNight(sun, tr, light, 1)
	assert.Equal(t, 0.3, sun.TimeOfDay)
	assert.InDelta(t, 108, tr.Pitch, 1e-9)
	assert.Equal(t, 2.0, light.Intensity, "zero MaxIntensity leaves the light alone")
}

func TestDayNightSystemResolvesLightByName(t *testing.T) {
	w := ecs.NewWorld()
	sunEntity := ecs.CreateEntity(w)
	sun := &component.Sun{TimeOfDay: 0, DayDuration: 10, LightName: "sun_light"}
	mustAdd(t, w, sunEntity, component.SunComponent.Kind(), sun)

	light := ecs.CreateEntity(w)
	mustAdd(t, w, light, component.NameComponent.Kind(), &component.Name{Value: "sun_light"})
	mustAdd(t, w, light, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, light, component.LightComponent.Kind(), &component.Light{Directional: true})

	w.AddSystem(NewDayNightSystem())
	w.Update(1)

	assert.Equal(t, uint64(light), sun.Light)
	tr, _ := ecs.Get(w, light, component.TransformComponent.Kind())
	assert.InDelta(t, 36, tr.Pitch, 1e-9)
}

func TestDayNightSystemWithoutLightIsNoop(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sun := &component.Sun{TimeOfDay: 0.1, DayDuration: 10}
	mustAdd(t, w, e, component.SunComponent.Kind(), sun)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})

	w.AddSystem(NewDayNightSystem())
	require.NotPanics(t, func() { w.Update(1) })
	assert.Equal(t, 0.1, sun.TimeOfDay)
	assert.Zero(t, sun.Light)
}

func TestDayNightSystemDrivesOwnLight(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	sun := &component.Sun{DayDuration: 4, MaxIntensity: 1}
	mustAdd(t, w, e, component.SunComponent.Kind(), sun)
	mustAdd(t, w, e, component.TransformComponent.Kind(), &component.Transform{})
	mustAdd(t, w, e, component.LightComponent.Kind(), &component.Light{})

	w.AddSystem(NewDayNightSystem())
	w.Update(1)

	l, _ := ecs.Get(w, e, component.LightComponent.Kind())
	assert.InDelta(t, 0.25, sun.TimeOfDay, 1e-9)
	assert.InDelta(t, 1, l.Intensity, 1e-9)
}
