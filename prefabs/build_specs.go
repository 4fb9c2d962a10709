package prefabs

import (
	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type NameComponentSpec struct {
	Value string `yaml:"value"`
}

type TransformComponentSpec struct {
	Position Vec3    `yaml:"position"`
	Pitch    float64 `yaml:"pitch"`
	Yaw      float64 `yaml:"yaw"`
	Roll     float64 `yaml:"roll"`
}

type PlayerControllerComponentSpec struct {
	MoveSpeed              float64 `yaml:"move_speed"`
	Gravity                float64 `yaml:"gravity"`
	GroundedVelocity       float64 `yaml:"grounded_velocity"`
	TurnSmoothTime         float64 `yaml:"turn_smooth_time"`
	StandingTurnSmoothTime float64 `yaml:"standing_turn_smooth_time"`
	MouseSensitivity       float64 `yaml:"mouse_sensitivity"`
	Deadzone               float64 `yaml:"deadzone"`
	// CameraName names the entity whose yaw orients locked-mode input.
	CameraName string `yaml:"camera_name"`
}

type CharacterBodyComponentSpec struct {
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`
	StepOffset float64 `yaml:"step_offset"`
	Layer      string  `yaml:"layer"`
}

type CameraRigComponentSpec struct {
	TargetName          string      `yaml:"target_name"`
	SmoothSpeed         float64     `yaml:"smooth_speed"`
	SmoothReferenceFPS  float64     `yaml:"smooth_reference_fps"`
	ThirdPersonOffset   Vec3        `yaml:"third_person_offset"`
	FirstPersonOffset   Vec3        `yaml:"first_person_offset"`
	LookHeight          float64     `yaml:"look_height"`
	MouseSensitivity    float64     `yaml:"mouse_sensitivity"`
	VerticalPitchLimit  float64     `yaml:"vertical_pitch_limit"`
	ThirdPersonPitchMax float64     `yaml:"third_person_pitch_max"`
	DefaultPitch        float64     `yaml:"default_pitch"`
	LockReturnRate      float64     `yaml:"lock_return_rate"`
	ToggleKey           *ebiten.Key `yaml:"toggle_key"`
	FreeLookButton      string      `yaml:"free_look_button"`
}

type LightComponentSpec struct {
	Enabled     *bool      `yaml:"enabled"`
	Intensity   float64    `yaml:"intensity"`
	Range       float64    `yaml:"range"`
	Color       *YAMLColor `yaml:"color"`
	Directional bool       `yaml:"directional"`
}

type ParticlesComponentSpec struct {
	Playing bool `yaml:"playing"`
}

type TriggerComponentSpec struct {
	HalfExtents Vec3  `yaml:"half_extents"`
	Offset      Vec3  `yaml:"offset"`
	Enabled     *bool `yaml:"enabled"`
}

type TorchComponentSpec struct {
	Key             *ebiten.Key `yaml:"key"`
	MinIntensity    float64     `yaml:"min_intensity"`
	MaxIntensity    float64     `yaml:"max_intensity"`
	FlickerInterval float64     `yaml:"flicker_interval"`
	Lit             *bool       `yaml:"lit"`
}

type WeaponComponentSpec struct {
	Key           *ebiten.Key `yaml:"key"`
	HolderName    string      `yaml:"holder_name"`
	DropRayLength float64     `yaml:"drop_ray_length"`
	DropLift      float64     `yaml:"drop_lift"`
	SurfaceOffset float64     `yaml:"surface_offset"`
}

type RigidBodyComponentSpec struct {
	Kinematic       bool `yaml:"kinematic"`
	UseGravity      bool `yaml:"use_gravity"`
	ColliderEnabled bool `yaml:"collider_enabled"`
	IsTrigger       bool `yaml:"is_trigger"`
}

// WeaponHolderComponentSpec describes the named child a player carries
// weapons in.
type WeaponHolderComponentSpec struct {
	Name   string  `yaml:"name"`
	Offset Vec3    `yaml:"offset"`
	Yaw    float64 `yaml:"yaw"`
}

type SunComponentSpec struct {
	TimeOfDay    float64 `yaml:"time_of_day"`
	DayDuration  float64 `yaml:"day_duration"`
	Yaw          float64 `yaml:"yaw"`
	MaxIntensity float64 `yaml:"max_intensity"`
	LightName    string  `yaml:"light_name"`
}
