package component

// ViewMode is the derived camera/control mode. FirstPerson wins over
// free-look.
type ViewMode int

const (
	ThirdPersonLocked ViewMode = iota
	ThirdPersonFreeLook
	FirstPerson
)

func (m ViewMode) String() string {
	switch m {
	case ThirdPersonFreeLook:
		return "third_person_free_look"
	case FirstPerson:
		return "first_person"
	default:
		return "third_person_locked"
	}
}

func modeOf(firstPerson, freeLook bool) ViewMode {
	if firstPerson {
		return FirstPerson
	}
	if freeLook {
		return ThirdPersonFreeLook
	}
	return ThirdPersonLocked
}

type PlayerController struct {
	MoveSpeed              float64
	Gravity                float64
	GroundedVelocity       float64
	TurnSmoothTime         float64
	StandingTurnSmoothTime float64
	MouseSensitivity       float64
	Deadzone               float64

	VerticalVelocity   float64
	TurnSmoothVelocity float64

	firstPerson bool
	freeLook    bool

	// Camera is the entity whose yaw orients locked-mode movement.
	Camera   uint64
	Disabled bool
}

func (p *PlayerController) SetFirstPerson(on bool) {
	p.firstPerson = on
}

func (p *PlayerController) SetFreeLook(on bool) {
	p.freeLook = on
}

func (p *PlayerController) FirstPerson() bool {
	return p.firstPerson
}

func (p *PlayerController) FreeLook() bool {
	return p.freeLook
}

func (p *PlayerController) Mode() ViewMode {
	return modeOf(p.firstPerson, p.freeLook)
}

var PlayerControllerComponent = NewComponent[PlayerController]()
