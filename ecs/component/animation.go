package component

// Animator is the parameter sink of an animation controller.
type Animator struct {
	Bools  map[string]bool
	Floats map[string]float64
}

func (a *Animator) SetBool(name string, v bool) {
	if a.Bools == nil {
		a.Bools = make(map[string]bool)
	}
	a.Bools[name] = v
}

func (a *Animator) SetFloat(name string, v float64) {
	if a.Floats == nil {
		a.Floats = make(map[string]float64)
	}
	a.Floats[name] = v
}

func (a *Animator) Bool(name string) bool {
	return a.Bools[name]
}

func (a *Animator) Float(name string) float64 {
	return a.Floats[name]
}

var AnimatorComponent = NewComponent[Animator]()
