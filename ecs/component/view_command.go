package component

type ViewCommandKind int

const (
	SetFirstPerson ViewCommandKind = iota
	SetFreeLook
)

type ViewCommand struct {
	Kind    ViewCommandKind
	Enabled bool
}

// ViewCommands is the player's inbox for mode changes issued by the camera.
type ViewCommands struct {
	Pending []ViewCommand
}

func (v *ViewCommands) Push(cmd ViewCommand) {
	v.Pending = append(v.Pending, cmd)
}

// Drain returns the queued commands in order and empties the inbox.
func (v *ViewCommands) Drain() []ViewCommand {
	out := v.Pending
	v.Pending = nil
	return out
}

var ViewCommandsComponent = NewComponent[ViewCommands]()
