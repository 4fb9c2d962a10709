package system

import "errors"

var (
	ErrMissingCharacterBody = errors.New("system: entity has no character body in the physics world")
	ErrMissingAnimator      = errors.New("system: entity has no animator")
	ErrMissingTarget        = errors.New("system: camera target is not set")
	ErrTargetNotPlayer      = errors.New("system: camera target has no player controller")
	ErrMissingLight         = errors.New("system: torch has no light")
	ErrMissingParticles     = errors.New("system: torch has no particles")
	ErrMissingPrompt        = errors.New("system: torch has no prompt")
	ErrMissingHolder        = errors.New("system: player has no weapon holder")
)
