package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// PixelsPerUnit scales world units in the top-down debug view.
	PixelsPerUnit = 24.0

	DefaultTPS = 60
)
