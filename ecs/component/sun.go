package component

// Sun drives a directional light through a day.
type Sun struct {
	// TimeOfDay is the fraction of the day in [0, 1). The light pitch is
	// TimeOfDay*360, so it points straight down at 0.25.
	TimeOfDay   float64
	DayDuration float64
	Yaw         float64
	// MaxIntensity is the light intensity with the sun overhead.
	MaxIntensity float64
	LightName    string
	Light        uint64
}

var SunComponent = NewComponent[Sun]()
