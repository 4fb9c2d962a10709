package common

import "math"

const minSmoothTime = 0.0001

// SmoothDamp moves current toward target like a critically damped spring.
// velocity carries state between calls and must persist across frames.
// maxSpeed <= 0 means unbounded.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	if velocity == nil || dt <= 0 {
		return current
	}
	smoothTime = math.Max(minSmoothTime, smoothTime)
	if maxSpeed <= 0 {
		maxSpeed = math.Inf(1)
	}

	omega := 2 / smoothTime
	x := omega * dt
	exp := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTo := target

	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * exp
	output := target + (change+temp)*exp

	// never overshoot
	if (originalTo-current > 0) == (output > originalTo) {
		output = originalTo
		*velocity = (output - originalTo) / dt
	}
	return output
}

// SmoothDampAngle is SmoothDamp for angles in degrees; it takes the shortest
// way around.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, maxSpeed, dt)
}
