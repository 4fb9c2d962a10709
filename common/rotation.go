package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up          = mgl64.Vec3{0, 1, 0}
	WorldRight  = mgl64.Vec3{1, 0, 0}
	WorldFwd    = mgl64.Vec3{0, 0, 1}
	zeroEpsilon = 1e-9
)

// Euler builds a rotation from angles in degrees, applied roll first, then
// pitch about X, then yaw about Y. Positive pitch tilts forward downward.
func Euler(pitch, yaw, roll float64) mgl64.Quat {
	qy := mgl64.QuatRotate(mgl64.DegToRad(yaw), Up)
	qx := mgl64.QuatRotate(mgl64.DegToRad(pitch), WorldRight)
	qz := mgl64.QuatRotate(mgl64.DegToRad(roll), WorldFwd)
	return qy.Mul(qx).Mul(qz)
}

// Forward returns the horizontal unit vector for a yaw in degrees.
func Forward(yaw float64) mgl64.Vec3 {
	r := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Sin(r), 0, math.Cos(r)}
}

// Right returns the horizontal unit vector to the right of a yaw in degrees.
func Right(yaw float64) mgl64.Vec3 {
	r := mgl64.DegToRad(yaw)
	return mgl64.Vec3{math.Cos(r), 0, -math.Sin(r)}
}

// YawOf returns the heading in degrees of a direction projected on the
// ground plane, measured from +Z toward +X.
func YawOf(dir mgl64.Vec3) float64 {
	return mgl64.RadToDeg(math.Atan2(dir.X(), dir.Z()))
}

// LookAngles returns the pitch and yaw in degrees that face from one point
// toward another. ok is false when the points coincide.
func LookAngles(from, to mgl64.Vec3) (pitch, yaw float64, ok bool) {
	d := to.Sub(from)
	l := d.Len()
	if l < zeroEpsilon {
		return 0, 0, false
	}
	yaw = NormalizeAngle(YawOf(d))
	pitch = -mgl64.RadToDeg(math.Asin(Clamp(d.Y()/l, -1, 1)))
	return pitch, yaw, true
}

// NormalizeOrZero returns v scaled to unit length, or the zero vector.
func NormalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < zeroEpsilon {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}
