package geom

import (
	"fmt"
	"math"
)

// Rotator is a rotation in degrees.
type Rotator struct {
	Pitch, Yaw, Roll float64
}

func (r Rotator) String() string {
	return fmt.Sprintf("P=%.3f Y=%.3f R=%.3f", r.Pitch, r.Yaw, r.Roll)
}

// Quaternion converts r to a unit quaternion.
func (r Rotator) Quaternion() Quat {
	const halfDeg = math.Pi / 180 / 2
	sp, cp := math.Sincos(r.Pitch * halfDeg)
	sy, cy := math.Sincos(r.Yaw * halfDeg)
	sr, cr := math.Sincos(r.Roll * halfDeg)
	return Quat{
		X: cr*sp*sy - sr*cp*cy,
		Y: -cr*sp*cy - sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
		W: cr*cp*cy + sr*sp*sy,
	}
}

// Normalize maps every axis into (-180, 180].
func (r Rotator) Normalize() Rotator {
	return Rotator{Pitch: NormalizeAxis(r.Pitch), Yaw: NormalizeAxis(r.Yaw), Roll: NormalizeAxis(r.Roll)}
}

// NormalizeAxis maps an angle in degrees into (-180, 180].
func NormalizeAxis(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a > 180 {
		a -= 360
	}
	return a
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat is the quaternion of no rotation.
var IdentityQuat = Quat{W: 1}

func (q Quat) String() string {
	return fmt.Sprintf("X=%.3f Y=%.3f Z=%.3f W=%.3f", q.X, q.Y, q.Z, q.W)
}

// Rotator converts q to Euler angles. Gimbal-locked quaternions put the
// whole remaining rotation into Roll.
func (q Quat) Rotator() Rotator {
	const (
		radToDeg  = 180 / math.Pi
		threshold = 0.4999995
	)
	test := q.Z*q.X - q.W*q.Y
	yaw := math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z)) * radToDeg

	switch {
	case test < -threshold:
		return Rotator{Pitch: -90, Yaw: yaw, Roll: NormalizeAxis(-yaw - 2*math.Atan2(q.X, q.W)*radToDeg)}
	case test > threshold:
		return Rotator{Pitch: 90, Yaw: yaw, Roll: NormalizeAxis(yaw - 2*math.Atan2(q.X, q.W)*radToDeg)}
	}
	return Rotator{
		Pitch: math.Asin(2*test) * radToDeg,
		Yaw:   yaw,
		Roll:  math.Atan2(-2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y)) * radToDeg,
	}
}
