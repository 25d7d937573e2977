package mathutil

import "github.com/chewxy/math32"

// Tolerances used across the rotation types. Callers pass them explicitly.
const (
	// Epsilon is the general comparison tolerance (KINDA_SMALL_NUMBER).
	Epsilon float32 = 1e-4

	// SmallNumber guards divisions and identity checks.
	SmallNumber float32 = 1e-8

	// QuatNormalizedThreshold is the allowed |1 - norm²| for a quaternion
	// to count as normalized. Looser than Epsilon on purpose.
	QuatNormalizedThreshold float32 = 0.01

	// GimbalLockThreshold is compared against z·x - w·y when extracting
	// Euler angles from a quaternion.
	GimbalLockThreshold float32 = 0.4999995

	// SlerpDotThreshold is the |dot| above which Slerp falls back to
	// linear interpolation.
	SlerpDotThreshold float32 = 0.9999
)

const (
	Pi       = float32(math32.Pi)
	TwoPi    = Pi * 2
	HalfPi   = Pi / 2
	degToRad = Pi / 180
	radToDeg = 180 / Pi
)

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float32) float32 {
	return d * degToRad
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float32) float32 {
	return r * radToDeg
}

// FloatEqual reports whether |a-b| < tolerance.
func FloatEqual(a, b, tolerance float32) bool {
	return math32.Abs(a-b) < tolerance
}

// IsFinite reports whether f is neither NaN nor ±Inf.
func IsFinite(f float32) bool {
	return !math32.IsNaN(f) && !math32.IsInf(f, 0)
}

// Clamp restricts v to [lo, hi].
func Clamp(lo, hi, v float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp returns a when t = 0 and b when t = 1.
func Lerp(a, b, t float32) float32 {
	return (1-t)*a + t*b
}

// ClampAxis maps an angle in degrees into [0, 360).
func ClampAxis(angle float32) float32 {
	angle = math32.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// NormalizeAxis maps an angle in degrees into (-180, 180].
func NormalizeAxis(angle float32) float32 {
	angle = math32.Mod(angle, 360)
	if angle > 180 {
		angle -= 360
	} else if angle <= -180 {
		angle += 360
	}
	return angle
}

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float32) float32 {
	d := ClampAxis(a - b)
	if d > 180 {
		return 360 - d
	}
	return d
}
