package mathutil

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Vec3 is a 3-component float32 vector (value type, stack-allocated).
type Vec3 = mgl32.Vec3

// Unit axes. Forward/Up/Right at zero rotation.
var (
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

func V3(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Vec3Equals compares component-wise with |a-b| <= tolerance.
func Vec3Equals(a, b Vec3, tolerance float32) bool {
	return math32.Abs(a[0]-b[0]) <= tolerance &&
		math32.Abs(a[1]-b[1]) <= tolerance &&
		math32.Abs(a[2]-b[2]) <= tolerance
}

// SafeNormalize returns v/|v|, or the zero vector if |v|² < tolerance.
func SafeNormalize(v Vec3, tolerance float32) Vec3 {
	sq := v.LenSqr()
	if sq < tolerance {
		return Vec3{}
	}
	return v.Mul(1 / math32.Sqrt(sq))
}

// Vector3DAngle returns the angle in radians between a and b.
func Vector3DAngle(a, b Vec3) float32 {
	d := math32.Sqrt(a.LenSqr() * b.LenSqr())
	if d < SmallNumber {
		return 0
	}
	return math32.Acos(Clamp(-1, 1, a.Dot(b)/d))
}

func Vec3String(v Vec3) string {
	return fmt.Sprintf("x=%g y=%g z=%g", v[0], v[1], v[2])
}
