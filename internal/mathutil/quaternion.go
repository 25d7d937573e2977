package mathutil

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Quat is a rotation quaternion (w, x, y, z). Rotations should be unit
// length; component-wise arithmetic does not preserve that, only
// Normalize restores it.
//
// The zero value is not a rotation. Use IdentityQuat or NewQuat.
//
// Composition order: C = A.Mul(B) applies B first, then A.
type Quat struct {
	W float32
	X float32
	Y float32
	Z float32
}

// QuatIdentity is the identity rotation.
var QuatIdentity = Quat{W: 1}

func IdentityQuat() Quat {
	return QuatIdentity
}

// NewQuat returns the identity quaternion.
func NewQuat() Quat {
	return QuatIdentity
}

func NewQuatWXYZ(w, x, y, z float32) Quat {
	return Quat{W: w, X: x, Y: y, Z: z}
}

// QuatFromAxisAngle builds a rotation of angle radians about a unit axis.
// The axis is remapped to the quaternion's internal frame
// (x = -axis.z, y = -axis.x, z = axis.y), so that QuatFromAxisAngle(AxisX, a)
// is the same rotation as a pitch of a, AxisY a yaw and AxisZ a roll.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s, c := math32.Sincos(0.5 * angle)
	q := Quat{
		W: c,
		X: s * -axis[2],
		Y: s * -axis[0],
		Z: s * axis[1],
	}
	q.DiagnosticCheckNaN()
	return q
}

// QuatFromEuler converts {pitch, yaw, roll} in degrees.
func QuatFromEuler(e Vec3) Quat {
	return RotatorFromEuler(e).Quaternion()
}

func QuatFromEulerAngles(pitch, yaw, roll float32) Quat {
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}.Quaternion()
}

func QuatFromRotator(r Rotator) Quat {
	return r.Quaternion()
}

// Rotator extracts Euler angles. Near the poles (|z·x - w·y| above
// GimbalLockThreshold) pitch is pinned to ±90 and roll is derived from yaw
// and 2·atan2(x, w), since yaw and roll are not separable there.
//
// Prefer composing in quaternion space (q1.Mul(q2)) over round trips
// through Euler angles.
func (q Quat) Rotator() Rotator {
	q.DiagnosticCheckNaN()

	yawY := 2 * (q.W*q.Z + q.X*q.Y)
	yawX := 1 - 2*(q.Y*q.Y+q.Z*q.Z)
	singularity := q.Z*q.X - q.W*q.Y

	var r Rotator
	switch {
	case singularity < -GimbalLockThreshold:
		r.Pitch = -90
		r.Yaw = Rad2Deg(math32.Atan2(yawY, yawX))
		r.Roll = NormalizeAxis(-r.Yaw - Rad2Deg(2*math32.Atan2(q.X, q.W)))
	case singularity > GimbalLockThreshold:
		r.Pitch = 90
		r.Yaw = Rad2Deg(math32.Atan2(yawY, yawX))
		r.Roll = NormalizeAxis(r.Yaw - Rad2Deg(2*math32.Atan2(q.X, q.W)))
	default:
		r.Pitch = Rad2Deg(math32.Asin(2 * singularity))
		r.Yaw = Rad2Deg(math32.Atan2(yawY, yawX))
		r.Roll = Rad2Deg(math32.Atan2(-2*(q.W*q.X+q.Y*q.Z), 1-2*(q.X*q.X+q.Y*q.Y)))
	}

	r.DiagnosticCheckNaN()
	return r
}

// Euler returns the Euler angles in degrees as {pitch, yaw, roll}.
func (q Quat) Euler() Vec3 {
	return q.Rotator().Euler()
}

// Matrix goes through Rotator().Matrix() so quaternion and rotator
// matrices agree. Intended for rendering.
func (q Quat) Matrix() Mat3 {
	return q.Rotator().Matrix()
}

// Vector is the forward direction after rotation. Same as AxisX.
func (q Quat) Vector() Vec3 {
	return q.AxisX()
}

// Add is component-wise. Combine rotations with Mul instead.
func (q Quat) Add(o Quat) Quat {
	r := Quat{q.W + o.W, q.X + o.X, q.Y + o.Y, q.Z + o.Z}
	r.DiagnosticCheckNaN()
	return r
}

func (q Quat) Sub(o Quat) Quat {
	r := Quat{q.W - o.W, q.X - o.X, q.Y - o.Y, q.Z - o.Z}
	r.DiagnosticCheckNaN()
	return r
}

// Mul returns the Hamilton product q*o, the rotation that applies o first
// and then q. Associative, not commutative.
func (q Quat) Mul(o Quat) Quat {
	r := Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
	r.DiagnosticCheckNaN()
	return r
}

// Scale multiplies every component. The result is generally not unit length.
func (q Quat) Scale(s float32) Quat {
	r := Quat{q.W * s, q.X * s, q.Y * s, q.Z * s}
	r.DiagnosticCheckNaN()
	return r
}

func (q Quat) Div(s float32) Quat {
	r := Quat{q.W / s, q.X / s, q.Y / s, q.Z / s}
	r.DiagnosticCheckNaN()
	return r
}

// Neg returns -q, which is the same rotation as q.
func (q Quat) Neg() Quat {
	return Quat{-q.W, -q.X, -q.Y, -q.Z}
}

// Equals compares component-wise within tolerance. q and -q are not equal here.
func (q Quat) Equals(o Quat, tolerance float32) bool {
	return FloatEqual(q.W, o.W, tolerance) &&
		FloatEqual(q.X, o.X, tolerance) &&
		FloatEqual(q.Y, o.Y, tolerance) &&
		FloatEqual(q.Z, o.Z, tolerance)
}

func (q Quat) IsIdentity(tolerance float32) bool {
	return q.Equals(QuatIdentity, tolerance)
}

// Dot is the 4D inner product.
func (q Quat) Dot(o Quat) float32 {
	return q.W*o.W + q.X*o.X + q.Y*o.Y + q.Z*o.Z
}

func (q Quat) SizeSquared() float32 {
	return q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z
}

func (q Quat) Size() float32 {
	return math32.Sqrt(q.SizeSquared())
}

// Normalize scales q to unit length in place. If the squared norm is
// below tolerance q becomes the identity instead.
func (q *Quat) Normalize(tolerance float32) {
	sq := q.SizeSquared()
	if sq < tolerance {
		*q = QuatIdentity
		return
	}
	scale := 1 / math32.Sqrt(sq)
	q.W *= scale
	q.X *= scale
	q.Y *= scale
	q.Z *= scale
}

// Normalized returns a normalized copy; see Normalize.
func (q Quat) Normalized(tolerance float32) Quat {
	q.Normalize(tolerance)
	return q
}

// IsNormalized reports |1 - norm²| < QuatNormalizedThreshold.
func (q Quat) IsNormalized() bool {
	return math32.Abs(1-q.SizeSquared()) < QuatNormalizedThreshold
}

// Angle returns the rotation angle in radians.
func (q Quat) Angle() float32 {
	return 2 * math32.Acos(Clamp(-1, 1, q.W))
}

// RotationAxis undoes the axis remapping of QuatFromAxisAngle. Returns
// AxisX when the rotation is too small to have a meaningful axis.
func (q Quat) RotationAxis() Vec3 {
	s := math32.Sqrt(math32.Max(1-q.W*q.W, 0))
	if s > Epsilon {
		return Vec3{-q.Y / s, q.Z / s, -q.X / s}
	}
	return AxisX
}

// ToAxisAndAngle returns RotationAxis and Angle.
func (q Quat) ToAxisAndAngle() (Vec3, float32) {
	return q.RotationAxis(), q.Angle()
}

// RotateVector rotates v by q using
//
//	T  = 2(Q × v)
//	v' = v + w·T + Q × T
func (q Quat) RotateVector(v Vec3) Vec3 {
	return rotateByParts(q.W, Vec3{q.X, q.Y, q.Z}, v)
}

// UnrotateVector rotates v by the inverse of q.
func (q Quat) UnrotateVector(v Vec3) Vec3 {
	return rotateByParts(q.W, Vec3{-q.X, -q.Y, -q.Z}, v)
}

func rotateByParts(w float32, axis, v Vec3) Vec3 {
	t := axis.Cross(v).Mul(2)
	return v.Add(t.Mul(w)).Add(axis.Cross(t))
}

// Inverse returns the conjugate. Only normalized quaternions are
// supported; anything else yields the identity.
func (q Quat) Inverse() Quat {
	inv, _ := q.TryInverse()
	return inv
}

// TryInverse is Inverse with the unnormalized case reported as
// ErrNotNormalized alongside the identity fallback.
func (q Quat) TryInverse() (Quat, error) {
	if !q.IsNormalized() {
		return QuatIdentity, ErrNotNormalized
	}
	return Quat{q.W, -q.X, -q.Y, -q.Z}, nil
}

// EnforceShortestArcWith flips q if needed so the delta to o takes the
// shorter path.
func (q *Quat) EnforceShortestArcWith(o Quat) {
	if q.Dot(o) < 0 {
		*q = q.Neg()
	}
}

// AxisX is the forward direction (X) after rotation.
func (q Quat) AxisX() Vec3 {
	return q.RotateVector(AxisX)
}

// AxisY is the up direction (Y) after rotation.
func (q Quat) AxisY() Vec3 {
	return q.RotateVector(AxisY)
}

// AxisZ is the right direction (Z) after rotation.
func (q Quat) AxisZ() Vec3 {
	return q.RotateVector(AxisZ)
}

func (q Quat) ForwardVector() Vec3 { return q.AxisX() }
func (q Quat) UpVector() Vec3      { return q.AxisY() }
func (q Quat) RightVector() Vec3   { return q.AxisZ() }

// AngularDistance returns the angle in radians between two orientations.
// q and -q give the same result.
func (q Quat) AngularDistance(o Quat) float32 {
	d := q.Dot(o)
	return math32.Acos(Clamp(-1, 1, 2*d*d-1))
}

// FindBetween is FindBetweenVectors.
func FindBetween(v1, v2 Vec3) Quat {
	return FindBetweenVectors(v1, v2)
}

// FindBetweenVectors returns the smallest rotation taking the direction of
// v1 onto the direction of v2. Both may have any non-zero length.
func FindBetweenVectors(v1, v2 Vec3) Quat {
	q, _ := findBetween(v1, v2, math32.Sqrt(v1.LenSqr()*v2.LenSqr()))
	return q
}

// FindBetweenNormals is FindBetweenVectors for unit-length inputs.
func FindBetweenNormals(n1, n2 Vec3) Quat {
	q, _ := findBetween(n1, n2, 1)
	return q
}

// TryFindBetweenVectors reports ErrAntiParallel when the 180° fallback
// was used. The quaternion is valid either way.
func TryFindBetweenVectors(v1, v2 Vec3) (Quat, error) {
	return findBetween(v1, v2, math32.Sqrt(v1.LenSqr()*v2.LenSqr()))
}

// findBetween uses w = |a||b| + a·b with vector part a×b, which halves the
// angle without trigonometry. It degenerates when a and b point in
// opposite directions; then any axis orthogonal to a gives a valid 180°
// rotation.
func findBetween(a, b Vec3, normAB float32) (Quat, error) {
	w := normAB + a.Dot(b)
	var err error
	var q Quat
	if w >= Epsilon*normAB {
		c := a.Cross(b)
		q = Quat{W: w, X: c[0], Y: c[1], Z: c[2]}
	} else {
		err = ErrAntiParallel
		if math32.Abs(a[0]) > math32.Abs(a[1]) {
			q = Quat{W: 0, X: -a[2], Y: 0, Z: a[0]}
		} else {
			q = Quat{W: 0, X: 0, Y: -a[2], Z: a[1]}
		}
	}
	q.Normalize(SmallNumber)
	return q, err
}

// Slerp interpolates along the shorter arc from q1 (t=0) to q2 (t=1).
// Inputs should be normalized; the result is.
func Slerp(q1, q2 Quat, t float32) Quat {
	return slerpNotNormalized(q1, q2, t).Normalized(SmallNumber)
}

func slerpNotNormalized(q1, q2 Quat, t float32) Quat {
	rawCos := q1.Dot(q2)
	cos := math32.Abs(rawCos)

	var scale0, scale1 float32
	if cos < SlerpDotThreshold {
		omega := math32.Acos(cos)
		invSin := 1 / math32.Sin(omega)
		scale0 = math32.Sin((1-t)*omega) * invSin
		scale1 = math32.Sin(t*omega) * invSin
	} else {
		// Nearly parallel: sin(omega) is too small to divide by.
		scale0 = 1 - t
		scale1 = t
	}
	if rawCos < 0 {
		scale1 = -scale1
	}

	return Quat{
		W: scale0*q1.W + scale1*q2.W,
		X: scale0*q1.X + scale1*q2.X,
		Y: scale0*q1.Y + scale1*q2.Y,
		Z: scale0*q1.Z + scale1*q2.Z,
	}
}

func (q Quat) ContainsNaN() bool {
	return !IsFinite(q.W) || !IsFinite(q.X) || !IsFinite(q.Y) || !IsFinite(q.Z)
}

// DiagnosticCheckNaN resets q to the identity if NaN checking is enabled
// and any component is not finite.
func (q *Quat) DiagnosticCheckNaN() {
	if !NaNCheckEnabled() || !q.ContainsNaN() {
		return
	}
	reportNaN("quat", q.String())
	*q = QuatIdentity
}

func (q Quat) String() string {
	return fmt.Sprintf("w=%g x=%g y=%g z=%g", q.W, q.X, q.Y, q.Z)
}
