package mathutil

import (
	"fmt"

	"github.com/chewxy/math32"
)

// Rotator is an orientation as Euler angles in degrees.
//
//	Pitch: about the X axis (looking up/down)
//	Yaw:   about the Y axis (looking left/right)
//	Roll:  about the Z axis (tilting)
//
// X/Y/Z correspond to an object's Forward/Up/Right. The zero value is the
// zero rotation. No range is enforced; see Clamp and Normalize.
//
// Comparing with == checks raw stored angles, so {0,0,360} != {0,0,0}.
// Equals and IsNearlyZero compare normalized angles instead.
type Rotator struct {
	Pitch float32
	Yaw   float32
	Roll  float32
}

// ZeroRotator is the rotation that leaves every vector unchanged.
var ZeroRotator = Rotator{}

func NewRotator(pitch, yaw, roll float32) Rotator {
	return Rotator{Pitch: pitch, Yaw: yaw, Roll: roll}
}

// RotatorFromEuler converts a vector of Euler angles (x=pitch, y=yaw, z=roll) in degrees.
func RotatorFromEuler(e Vec3) Rotator {
	return Rotator{Pitch: e[0], Yaw: e[1], Roll: e[2]}
}

// RotatorFromQuat extracts Euler angles from q and sanitizes NaNs.
func RotatorFromQuat(q Quat) Rotator {
	r := q.Rotator()
	r.DiagnosticCheckNaN()
	return r
}

// Vector returns the unit direction this rotation faces. Roll does not
// affect a pure direction.
func (r Rotator) Vector() Vec3 {
	sp, cp := math32.Sincos(Deg2Rad(r.Pitch))
	sy, cy := math32.Sincos(Deg2Rad(r.Yaw))
	return Vec3{cp * cy, cp * sy, sp}
}

// Quaternion converts using the yaw-pitch-roll half-angle composition.
func (r Rotator) Quaternion() Quat {
	const halfDegToRad = degToRad / 2
	sp, cp := math32.Sincos(r.Pitch * halfDegToRad)
	sy, cy := math32.Sincos(r.Yaw * halfDegToRad)
	sr, cr := math32.Sincos(r.Roll * halfDegToRad)

	q := Quat{
		W: cr*cp*cy + sr*sp*sy,
		X: cr*sp*sy - sr*cp*cy,
		Y: -cr*sp*cy - sr*cp*sy,
		Z: cr*cp*sy - sr*sp*cy,
	}
	q.DiagnosticCheckNaN()
	return q
}

// Euler returns {pitch, yaw, roll}.
func (r Rotator) Euler() Vec3 {
	return Vec3{r.Pitch, r.Yaw, r.Roll}
}

// Matrix builds the rotation matrix directly from the angles. The axes are
// relabeled (pitch<-yaw, yaw<- -roll, roll<-pitch) before the standard
// formula; rotations built here stay consistent with Vector and
// Quaternion only with that relabeling.
func (r Rotator) Matrix() Mat3 {
	newPitch := r.Yaw
	newYaw := -r.Roll
	newRoll := r.Pitch

	sp, cp := math32.Sincos(Deg2Rad(newPitch))
	sy, cy := math32.Sincos(Deg2Rad(newYaw))
	sr, cr := math32.Sincos(Deg2Rad(newRoll))

	return Mat3{
		cp * cy, cp * sy, sp,
		sr*sp*cy - cr*sy, sr*sp*sy + cr*cy, -sr * cp,
		-(cr*sp*cy + sr*sy), cy*sr - cr*sp*sy, cr * cp,
	}
}

// RotateVector returns Matrix() applied to v.
func (r Rotator) RotateVector(v Vec3) Vec3 {
	return r.Matrix().MulVec3(v)
}

// UnrotateVector applies the inverse rotation. A rotation matrix's inverse
// is its transpose.
func (r Rotator) UnrotateVector(v Vec3) Vec3 {
	return r.Matrix().Transpose().MulVec3(v)
}

// Inverse returns the rotation that undoes r.
func (r Rotator) Inverse() Rotator {
	return r.Quaternion().Inverse().Rotator()
}

// Add sums angles component-wise. This is not rotation composition; use Combine.
func (r Rotator) Add(o Rotator) Rotator {
	return Rotator{r.Pitch + o.Pitch, r.Yaw + o.Yaw, r.Roll + o.Roll}
}

// Sub subtracts angles component-wise. Not the inverse of Combine.
func (r Rotator) Sub(o Rotator) Rotator {
	return Rotator{r.Pitch - o.Pitch, r.Yaw - o.Yaw, r.Roll - o.Roll}
}

// Scale multiplies every angle by s.
func (r Rotator) Scale(s float32) Rotator {
	return Rotator{r.Pitch * s, r.Yaw * s, r.Roll * s}
}

// AddDeltas adds to each angle in place. Does not combine rotations.
func (r *Rotator) AddDeltas(deltaPitch, deltaYaw, deltaRoll float32) {
	r.Pitch += deltaPitch
	r.Yaw += deltaYaw
	r.Roll += deltaRoll
	r.DiagnosticCheckNaN()
}

// CombineRotators composes a and b through their quaternions:
// (a.Quaternion() * b.Quaternion()).Rotator(). Summing angles does not
// compose rotations.
func CombineRotators(a, b Rotator) Rotator {
	return a.Quaternion().Mul(b.Quaternion()).Rotator()
}

// Combine is CombineRotators(r, o).
func (r Rotator) Combine(o Rotator) Rotator {
	return CombineRotators(r, o)
}

// IsNearlyZero reports whether every normalized angle is within tolerance
// of zero, so {0,0,360} counts as zero.
func (r Rotator) IsNearlyZero(tolerance float32) bool {
	return math32.Abs(NormalizeAxis(r.Pitch)) <= tolerance &&
		math32.Abs(NormalizeAxis(r.Yaw)) <= tolerance &&
		math32.Abs(NormalizeAxis(r.Roll)) <= tolerance
}

// IsZero reports whether every clamped angle is exactly zero.
func (r Rotator) IsZero() bool {
	return ClampAxis(r.Pitch) == 0 && ClampAxis(r.Yaw) == 0 && ClampAxis(r.Roll) == 0
}

// Equals compares normalized angle differences against tolerance.
func (r Rotator) Equals(o Rotator, tolerance float32) bool {
	return math32.Abs(NormalizeAxis(r.Pitch-o.Pitch)) <= tolerance &&
		math32.Abs(NormalizeAxis(r.Yaw-o.Yaw)) <= tolerance &&
		math32.Abs(NormalizeAxis(r.Roll-o.Roll)) <= tolerance
}

// Clamp maps every angle into [0, 360) in place.
func (r *Rotator) Clamp() {
	r.Pitch = ClampAxis(r.Pitch)
	r.Yaw = ClampAxis(r.Yaw)
	r.Roll = ClampAxis(r.Roll)
}

// Normalize maps every angle into (-180, 180] in place.
func (r *Rotator) Normalize() {
	r.Pitch = NormalizeAxis(r.Pitch)
	r.Yaw = NormalizeAxis(r.Yaw)
	r.Roll = NormalizeAxis(r.Roll)
}

func (r Rotator) Clamped() Rotator {
	r.Clamp()
	return r
}

func (r Rotator) Normalized() Rotator {
	r.Normalize()
	return r
}

func (r Rotator) ContainsNaN() bool {
	return !IsFinite(r.Pitch) || !IsFinite(r.Yaw) || !IsFinite(r.Roll)
}

// DiagnosticCheckNaN resets r to ZeroRotator if NaN checking is enabled
// and any angle is not finite.
func (r *Rotator) DiagnosticCheckNaN() {
	if !NaNCheckEnabled() || !r.ContainsNaN() {
		return
	}
	reportNaN("rotator", r.String())
	*r = ZeroRotator
}

func (r Rotator) String() string {
	return fmt.Sprintf("p=%g y=%g r=%g", r.Pitch, r.Yaw, r.Roll)
}
