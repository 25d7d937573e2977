package transform

import (
	"orientation-kit/internal/mathutil"

	"github.com/sirupsen/logrus"
)

// maxNotifyPasses bounds how many times observers are re-run when they
// keep mutating the transform they observe.
const maxNotifyPasses = 8

// Observer is called after the transform changes.
type Observer func(*Transform)

type subscription struct {
	fn Observer
}

// Transform is a position, scale and rotation with a cached model matrix.
//
// The quaternion is the canonical rotation. The rotator and the model
// matrix are derived from it on demand and cached until the next write,
// except that SetRotator keeps the exact angles it was given.
//
// A Transform is not safe for concurrent use.
type Transform struct {
	position mathutil.Vec3
	scale    mathutil.Vec3
	rotation mathutil.Quat

	rotator      mathutil.Rotator
	rotatorDirty bool

	matrix      mathutil.Mat4
	matrixDirty bool

	subs      []*subscription
	notifying bool
	pending   bool
}

// New returns a transform at the origin with unit scale and no rotation.
func New() *Transform {
	return &Transform{
		scale:       mathutil.Vec3{1, 1, 1},
		rotation:    mathutil.IdentityQuat(),
		matrixDirty: true,
	}
}

// Clone copies position, scale and rotation. Observers are not copied.
func (t *Transform) Clone() *Transform {
	return &Transform{
		position:     t.position,
		scale:        t.scale,
		rotation:     t.rotation,
		rotator:      t.rotator,
		rotatorDirty: t.rotatorDirty,
		matrix:       t.matrix,
		matrixDirty:  t.matrixDirty,
	}
}

// Assign copies the state of o into t and notifies t's observers.
func (t *Transform) Assign(o *Transform) {
	t.position = o.position
	t.scale = o.scale
	t.rotation = o.rotation
	t.rotator = o.rotator
	t.rotatorDirty = o.rotatorDirty
	t.changed()
}

func (t *Transform) Position() mathutil.Vec3 { return t.position }
func (t *Transform) Scale() mathutil.Vec3    { return t.scale }

func (t *Transform) SetPosition(p mathutil.Vec3) {
	t.position = p
	t.changed()
}

// Translate moves the transform by d.
func (t *Transform) Translate(d mathutil.Vec3) {
	t.position = t.position.Add(d)
	t.changed()
}

func (t *Transform) SetScale(s mathutil.Vec3) {
	t.scale = s
	t.changed()
}

func (t *Transform) SetUniformScale(s float32) {
	t.SetScale(mathutil.Vec3{s, s, s})
}

// Rotation returns the canonical quaternion.
func (t *Transform) Rotation() mathutil.Quat {
	return t.rotation
}

// Rotator returns the Euler view of the rotation. After SetRotator it is
// exactly the value that was set; after a quaternion write it is derived
// from the quaternion.
func (t *Transform) Rotator() mathutil.Rotator {
	if t.rotatorDirty {
		t.rotator = mathutil.RotatorFromQuat(t.rotation)
		t.rotatorDirty = false
	}
	return t.rotator
}

// SetRotator makes r authoritative for this write. The quaternion is
// derived from r and r itself is kept without a round trip.
func (t *Transform) SetRotator(r mathutil.Rotator) {
	t.rotator = r
	t.rotatorDirty = false
	t.rotation = r.Quaternion()
	t.changed()
}

// SetRotation makes q authoritative. The rotator is recomputed on the
// next read.
func (t *Transform) SetRotation(q mathutil.Quat) {
	t.rotation = q
	t.rotatorDirty = true
	t.changed()
}

// Rotate applies q after the current rotation.
func (t *Transform) Rotate(q mathutil.Quat) {
	t.SetRotation(q.Mul(t.rotation))
}

// RotateRotator applies r after the current rotation. The angles are
// composed through quaternions, not added.
func (t *Transform) RotateRotator(r mathutil.Rotator) {
	t.Rotate(r.Quaternion())
}

// RotationMatrix is the rotator's matrix, the one the model matrix uses.
func (t *Transform) RotationMatrix() mathutil.Mat3 {
	return t.Rotator().Matrix()
}

// AxisMatrix composes per-axis rotations Rz·Ry·Rx from the rotator's
// angles. It is not the matrix used for rendering.
func (t *Transform) AxisMatrix() mathutil.Mat3 {
	r := t.Rotator()
	rx := mathutil.RotX(mathutil.Deg2Rad(r.Pitch))
	ry := mathutil.RotY(mathutil.Deg2Rad(r.Yaw))
	rz := mathutil.RotZ(mathutil.Deg2Rad(r.Roll))
	return mathutil.Mat3Mul(mathutil.Mat3Mul(rz, ry), rx)
}

// Matrix returns the model matrix T·(R·S).
func (t *Transform) Matrix() mathutil.Mat4 {
	if t.matrixDirty {
		t.matrix = mathutil.ModelMatrix(t.position, t.RotationMatrix(), t.scale)
		t.matrixDirty = false
	}
	return t.matrix
}

// RotateVector rotates v by the rotation matrix. Position and scale are ignored.
func (t *Transform) RotateVector(v mathutil.Vec3) mathutil.Vec3 {
	return t.RotationMatrix().MulVec3(v)
}

func (t *Transform) UnrotateVector(v mathutil.Vec3) mathutil.Vec3 {
	return t.RotationMatrix().Transpose().MulVec3(v)
}

// TransformPoint maps a local point to world space with the model matrix.
func (t *Transform) TransformPoint(p mathutil.Vec3) mathutil.Vec3 {
	return mathutil.MulPoint(t.Matrix(), p)
}

// Forward is the rotated +X direction.
func (t *Transform) Forward() mathutil.Vec3 {
	return t.rotation.ForwardVector()
}

// Subscribe registers fn to run after every change. The returned function
// removes it; calling it more than once is harmless.
func (t *Transform) Subscribe(fn Observer) (unsubscribe func()) {
	s := &subscription{fn: fn}
	t.subs = append(t.subs, s)
	return func() {
		s.fn = nil
		for i, o := range t.subs {
			if o == s {
				t.subs = append(t.subs[:i], t.subs[i+1:]...)
				return
			}
		}
	}
}

// changed invalidates the matrix and notifies observers. A change made by
// an observer while a pass is running is not delivered reentrantly; it
// schedules one more pass once the current one finishes.
func (t *Transform) changed() {
	t.matrixDirty = true
	if t.notifying {
		t.pending = true
		return
	}

	t.notifying = true
	defer func() { t.notifying = false }()

	for pass := 0; ; pass++ {
		if pass == maxNotifyPasses {
			logrus.WithField("passes", pass).Warn("transform: observers keep changing the transform, notification stopped")
			t.pending = false
			return
		}
		t.pending = false
		subs := append([]*subscription(nil), t.subs...)
		for _, s := range subs {
			if s.fn != nil {
				s.fn(t)
			}
		}
		if !t.pending {
			return
		}
	}
}
