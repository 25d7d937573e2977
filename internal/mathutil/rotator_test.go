package mathutil

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroRotator(t *testing.T) {
	var r Rotator
	assert.Equal(t, ZeroRotator, r)
	assert.True(t, r.IsZero())
	assert.Equal(t, AxisX, r.Vector())
	assert.Equal(t, QuatIdentity, r.Quaternion())
	assert.True(t, r.Matrix().Equals(Mat3Identity(), 1e-7))
	assert.Equal(t, Vec3{0, 0, 0}, r.Euler())
}

func TestRotatorVector(t *testing.T) {
	assertVecNear(t, Vec3{0.92542, 0.33682, 0.17365}, Rotator{10, 20, 30}.Vector(), 1e-4)
	assertVecNear(t, AxisY, Rotator{Yaw: 90}.Vector(), 1e-6)
	assertVecNear(t, AxisZ, Rotator{Pitch: 90}.Vector(), 1e-6)
	// Roll does not change a pure direction.
	assert.Equal(t, Rotator{10, 20, 0}.Vector(), Rotator{10, 20, 75}.Vector())
}

func TestRotatorQuaternionSingleAxis(t *testing.T) {
	tests := []struct {
		name string
		rot  Rotator
		axis Vec3
	}{
		{"pitch", Rotator{Pitch: 30}, AxisX},
		{"yaw", Rotator{Yaw: 30}, AxisY},
		{"roll", Rotator{Roll: 30}, AxisZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rot.Quaternion()
			want := QuatFromAxisAngle(tt.axis, Deg2Rad(30))
			assert.True(t, want.Equals(got, 1e-6), "want %v, got %v", want, got)
		})
	}

	q := Rotator{Pitch: 30}.Quaternion()
	assert.True(t, q.Equals(Quat{W: 0.9659258, Y: -0.258819}, 1e-6), "got %v", q)
}

func TestRotatorQuaternionRoundTrip(t *testing.T) {
	tests := []Rotator{
		{10, 20, 30},
		{-45, 120, -60},
		{80, -170, 5},
		{0, 0, 0},
		{0, 180, 0},
		{-84, 33, 150},
	}
	for _, r := range tests {
		t.Run(r.String(), func(t *testing.T) {
			got := r.Quaternion().Rotator()
			assert.True(t, r.Equals(got, 1e-2), "want %v, got %v", r, got)
		})
	}
}

func TestRotatorFromQuatGimbal(t *testing.T) {
	for _, pitch := range []float32{90, -90, 89.99, -89.99} {
		r := Rotator{Pitch: pitch, Yaw: 40, Roll: 25}
		q := r.Quaternion()
		got := RotatorFromQuat(q)

		require.False(t, got.ContainsNaN(), "pitch %v", pitch)
		assert.InDelta(t, math32.Abs(pitch), math32.Abs(got.Pitch), 0.1, "pitch %v", pitch)
		// Yaw and roll are not unique at the poles; the orientation is.
		assertSameOrientation(t, q, got.Quaternion(), "pitch %v", pitch)
		assertVecNear(t, q.RotateVector(AxisY), got.Quaternion().RotateVector(AxisY), 5e-3)
	}

	assert.Equal(t, float32(90), Rotator{Pitch: 90}.Quaternion().Rotator().Pitch)
	assert.Equal(t, float32(-90), Rotator{Pitch: -90, Yaw: 10}.Quaternion().Rotator().Pitch)
}

func TestRotatorForwardMatchesQuaternion(t *testing.T) {
	f := newFuzzer(7)
	for i := 0; i < 200; i++ {
		var r Rotator
		f.Fuzz(&r)
		assertVecNear(t, r.Vector(), r.Quaternion().Vector(), 1e-4, "rotator %v", r)
	}
}

func TestRotatorMatrix(t *testing.T) {
	m := Rotator{10, 20, 30}.Matrix()
	assertVecNear(t, Vec3{0.8138, -0.4698, 0.3420}, m.MulVec3(AxisX), 1e-4)
	assert.InDelta(t, 1, m.Det(), 1e-5)
	assert.True(t, Mat3Mul(m, m.Transpose()).Equals(Mat3Identity(), 1e-5))

	// The relabeling means a pure pitch leaves X alone.
	assertVecNear(t, AxisX, Rotator{Pitch: 45}.RotateVector(AxisX), 1e-6)
}

func TestRotatorRotateUnrotate(t *testing.T) {
	f := newFuzzer(11)
	for i := 0; i < 200; i++ {
		var r Rotator
		var v Vec3
		f.Fuzz(&r)
		f.Fuzz(&v)
		back := r.UnrotateVector(r.RotateVector(v))
		assertVecNear(t, v, back, 1e-3, "rotator %v", r)
		assert.InDelta(t, v.Len(), r.RotateVector(v).Len(), 1e-3)
	}
}

func TestRotatorInverse(t *testing.T) {
	r := Rotator{10, 20, 30}
	inv := r.Inverse()
	assert.True(t, inv.Equals(Rotator{-18.1994, -13.0565, -26.1323}, 1e-2), "got %v", inv)
	assert.True(t, r.Combine(inv).IsNearlyZero(1e-2))
	assert.True(t, inv.Combine(r).IsNearlyZero(1e-2))
}

func TestCombineRotators(t *testing.T) {
	a := Rotator{10, 20, 30}
	b := Rotator{-5, 40, 12}

	got := CombineRotators(a, b)
	assert.True(t, got.Equals(Rotator{-14.899, 51.921, 42.386}, 1e-2), "got %v", got)
	assert.Equal(t, got, a.Combine(b))

	assert.True(t, a.Combine(ZeroRotator).Equals(a, 1e-3))
	assert.True(t, ZeroRotator.Combine(a).Equals(a, 1e-3))
}

func TestAddIsNotCombine(t *testing.T) {
	a := Rotator{Pitch: 30}
	b := Rotator{Yaw: 60}

	assert.Equal(t, Rotator{30, 60, 0}, a.Add(b))

	combined := a.Combine(b)
	assert.True(t, combined.Equals(Rotator{14.4775, 63.4349, 26.5651}, 1e-2), "got %v", combined)
	assert.False(t, combined.Equals(a.Add(b), 1))

	// Composition is order dependent.
	assert.True(t, b.Combine(a).Equals(Rotator{30, 60, 0}, 1e-2))
}

func TestRotatorArithmetic(t *testing.T) {
	r := Rotator{10, 20, 30}
	assert.Equal(t, Rotator{5, 10, 15}, r.Sub(Rotator{5, 10, 15}))
	assert.Equal(t, Rotator{20, 40, 60}, r.Scale(2))

	r.AddDeltas(1, 2, 3)
	assert.Equal(t, Rotator{11, 22, 33}, r)
}

func TestRotatorClampNormalize(t *testing.T) {
	r := Rotator{-90, 450, 180}

	assert.Equal(t, Rotator{270, 90, 180}, r.Clamped())
	assert.Equal(t, Rotator{-90, 90, 180}, r.Normalized())
	assert.Equal(t, Rotator{-90, 450, 180}, r)

	r.Normalize()
	assert.Equal(t, Rotator{-90, 90, 180}, r)
	r.Clamp()
	assert.Equal(t, Rotator{270, 90, 180}, r)
}

func TestRotatorComparison(t *testing.T) {
	full := Rotator{Roll: 360}

	assert.NotEqual(t, ZeroRotator, full)
	assert.True(t, full.Equals(ZeroRotator, Epsilon))
	assert.True(t, full.IsNearlyZero(Epsilon))
	assert.True(t, full.IsZero())

	assert.True(t, Rotator{Yaw: 179.99}.Equals(Rotator{Yaw: -179.99}, 0.05))
	assert.False(t, Rotator{Yaw: 10}.Equals(Rotator{Yaw: 11}, 0.5))
	assert.False(t, Rotator{Pitch: 0.01}.IsZero())
}

func TestRotatorString(t *testing.T) {
	assert.Equal(t, "p=10 y=-20.5 r=0", Rotator{10, -20.5, 0}.String())
}

func TestRotatorNaNCheck(t *testing.T) {
	logger, hook := test.NewNullLogger()
	SetLogger(logger)
	SetNaNCheck(true)
	t.Cleanup(func() {
		SetNaNCheck(false)
		SetLogger(nil)
	})

	r := Rotator{Pitch: math32.NaN()}
	r.AddDeltas(1, 0, 0)
	assert.Equal(t, ZeroRotator, r)
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "rotator", hook.LastEntry().Data["type"])

	hook.Reset()
	q := Rotator{Yaw: math32.Inf(1)}.Quaternion()
	assert.Equal(t, QuatIdentity, q)
	assert.NotEmpty(t, hook.Entries)
}

func TestRotatorNaNCheckDisabled(t *testing.T) {
	require.False(t, NaNCheckEnabled())

	r := Rotator{Pitch: math32.NaN()}
	r.AddDeltas(1, 0, 0)
	assert.True(t, r.ContainsNaN())
}
