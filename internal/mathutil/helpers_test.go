package mathutil

import (
	"math/rand"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
)

// looseTol absorbs float32 error accumulated through trig and products.
const looseTol float32 = 1e-3

func assertVecNear(t *testing.T, want, got Vec3, tol float32, msgAndArgs ...interface{}) {
	t.Helper()
	if !Vec3Equals(want, got, tol) {
		assert.Fail(t, "vectors differ", append([]interface{}{"want %v, got %v", want, got}, msgAndArgs...)...)
	}
}

// assertSameOrientation treats q and -q as the same rotation.
func assertSameOrientation(t *testing.T, want, got Quat, msgAndArgs ...interface{}) {
	t.Helper()
	d := want.Dot(got)
	if d < 0 {
		d = -d
	}
	assert.InDelta(t, 1, d, float64(looseTol), msgAndArgs...)
}

// newFuzzer produces bounded, finite rotations, quaternions and vectors.
func newFuzzer(seed int64) *fuzz.Fuzzer {
	return fuzz.New().NilChance(0).RandSource(rand.NewSource(seed)).Funcs(
		func(r *Rotator, c fuzz.Continue) {
			r.Pitch = c.Float32()*160 - 80
			r.Yaw = c.Float32()*360 - 180
			r.Roll = c.Float32()*360 - 180
		},
		func(q *Quat, c fuzz.Continue) {
			*q = Quat{
				W: c.Float32()*2 - 1,
				X: c.Float32()*2 - 1,
				Y: c.Float32()*2 - 1,
				Z: c.Float32()*2 - 1,
			}
			q.Normalize(SmallNumber)
		},
		func(v *Vec3, c fuzz.Continue) {
			*v = Vec3{c.Float32()*20 - 10, c.Float32()*20 - 10, c.Float32()*20 - 10}
		},
	)
}
