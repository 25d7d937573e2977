package viewmatrix

import (
	"testing"

	"orientation-kit/internal/mathutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraViewAtRest(t *testing.T) {
	v := CameraView(mathutil.ZeroRotator)

	assert.Equal(t, mathutil.Vec3{1, 0, 0}, v.MulVec3(mathutil.AxisZ))
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, v.MulVec3(mathutil.AxisY))
	assert.Equal(t, mathutil.Vec3{0, 0, -1}, v.MulVec3(mathutil.AxisX))
}

func TestCameraViewIsRotation(t *testing.T) {
	for _, cam := range []mathutil.Rotator{{Pitch: -20, Yaw: 35}, {Pitch: 60, Yaw: -120, Roll: 15}} {
		v := CameraView(cam)
		assert.InDelta(t, 1, v.Det(), 1e-5, "camera %v", cam)
		assert.True(t, mathutil.Mat3Mul(v, v.Transpose()).Equals(mathutil.Mat3Identity(), 1e-5))

		// Looking along the camera's own forward goes straight into the screen.
		fwd := cam.Quaternion().ForwardVector()
		assert.True(t, mathutil.Vec3Equals(mathutil.Vec3{0, 0, -1}, v.MulVec3(fwd), 1e-5))
	}
}

func TestProjectOrthographic(t *testing.T) {
	verts := []mathutil.Vec3{{0, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	view := CameraView(mathutil.ZeroRotator)

	px, py, pz := ProjectVertices(verts, view, [3]float64{}, 10, 100, Projection{})
	require.Len(t, px, 3)

	assert.InDelta(t, 50, px[0], 1e-9)
	assert.InDelta(t, 50, py[0], 1e-9)
	// Up is towards the top of the image.
	assert.InDelta(t, 40, py[1], 1e-6)
	// Right is towards the right of the image.
	assert.InDelta(t, 60, px[2], 1e-6)
	assert.InDelta(t, 0, pz[2], 1e-6)
}

func TestProjectPerspectiveEnlargesNearPoints(t *testing.T) {
	view := mathutil.Mat3Identity()
	near := []mathutil.Vec3{{1, 0, 1}, {1, 0, -1}}

	px, _, _ := ProjectVertices(near, view, [3]float64{}, 10, 100, Projection{Perspective: true, FOV: 60})
	assert.Greater(t, px[0], px[1])

	ortho, _, _ := ProjectVertices(near, view, [3]float64{}, 10, 100, Projection{})
	assert.InDelta(t, ortho[0], ortho[1], 1e-9)
}

func TestFit(t *testing.T) {
	verts := []mathutil.Vec3{{-2, -1, 0}, {2, 3, 0}}
	view := mathutil.Mat3Identity()

	center, scale := Fit(verts, view, 100, 10, 0)
	assert.Equal(t, [3]float64{0, 1, 0}, center)
	assert.InDelta(t, 20, scale, 1e-9)

	center, scale = Fit(verts, view, 100, 10, 8)
	assert.Equal(t, [3]float64{}, center)
	assert.InDelta(t, 10, scale, 1e-9)

	_, scale = Fit(nil, view, 100, 10, 0)
	assert.InDelta(t, 80/0.001, scale, 1e-6)
}
