package viewmatrix

import (
	"math"

	"orientation-kit/internal/mathutil"
)

// DefaultFOV is the default field of view in degrees.
const DefaultFOV = 60.0

// Projection selects orthographic or perspective projection.
type Projection struct {
	Perspective bool
	FOV         float64 // degrees, DefaultFOV when zero
}

// CameraView builds the 3×3 view matrix for a camera with orientation cam.
// MulVec3 of the result maps a world vector to (right, up, -forward) in
// the camera's frame, so larger depth is closer to the viewer.
//
// The camera basis comes from the quaternion, not from Rotator.Matrix,
// which relabels its axes.
func CameraView(cam mathutil.Rotator) mathutil.Mat3 {
	q := cam.Quaternion()
	fwd, up, right := q.ForwardVector(), q.UpVector(), q.RightVector()
	rows := mathutil.NewMat3(
		right[0], right[1], right[2],
		up[0], up[1], up[2],
		-fwd[0], -fwd[1], -fwd[2],
	)
	return rows.Transpose()
}

// ProjectVertices transforms 3D vertices to 2D screen coordinates.
// Returns px, py, pz slices (screen X, screen Y, depth).
func ProjectVertices(verts []mathutil.Vec3, view mathutil.Mat3, center [3]float64, scale float64, renderSize int, proj Projection) ([]float64, []float64, []float64) {
	n := len(verts)
	px := make([]float64, n)
	py := make([]float64, n)
	pz := make([]float64, n)

	half := float64(renderSize) / 2

	// Perspective setup
	var perspCamDist, perspZCenter float64
	if proj.Perspective {
		fov := proj.FOV
		if fov == 0 {
			fov = DefaultFOV
		}
		halfFOV := fov / 2 * math.Pi / 180

		// Compute z range and xy half-extent from ALL transformed verts
		zMin, zMax, xyMax := math.Inf(1), math.Inf(-1), 0.0
		for _, v := range verts {
			t := view.MulVec3(v)
			zMin = math.Min(zMin, float64(t[2]))
			zMax = math.Max(zMax, float64(t[2]))
			for k := 0; k < 2; k++ {
				xyMax = math.Max(xyMax, math.Abs(float64(t[k])-center[k]))
			}
		}
		perspZCenter = (zMin + zMax) / 2
		if xyMax < 0.001 {
			xyMax = 0.001
		}
		perspCamDist = xyMax / math.Tan(halfFOV)
	}

	for i, v := range verts {
		t := view.MulVec3(v)
		x, y, z := float64(t[0]), float64(t[1]), float64(t[2])

		if proj.Perspective {
			depth := math.Max(perspCamDist-(z-perspZCenter), 0.1)
			factor := perspCamDist / depth
			x = (x-center[0])*factor + center[0]
			y = (y-center[1])*factor + center[1]
		}

		px[i] = (x-center[0])*scale + half
		py[i] = -(y-center[1])*scale + half
		pz[i] = z
	}

	return px, py, pz
}

// Fit returns the view-space centre and the pixel scale that fit every
// vertex into renderSize with margin pixels on each side. When extent > 0
// the framing is fixed: a square of that world size around the origin.
func Fit(verts []mathutil.Vec3, view mathutil.Mat3, renderSize, margin int, extent float64) (center [3]float64, scale float64) {
	span := extent
	if extent <= 0 {
		lo := [3]float64{math.Inf(1), math.Inf(1), math.Inf(1)}
		hi := [3]float64{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
		for _, v := range verts {
			t := view.MulVec3(v)
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], float64(t[k]))
				hi[k] = math.Max(hi[k], float64(t[k]))
			}
		}
		if len(verts) == 0 {
			lo, hi = [3]float64{}, [3]float64{}
		}
		for k := 0; k < 3; k++ {
			center[k] = (lo[k] + hi[k]) / 2
		}
		span = math.Max(hi[0]-lo[0], hi[1]-lo[1])
	}
	if span < 0.001 {
		span = 0.001
	}
	return center, float64(renderSize-2*margin) / span
}
