package mathutil

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4×4 affine matrix. Used for model and joint world transforms.
type Mat4 = mgl32.Mat4

// FromMat3Translation builds a 4×4 affine matrix from a 3×3 rotation and translation.
func FromMat3Translation(r Mat3, t Vec3) Mat4 {
	m := r.Mat4()
	m.SetCol(3, mgl32.Vec4{t[0], t[1], t[2], 1})
	return m
}

// ModelMatrix returns T * (R * S).
func ModelMatrix(pos Vec3, rot Mat3, scale Vec3) Mat4 {
	t := mgl32.Translate3D(pos[0], pos[1], pos[2])
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(rot.Mat4().Mul4(s))
}

// MulPoint transforms a 3D point (w=1) by the 4×4 matrix.
func MulPoint(m Mat4, v Vec3) Vec3 {
	return mgl32.TransformCoordinate(v, m)
}

// IsIdentity checks if the matrix is approximately identity.
func IsIdentity(m Mat4) bool {
	return m.ApproxEqualThreshold(mgl32.Ident4(), SmallNumber)
}
