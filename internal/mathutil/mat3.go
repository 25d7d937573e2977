package mathutil

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat3 is a 3×3 matrix stored row-major: [r0c0, r0c1, r0c2, r1c0, ...].
// Value type for zero heap allocation. Orthonormality is not enforced;
// rotation helpers only produce proper rotations.
type Mat3 [9]float32

func Mat3Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

func Mat3Diag(x, y, z float32) Mat3 {
	return Mat3{x, 0, 0, 0, y, 0, 0, 0, z}
}

// NewMat3 builds a matrix from nine scalars given row by row.
func NewMat3(m00, m01, m02, m10, m11, m12, m20, m21, m22 float32) Mat3 {
	return Mat3{m00, m01, m02, m10, m11, m12, m20, m21, m22}
}

// Mat3FromSlice copies up to nine row-major values; missing values stay zero.
func Mat3FromSlice(buf []float32) Mat3 {
	var m Mat3
	copy(m[:], buf)
	return m
}

// At returns the element at row r, column c.
func (m Mat3) At(r, c int) float32 {
	return m[r*3+c]
}

// Mat3Mul returns a × b.
func Mat3Mul(a, b Mat3) Mat3 {
	var m Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			m[r*3+c] = a[r*3+0]*b[0*3+c] + a[r*3+1]*b[1*3+c] + a[r*3+2]*b[2*3+c]
		}
	}
	return m
}

func (m Mat3) Add(o Mat3) Mat3 {
	for i := range m {
		m[i] += o[i]
	}
	return m
}

func (m Mat3) Sub(o Mat3) Mat3 {
	for i := range m {
		m[i] -= o[i]
	}
	return m
}

// MulVec3 applies the matrix to v using its columns:
//
//	x = m[0][0]·v.x + m[1][0]·v.y + m[2][0]·v.z
//
// which is the same as Transpose() applied row-wise. Rotator.RotateVector
// depends on this convention.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v[0] + m[3]*v[1] + m[6]*v[2],
		m[1]*v[0] + m[4]*v[1] + m[7]*v[2],
		m[2]*v[0] + m[5]*v[1] + m[8]*v[2],
	}
}

// Det expands along the first row.
func (m Mat3) Det() float32 {
	return m[0]*(m[4]*m[8]-m[5]*m[7]) -
		m[1]*(m[3]*m[8]-m[5]*m[6]) +
		m[2]*(m[3]*m[7]-m[4]*m[6])
}

// Inverse returns adj(m)/det(m). A matrix whose determinant is exactly
// zero is returned unchanged, so a singular input yields a non-inverse
// rather than an error. Use TryInverse to detect that case.
func (m Mat3) Inverse() Mat3 {
	inv, _ := m.TryInverse()
	return inv
}

// TryInverse is Inverse with the singular case reported as
// ErrSingularMatrix. The returned matrix is the same fallback Inverse uses.
func (m Mat3) TryInverse() (Mat3, error) {
	d := m.Det()
	if d == 0 {
		return m, ErrSingularMatrix
	}
	invD := 1 / d
	return Mat3{
		(m[4]*m[8] - m[5]*m[7]) * invD,
		(m[2]*m[7] - m[1]*m[8]) * invD,
		(m[1]*m[5] - m[2]*m[4]) * invD,
		(m[5]*m[6] - m[3]*m[8]) * invD,
		(m[0]*m[8] - m[2]*m[6]) * invD,
		(m[2]*m[3] - m[0]*m[5]) * invD,
		(m[3]*m[7] - m[4]*m[6]) * invD,
		(m[1]*m[6] - m[0]*m[7]) * invD,
		(m[0]*m[4] - m[1]*m[3]) * invD,
	}, nil
}

func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Equals compares element-wise within tolerance.
func (m Mat3) Equals(o Mat3, tolerance float32) bool {
	for i := range m {
		if !FloatEqual(m[i], o[i], tolerance) {
			return false
		}
	}
	return true
}

// Mat4 embeds m into an affine 4×4 so that Mat4 * (v, 1) == m.MulVec3(v).
func (m Mat3) Mat4() mgl32.Mat4 {
	out := mgl32.Ident4()
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, m[c*3+r])
		}
	}
	return out
}

func (m Mat3) String() string {
	return fmt.Sprintf("[%g %g %g] [%g %g %g] [%g %g %g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
