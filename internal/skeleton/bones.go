package skeleton

import (
	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/mesh"
	"orientation-kit/internal/transform"

	"github.com/go-gl/mathgl/mgl32"
)

// Spin is a constant rotation rate about an axis, in degrees per second.
type Spin struct {
	Axis    mathutil.Vec3
	Degrees float32
}

// Joint is one node of the hierarchy. Parent < 0 marks a root; parents
// must come before their children.
type Joint struct {
	Name   string
	Parent int
	Offset mathutil.Vec3    // position relative to the parent
	Rest   mathutil.Rotator // rest orientation relative to the parent
	Spin   *Spin            // optional animation on top of Rest
}

// Local returns the joint's transform relative to its parent at time t
// (seconds). The spin is applied after the rest rotation.
func (j Joint) Local(t float32) *transform.Transform {
	tr := transform.New()
	tr.SetPosition(j.Offset)
	tr.SetRotator(j.Rest)
	if j.Spin != nil {
		axis := mathutil.SafeNormalize(j.Spin.Axis, mathutil.SmallNumber)
		if axis != (mathutil.Vec3{}) {
			tr.Rotate(mathutil.QuatFromAxisAngle(axis, mathutil.Deg2Rad(j.Spin.Degrees*t)))
		}
	}
	return tr
}

// BuildWorldMatrices computes the world transform of each joint at time t.
// root is applied above every root joint. Returns a slice of 4×4 matrices
// indexed by joint.
func BuildWorldMatrices(joints []Joint, root *transform.Transform, t float32) []mathutil.Mat4 {
	worlds := make([]mathutil.Mat4, len(joints))
	base := mgl32.Ident4()
	if root != nil {
		base = root.Matrix()
	}

	for i, j := range joints {
		local := j.Local(t).Matrix()

		// Chain with parent
		if j.Parent >= 0 && j.Parent < i {
			worlds[i] = worlds[j.Parent].Mul4(local)
		} else {
			worlds[i] = base.Mul4(local)
		}
	}

	return worlds
}

// ApplyTransforms returns copies of meshes with every vertex moved by the
// world matrix of the joint it is bound to. Rigid skinning: 1 joint per
// vertex, weight = 1.0. Vertices with no valid joint are left in place.
func ApplyTransforms(meshes []mesh.Mesh, worlds []mathutil.Mat4) []mesh.Mesh {
	out := make([]mesh.Mesh, len(meshes))
	for mi, m := range meshes {
		posed := m.Clone()
		for vi := range posed.Verts {
			if vi >= len(posed.Nodes) {
				break
			}
			idx := posed.Nodes[vi]
			if idx < 0 || idx >= len(worlds) {
				continue
			}
			posed.Verts[vi] = mathutil.MulPoint(worlds[idx], posed.Verts[vi])
			if vi < len(posed.Normals) {
				n := worlds[idx].Mat3().Mul3x1(posed.Normals[vi])
				posed.Normals[vi] = mathutil.SafeNormalize(n, mathutil.SmallNumber)
			}
		}
		out[mi] = posed
	}
	return out
}
