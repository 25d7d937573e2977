package mesh

import (
	"image/color"

	"orientation-kit/internal/mathutil"
)

// Triangle holds polygon type and index tuples into vertex/texcoord arrays.
// Polygon == 4 means quad (two triangles: 0-1-2 and 0-2-3).
type Triangle struct {
	Polygon int
	VI      [4]int
	TI      [4]int
}

// Mesh holds geometry for one rigid part of a model.
type Mesh struct {
	Name    string
	Verts   []mathutil.Vec3 // vertex positions, rewritten by joint transforms
	Nodes   []int           // joint index per vertex
	Normals []mathutil.Vec3
	UVs     [][2]float32
	Tris    []Triangle
	Color   color.NRGBA // flat color when no texture resolves
	TexPath string      // texture reference, resolved by stem (e.g. "checker.png")
}

// Clone returns a deep copy of the vertex data. Triangles and UVs are
// shared, they are never mutated.
func (m Mesh) Clone() Mesh {
	out := m
	out.Verts = append([]mathutil.Vec3(nil), m.Verts...)
	out.Nodes = append([]int(nil), m.Nodes...)
	out.Normals = append([]mathutil.Vec3(nil), m.Normals...)
	return out
}

// Bind assigns every vertex to joint j.
func (m *Mesh) Bind(j int) {
	m.Nodes = make([]int, len(m.Verts))
	for i := range m.Nodes {
		m.Nodes[i] = j
	}
}

// Transform returns a copy with positions mapped through mtx and normals
// through its rotation part.
func (m Mesh) Transform(mtx mathutil.Mat4) Mesh {
	out := m.Clone()
	for i, v := range out.Verts {
		out.Verts[i] = mathutil.MulPoint(mtx, v)
	}
	rot := mtx.Mat3()
	for i, n := range out.Normals {
		out.Normals[i] = mathutil.SafeNormalize(rot.Mul3x1(n), mathutil.SmallNumber)
	}
	return out
}

// Rotate returns a copy with positions and normals rotated by q about the origin.
func (m Mesh) Rotate(q mathutil.Quat) Mesh {
	out := m.Clone()
	for i, v := range out.Verts {
		out.Verts[i] = q.RotateVector(v)
	}
	for i, n := range out.Normals {
		out.Normals[i] = q.RotateVector(n)
	}
	return out
}

// Translate returns a copy moved by d.
func (m Mesh) Translate(d mathutil.Vec3) Mesh {
	out := m.Clone()
	for i, v := range out.Verts {
		out.Verts[i] = v.Add(d)
	}
	return out
}

// Bounds returns the axis-aligned box around all vertices. ok is false
// for an empty mesh.
func Bounds(meshes []Mesh) (lo, hi mathutil.Vec3, ok bool) {
	for _, m := range meshes {
		for _, v := range m.Verts {
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			for k := 0; k < 3; k++ {
				if v[k] < lo[k] {
					lo[k] = v[k]
				}
				if v[k] > hi[k] {
					hi[k] = v[k]
				}
			}
		}
	}
	return lo, hi, ok
}
