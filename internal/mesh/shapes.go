package mesh

import (
	"image/color"

	"orientation-kit/internal/mathutil"
)

// Axis colors used by Gizmo.
var (
	ColorX      = color.NRGBA{R: 220, G: 60, B: 50, A: 255}
	ColorY      = color.NRGBA{R: 70, G: 190, B: 70, A: 255}
	ColorZ      = color.NRGBA{R: 60, G: 100, B: 230, A: 255}
	ColorCenter = color.NRGBA{R: 200, G: 200, B: 205, A: 255}
)

// GizmoTexture is the texture stem the gizmo's centre cube asks for.
const GizmoTexture = "gizmo"

var quadUVs = [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Box corner c has x = bit 0, y = bit 1, z = bit 2.
var boxFaces = [6][4]int{
	{0, 4, 6, 2}, // -X
	{1, 3, 7, 5}, // +X
	{0, 1, 5, 4}, // -Y
	{2, 6, 7, 3}, // +Y
	{0, 2, 3, 1}, // -Z
	{4, 5, 7, 6}, // +Z
}

// Box returns an axis-aligned box centred on the origin, built from quads.
func Box(name string, half mathutil.Vec3, c color.NRGBA) Mesh {
	m := Mesh{
		Name:    name,
		Verts:   make([]mathutil.Vec3, 8),
		Normals: make([]mathutil.Vec3, 8),
		UVs:     quadUVs,
		Color:   c,
	}
	for i := 0; i < 8; i++ {
		sign := mathutil.Vec3{-1, -1, -1}
		for k := 0; k < 3; k++ {
			if i&(1<<k) != 0 {
				sign[k] = 1
			}
		}
		m.Verts[i] = mathutil.Vec3{sign[0] * half[0], sign[1] * half[1], sign[2] * half[2]}
		m.Normals[i] = sign.Normalize()
	}
	for _, f := range boxFaces {
		m.Tris = append(m.Tris, Triangle{Polygon: 4, VI: f, TI: [4]int{0, 1, 2, 3}})
	}
	return m
}

// Merge concatenates parts into one mesh, reindexing triangles.
func Merge(name string, c color.NRGBA, parts ...Mesh) Mesh {
	out := Mesh{Name: name, Color: c}
	for _, p := range parts {
		vOff, tOff := len(out.Verts), len(out.UVs)
		out.Verts = append(out.Verts, p.Verts...)
		out.Normals = append(out.Normals, p.Normals...)
		out.UVs = append(out.UVs, p.UVs...)
		out.Nodes = append(out.Nodes, p.Nodes...)
		for _, tri := range p.Tris {
			for k := 0; k < 4; k++ {
				tri.VI[k] += vOff
				tri.TI[k] += tOff
			}
			out.Tris = append(out.Tris, tri)
		}
	}
	return out
}

// Arrow returns a shaft with a wider head pointing along axis, starting at
// the origin. The arrow is modelled along +X and turned onto axis with the
// shortest rotation, so opposite axes take the 180° path.
func Arrow(name string, axis mathutil.Vec3, length, thickness float32, c color.NRGBA) Mesh {
	shaftLen := length * 0.8
	headLen := length - shaftLen

	shaft := Box(name+"_shaft", mathutil.Vec3{shaftLen / 2, thickness / 2, thickness / 2}, c).
		Translate(mathutil.Vec3{shaftLen / 2, 0, 0})
	head := Box(name+"_head", mathutil.Vec3{headLen / 2, thickness, thickness}, c).
		Translate(mathutil.Vec3{shaftLen + headLen/2, 0, 0})

	arrow := Merge(name, c, shaft, head)
	return arrow.Rotate(mathutil.FindBetweenVectors(mathutil.AxisX, axis))
}

// Gizmo returns the three axis arrows (+X red, +Y green, +Z blue) and a
// textured centre cube, all of the given overall size.
func Gizmo(size float32) []Mesh {
	thick := size * 0.08
	center := Box("center", mathutil.Vec3{size * 0.15, size * 0.15, size * 0.15}, ColorCenter)
	center.TexPath = GizmoTexture
	return []Mesh{
		Arrow("x", mathutil.AxisX, size, thick, ColorX),
		Arrow("y", mathutil.AxisY, size, thick, ColorY),
		Arrow("z", mathutil.AxisZ, size, thick, ColorZ),
		center,
	}
}
