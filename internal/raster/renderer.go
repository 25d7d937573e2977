package raster

import (
	"image"
	"image/color"

	"orientation-kit/internal/mathutil"
	"orientation-kit/internal/mesh"
	"orientation-kit/internal/texture"
	"orientation-kit/internal/viewmatrix"
)

// Options controls framing and projection of a render.
type Options struct {
	Size        int // output edge in pixels
	Supersample int // internal resolution multiplier, 1 when zero
	Projection  viewmatrix.Projection
	Extent      float64 // fixed world-space framing, auto-fit when zero
}

// RenderScene renders meshes (already in world space) as seen through view
// into an image of Size*Supersample pixels. Textures are looked up by each
// mesh's TexPath; a mesh whose texture does not resolve is drawn with its
// flat Color.
func RenderScene(meshes []mesh.Mesh, view mathutil.Mat3, resolver texture.Resolver, opts Options) *image.NRGBA {
	ss := opts.Supersample
	if ss < 1 {
		ss = 1
	}
	renderSize := opts.Size * ss
	fb := NewFrameBuffer(renderSize, renderSize)

	var all []mathutil.Vec3
	for _, m := range meshes {
		all = append(all, m.Verts...)
	}
	if len(all) == 0 {
		return fb.Image()
	}

	// 1/16 of the edge stays empty on each side.
	center, scale := viewmatrix.Fit(all, view, renderSize, renderSize/16, opts.Extent)
	lc := DefaultLightConfig()

	for _, m := range meshes {
		if len(m.Verts) == 0 {
			continue
		}
		px, py, pz := viewmatrix.ProjectVertices(m.Verts, view, center, scale, renderSize, opts.Projection)

		var tex *image.NRGBA
		if resolver != nil && m.TexPath != "" {
			tex = resolver.Resolve(m.TexPath)
		}
		// Faces without usable UVs fall back to the texture's average.
		base := m.Color
		if tex != nil {
			if r, g, b, ok := AverageColor(tex); ok {
				base = color.NRGBA{R: r, G: g, B: b, A: 255}
			}
		}

		for _, tri := range m.Tris {
			vi := [3]int{tri.VI[0], tri.VI[1], tri.VI[2]}
			ti := [3]int{tri.TI[0], tri.TI[1], tri.TI[2]}
			RasterizeTriangle(fb, px, py, pz, m.UVs, vi, ti, tex, base, &lc)

			// Quad: second triangle
			if tri.Polygon == 4 {
				vi2 := [3]int{tri.VI[0], tri.VI[2], tri.VI[3]}
				ti2 := [3]int{tri.TI[0], tri.TI[2], tri.TI[3]}
				RasterizeTriangle(fb, px, py, pz, m.UVs, vi2, ti2, tex, base, &lc)
			}
		}
	}

	return fb.Image()
}
