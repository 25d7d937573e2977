package raster

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Edge weights below this are outside the triangle.
const edgeTolerance = -0.001

// RasterizeTriangle draws one triangle into fb with a z-buffer and flat
// (per-face) lighting. The color comes from tex when it is set and every
// UV index is valid, otherwise from base. Texels with almost no alpha are
// skipped and leave the depth untouched.
//
// Screen coordinates px/py are in pixels, pz grows towards the viewer.
func RasterizeTriangle(
	fb *FrameBuffer,
	px, py, pz []float64,
	uvs [][2]float32,
	vi, ti [3]int,
	tex *image.NRGBA,
	base color.NRGBA,
	lc *LightConfig,
) {
	for _, i := range vi {
		if i < 0 || i >= len(px) {
			return
		}
	}
	hasUV := tex != nil
	for _, i := range ti {
		if i < 0 || i >= len(uvs) {
			hasUV = false
		}
	}

	x0, y0, z0 := px[vi[0]], py[vi[0]], pz[vi[0]]
	x1, y1, z1 := px[vi[1]], py[vi[1]], pz[vi[1]]
	x2, y2, z2 := px[vi[2]], py[vi[2]], pz[vi[2]]

	// Screen y points down; flip it so the normal is in view space.
	e1 := mgl64.Vec3{x1 - x0, y0 - y1, z1 - z0}
	e2 := mgl64.Vec3{x2 - x0, y0 - y2, z2 - z0}
	n := e1.Cross(e2)
	if n.Len() < 1e-8 {
		return
	}
	shade := lc.Shade(n.Normalize())
	lit := lc.Apply(base, shade)

	minX := clampInt(int(math.Min(math.Min(x0, x1), x2)), 0, fb.Width-1)
	maxX := clampInt(int(math.Max(math.Max(x0, x1), x2))+1, 0, fb.Width-1)
	minY := clampInt(int(math.Min(math.Min(y0, y1), y2)), 0, fb.Height-1)
	maxY := clampInt(int(math.Max(math.Max(y0, y1), y2))+1, 0, fb.Height-1)
	if minX >= maxX || minY >= maxY {
		return
	}

	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if math.Abs(det) < 1e-8 {
		return
	}
	invDet := 1 / det

	for sy := minY; sy <= maxY; sy++ {
		dsy := float64(sy) - y2
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) - x2
			w0 := ((y1-y2)*dsx + (x2-x1)*dsy) * invDet
			w1 := ((y2-y0)*dsx + (x0-x2)*dsy) * invDet
			w2 := 1 - w0 - w1
			if w0 < edgeTolerance || w1 < edgeTolerance || w2 < edgeTolerance {
				continue
			}

			i := sy*fb.Width + sx
			z := w0*z0 + w1*z1 + w2*z2
			if z <= fb.ZBuf[i] {
				continue
			}

			c := lit
			if hasUV {
				u := w0*float64(uvs[ti[0]][0]) + w1*float64(uvs[ti[1]][0]) + w2*float64(uvs[ti[2]][0])
				v := w0*float64(uvs[ti[0]][1]) + w1*float64(uvs[ti[1]][1]) + w2*float64(uvs[ti[2]][1])
				tr, tg, tb, ta := SampleTexture(tex, u, v)
				if ta < 8 {
					continue
				}
				c = lc.Apply(color.NRGBA{R: tr, G: tg, B: tb, A: ta}, shade)
			}

			fb.ZBuf[i] = z
			fb.Set(i, c)
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
