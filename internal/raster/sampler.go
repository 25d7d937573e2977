package raster

import (
	"image"
	"math"
)

// SampleTexture returns the bilinearly filtered texel at (u, v). UVs wrap,
// v = 0 is the top row. An empty texture samples as transparent black.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w, h := tex.Rect.Dx(), tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	u -= math.Floor(u)
	v -= math.Floor(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0, y0 := int(fx), int(fy)
	x1, y1 := (x0+1)%w, (y0+1)%h
	dx, dy := fx-float64(x0), fy-float64(y0)

	texel := func(x, y, c int) float64 {
		return float64(tex.Pix[y*tex.Stride+x*4+c])
	}
	mix := func(c int) uint8 {
		top := texel(x0, y0, c)*(1-dx) + texel(x1, y0, c)*dx
		bottom := texel(x0, y1, c)*(1-dx) + texel(x1, y1, c)*dx
		return uint8(top*(1-dy) + bottom*dy + 0.5)
	}
	return mix(0), mix(1), mix(2), mix(3)
}

// AverageColor returns the mean color of tex with full alpha.
func AverageColor(tex *image.NRGBA) (r, g, b uint8, ok bool) {
	bounds := tex.Bounds()
	n := bounds.Dx() * bounds.Dy()
	if n == 0 {
		return 0, 0, 0, false
	}
	var sum [3]float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			i := tex.PixOffset(x, y)
			sum[0] += float64(tex.Pix[i])
			sum[1] += float64(tex.Pix[i+1])
			sum[2] += float64(tex.Pix[i+2])
		}
	}
	f := float64(n)
	return uint8(sum[0]/f + 0.5), uint8(sum[1]/f + 0.5), uint8(sum[2]/f + 0.5), true
}
