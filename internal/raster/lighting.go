package raster

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// LightConfig holds precomputed lighting parameters. Directions are in
// view space (x right, y up, z towards the viewer).
type LightConfig struct {
	Key      mgl64.Vec3
	Rim      mgl64.Vec3
	Half     mgl64.Vec3 // Blinn-Phong half-vector of Key and the view direction
	Ambient  float64
	Hemi     float64
	Direct   float64
	RimLevel float64
	Spec     float64
	SpecPow  float64
	Exposure float64
	InvGamma float64
}

// DefaultLightConfig returns a key light from the upper right and a rim
// light from behind, seen from straight ahead.
func DefaultLightConfig() LightConfig {
	key := mgl64.Vec3{0.45, 0.7, 0.55}.Normalize()
	view := mgl64.Vec3{0, 0, 1}

	return LightConfig{
		Key:      key,
		Rim:      mgl64.Vec3{-0.6, 0.35, -0.7}.Normalize(),
		Half:     key.Add(view).Normalize(),
		Ambient:  0.45,
		Hemi:     0.40,
		Direct:   1.30,
		RimLevel: 0.45,
		Spec:     0.30,
		SpecPow:  16,
		Exposure: 1.0,
		InvGamma: 1 / 2.2,
	}
}

// Shade returns the lighting scalar for a unit face normal. Both sides of
// a face are lit.
func (lc *LightConfig) Shade(n mgl64.Vec3) float64 {
	hemi := (1-math.Abs(n[1]))*0.5 + 0.5
	spec := math.Pow(math.Max(n.Dot(lc.Half), 0), lc.SpecPow) * lc.Spec
	return lc.Ambient +
		hemi*lc.Hemi +
		math.Abs(n.Dot(lc.Key))*lc.Direct +
		math.Abs(n.Dot(lc.Rim))*lc.RimLevel +
		spec
}

// Apply lights an sRGB color: decode to linear, scale by shade, tone map
// with ACES and encode back. Alpha is passed through.
func (lc *LightConfig) Apply(c color.NRGBA, shade float64) color.NRGBA {
	k := shade * lc.Exposure
	enc := func(v uint8) uint8 {
		return clamp255(math.Pow(ACESTonemap(srgbToLinear[v]*k), lc.InvGamma) * 255)
	}
	return color.NRGBA{R: enc(c.R), G: enc(c.G), B: enc(c.B), A: c.A}
}

// sRGB-to-linear lookup table.
var srgbToLinear [256]float64

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math.Pow(float64(i)/255, 2.2)
	}
}

// ACESTonemap applies the ACES filmic curve to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
