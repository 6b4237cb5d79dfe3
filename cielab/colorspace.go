// based on:
// http://www.brucelindbloom.com/index.html?Eqn_RGB_to_XYZ.html
// http://www.brucelindbloom.com/index.html?Eqn_XYZ_to_Lab.html

package cielab

import (
	"image/color"
	"math"
)

// LabA is a CIELAB color (D65 white) with a straight alpha in [0,1].
type LabA struct {
	L     float64 // lightness, 0 to 100
	A     float64 // green (-) to red (+)
	B     float64 // blue (-) to yellow (+)
	Alpha float64 // alpha
}

// D65 reference white, Y normalized to 1.
const (
	whiteX = 0.95047
	whiteY = 1.0
	whiteZ = 1.08883
)

const (
	labDelta = 6.0 / 29.0
	labEps   = labDelta * labDelta * labDelta
)

var LabModel = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LabA:
		return c
	case RGBA:
		return RGBToLab(lc)
	}

	return RGBToLab(rgbaConvert(c).(RGBA))
}

// RGBToLab converts an sRGB color to CIELAB. Alpha passes through.
func RGBToLab(c RGBA) LabA {
	v := c.linear().xyz()

	fx := labF(v.X / whiteX)
	fy := labF(v.Y / whiteY)
	fz := labF(v.Z / whiteZ)

	return LabA{
		L:     116*fy - 16,
		A:     500 * (fx - fy),
		B:     200 * (fy - fz),
		Alpha: c.Alpha,
	}
}

// LabToRGB converts a CIELAB color back to sRGB. Colors outside the sRGB
// gamut keep their lightness and hue and lose chroma until they fit.
func LabToRGB(lc LabA) RGBA {
	lc.L = clamp(lc.L, 0, 100)
	return lc.clippedLinear().sRGB(lc.Alpha)
}

// RGBA implements color.Color.
func (lc LabA) RGBA() (uint32, uint32, uint32, uint32) {
	return LabToRGB(lc).RGBA()
}

// Chroma is the distance from the neutral axis.
func (lc LabA) Chroma() float64 {
	return math.Hypot(lc.A, lc.B)
}

func (lc LabA) linear() linearRGB {
	fy := (lc.L + 16) / 116
	fx := fy + lc.A/500
	fz := fy - lc.B/200

	return xyz{
		X: whiteX * labFInv(fx),
		Y: whiteY * labFInv(fy),
		Z: whiteZ * labFInv(fz),
	}.linear()
}

func labF(t float64) float64 {
	if t > labEps {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInv(t float64) float64 {
	if t > labDelta {
		return t * t * t
	}
	return 3 * labDelta * labDelta * (t - 4.0/29.0)
}
