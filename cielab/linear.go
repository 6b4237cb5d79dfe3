package cielab

import (
	"image/color"
	"math"
)

// RGBA is an 8-bit sRGB color with a straight (non-premultiplied) alpha in [0,1].
type RGBA struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha float64
}

var RGBAModel = color.ModelFunc(rgbaConvert)

func rgbaConvert(c color.Color) color.Color {
	switch rc := c.(type) {
	case RGBA:
		return c
	case HSLA:
		return HSLToRGB(rc)
	case LabA:
		return LabToRGB(rc)
	}

	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return RGBA{
		Red:   from16(n.R),
		Green: from16(n.G),
		Blue:  from16(n.B),
		Alpha: float64(n.A) / 0xffff,
	}
}

// RGBA implements color.Color.
func (c RGBA) RGBA() (uint32, uint32, uint32, uint32) {
	a := uint32(math.Round(clamp(c.Alpha, 0, 1) * 0xffff))
	return uint32(c.Red) * 0x101 * a / 0xffff,
		uint32(c.Green) * 0x101 * a / 0xffff,
		uint32(c.Blue) * 0x101 * a / 0xffff,
		a
}

func from16(v uint16) uint8 {
	return uint8((uint32(v)*0xff + 0x7fff) / 0xffff)
}

func to8(x float64) uint8 {
	return uint8(math.Round(clamp(x, 0, 1) * 255))
}

// linearRGB holds sRGB channels with the gamma removed, nominally in [0,1].
type linearRGB struct {
	R float64
	G float64
	B float64
}

func (c RGBA) linear() linearRGB {
	return linearRGB{
		R: toLinear(float64(c.Red) / 255),
		G: toLinear(float64(c.Green) / 255),
		B: toLinear(float64(c.Blue) / 255),
	}
}

func (lc linearRGB) inGamut() bool {
	return (lc.R >= 0) && (lc.R <= 1) && (lc.G >= 0) && (lc.G <= 1) && (lc.B >= 0) && (lc.B <= 1)
}

func (lc linearRGB) sRGB(alpha float64) RGBA {
	return RGBA{
		Red:   to8(fromLinear(lc.R)),
		Green: to8(fromLinear(lc.G)),
		Blue:  to8(fromLinear(lc.B)),
		Alpha: alpha,
	}
}

// xyz is CIE 1931 XYZ scaled so that the D65 white has Y = 1.
type xyz struct {
	X float64
	Y float64
	Z float64
}

// sRGB primaries, D65
func (lc linearRGB) xyz() xyz {
	return xyz{
		X: 0.4124564*lc.R + 0.3575761*lc.G + 0.1804375*lc.B,
		Y: 0.2126729*lc.R + 0.7151522*lc.G + 0.0721750*lc.B,
		Z: 0.0193339*lc.R + 0.1191920*lc.G + 0.9503041*lc.B,
	}
}

func (v xyz) linear() linearRGB {
	return linearRGB{
		R: 3.2404542*v.X - 1.5371385*v.Y - 0.4985314*v.Z,
		G: -0.9692660*v.X + 1.8760108*v.Y + 0.0415560*v.Z,
		B: 0.0556434*v.X - 0.2040259*v.Y + 1.0572252*v.Z,
	}
}

func toLinear(x float64) float64 {
	if x > 0.04045 {
		return math.Pow((x+0.055)/1.055, 2.4)
	} else {
		return x / 12.92
	}
}

const pow float64 = 1.0 / 2.4

func fromLinear(x float64) float64 {
	if x > 0.0031308 {
		return math.Pow(x, pow)*1.055 - 0.055
	} else {
		return x * 12.92
	}
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	} else if x > max {
		return max
	} else {
		return x
	}
}
