package cielab

import (
	"image/color"
	"math"
)

// HSLA is a hue/saturation/lightness color. Hue is in degrees [0,360),
// saturation, lightness and alpha are in [0,1].
type HSLA struct {
	Hue        float64
	Saturation float64
	Lightness  float64
	Alpha      float64
}

var HSLAModel = color.ModelFunc(hslaConvert)

func hslaConvert(c color.Color) color.Color {
	switch hc := c.(type) {
	case HSLA:
		return c
	case RGBA:
		return RGBToHSL(hc)
	}

	return RGBToHSL(rgbaConvert(c).(RGBA))
}

// RGBA implements color.Color.
func (hc HSLA) RGBA() (uint32, uint32, uint32, uint32) {
	return HSLToRGB(hc).RGBA()
}

// RGBToHSL converts an sRGB color to HSL. Achromatic colors get hue 0.
func RGBToHSL(c RGBA) HSLA {
	r := float64(c.Red) / 255
	g := float64(c.Green) / 255
	b := float64(c.Blue) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	hc := HSLA{
		Lightness: (hi + lo) / 2,
		Alpha:     c.Alpha,
	}
	if hi == lo {
		return hc
	}

	d := hi - lo
	if hc.Lightness > 0.5 {
		hc.Saturation = d / (2 - hi - lo)
	} else {
		hc.Saturation = d / (hi + lo)
	}

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	hc.Hue = NormalizeHue(h * 60)

	return hc
}

// HSLToRGB converts an HSL color to sRGB, rounding each channel. Alpha
// passes through.
func HSLToRGB(hc HSLA) RGBA {
	s := clamp(hc.Saturation, 0, 1)
	l := clamp(hc.Lightness, 0, 1)
	if s == 0 {
		v := to8(l)
		return RGBA{Red: v, Green: v, Blue: v, Alpha: hc.Alpha}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	h := NormalizeHue(hc.Hue) / 360

	return RGBA{
		Red:   to8(hueToChannel(p, q, h+1.0/3.0)),
		Green: to8(hueToChannel(p, q, h)),
		Blue:  to8(hueToChannel(p, q, h-1.0/3.0)),
		Alpha: hc.Alpha,
	}
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	} else if t > 1 {
		t--
	}

	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	default:
		return p
	}
}

// NormalizeHue wraps an angle in degrees into [0,360).
func NormalizeHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		// -tiny + 360 rounds up to 360
		h = 0
	}
	return h
}
