package cielab

import (
	"fmt"
	"math"
)

// Hex formats c as #rrggbb, or #rrggbbaa when it is not fully opaque.
func (c RGBA) Hex() string {
	if c.Alpha >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.Red, c.Green, c.Blue)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.Red, c.Green, c.Blue, uint8(math.Round(clamp(c.Alpha, 0, 1)*255)))
}

func (c RGBA) String() string {
	if c.Alpha >= 1 {
		return fmt.Sprintf("rgb(%d, %d, %d)", c.Red, c.Green, c.Blue)
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %.3g)", c.Red, c.Green, c.Blue, c.Alpha)
}

func (hc HSLA) String() string {
	if hc.Alpha >= 1 {
		return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", hc.Hue, hc.Saturation*100, hc.Lightness*100)
	}
	return fmt.Sprintf("hsla(%.1f, %.1f%%, %.1f%%, %.3g)", hc.Hue, hc.Saturation*100, hc.Lightness*100, hc.Alpha)
}

func (lc LabA) String() string {
	return fmt.Sprintf("lab(%.2f, %.2f, %.2f / %.3g)", lc.L, lc.A, lc.B, lc.Alpha)
}
