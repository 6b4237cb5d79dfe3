// Package harmony derives color schemes from a base color by rotating its
// hue in HSL space. Saturation, lightness and alpha are kept.
//
// Every function returns the base color first, converted to RGBA without an
// HSL round trip, followed by the rotated colors.
package harmony

import (
	"fmt"
	"strings"

	"huematch/cielab"
)

const (
	DefaultAmount = 3
	DefaultSteps  = 12
)

// Analogous returns amount colors starting at the base hue and advancing
// by 360/steps degrees each. Non-positive amount or steps fall back to
// DefaultAmount and DefaultSteps.
func Analogous(c any, amount, steps int) ([]cielab.RGBA, error) {
	if amount <= 0 {
		amount = DefaultAmount
	}
	if steps <= 0 {
		steps = DefaultSteps
	}

	step := 360 / float64(steps)
	offsets := make([]float64, amount-1)
	for i := range offsets {
		offsets[i] = step * float64(i+1)
	}
	return rotate(c, offsets...)
}

func Complementary(c any) ([]cielab.RGBA, error) {
	return rotate(c, 180)
}

func SplitComplementary(c any) ([]cielab.RGBA, error) {
	return rotate(c, 72, 216)
}

func Triadic(c any) ([]cielab.RGBA, error) {
	return rotate(c, 120, 240)
}

func Tetradic(c any) ([]cielab.RGBA, error) {
	return rotate(c, 90, 180, 270)
}

func rotate(c any, offsets ...float64) ([]cielab.RGBA, error) {
	base, err := cielab.ToRGBA(c)
	if err != nil {
		return nil, err
	}

	hc := cielab.RGBToHSL(base)
	res := make([]cielab.RGBA, 0, len(offsets)+1)
	res = append(res, base)
	for _, off := range offsets {
		rotated := hc
		rotated.Hue = cielab.NormalizeHue(hc.Hue + off)
		res = append(res, cielab.HSLToRGB(rotated))
	}

	return res, nil
}

type Scheme int

const (
	SchemeAnalogous Scheme = iota
	SchemeComplementary
	SchemeSplitComplementary
	SchemeTriadic
	SchemeTetradic
)

var schemeNames = map[Scheme]string{
	SchemeAnalogous:          "analogous",
	SchemeComplementary:      "complementary",
	SchemeSplitComplementary: "split",
	SchemeTriadic:            "triadic",
	SchemeTetradic:           "tetradic",
}

func (s Scheme) String() string {
	if name, ok := schemeNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheme(%d)", int(s))
}

// ParseScheme accepts the names printed by Scheme.String, case insensitive.
// "split-complementary" is an alias of "split".
func ParseScheme(name string) (Scheme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "split-complementary" {
		return SchemeSplitComplementary, nil
	}
	for s, n := range schemeNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown harmony scheme %q", name)
}

// Generate builds the scheme s for c. amount and steps only apply to
// SchemeAnalogous.
func Generate(c any, s Scheme, amount, steps int) ([]cielab.RGBA, error) {
	switch s {
	case SchemeAnalogous:
		return Analogous(c, amount, steps)
	case SchemeComplementary:
		return Complementary(c)
	case SchemeSplitComplementary:
		return SplitComplementary(c)
	case SchemeTriadic:
		return Triadic(c)
	case SchemeTetradic:
		return Tetradic(c)
	default:
		return nil, fmt.Errorf("unknown harmony scheme %v", s)
	}
}
