package cielab

import (
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
)

// ErrUnrecognizedColorFormat is returned for values that are neither a
// color string, a color type of this package, an image/color.Color, nor an
// object with red/green/blue or l/a/b keys.
var ErrUnrecognizedColorFormat = errors.New("unrecognized color format")

// ToRGBA converts any accepted color shape to RGBA. Strings go through
// Parse. Struct values with non-finite channels, or alpha outside [0,1],
// are rejected.
func ToRGBA(v any) (RGBA, error) {
	switch c := v.(type) {
	case string:
		return Parse(c)
	case RGBA:
		return checkRGBA(c)
	case *RGBA:
		if c != nil {
			return checkRGBA(*c)
		}
	case HSLA:
		return checkHSLA(c)
	case *HSLA:
		if c != nil {
			return checkHSLA(*c)
		}
	case LabA:
		lc, err := checkLab(c)
		if err != nil {
			return RGBA{}, err
		}
		return LabToRGB(lc), nil
	case *LabA:
		if c != nil {
			lc, err := checkLab(*c)
			if err != nil {
				return RGBA{}, err
			}
			return LabToRGB(lc), nil
		}
	case map[string]any:
		return objectToRGBA(c)
	case map[string]float64:
		return objectToRGBA(widen(c))
	case color.Color:
		if c != nil && !nilPointer(c) {
			return rgbaConvert(c).(RGBA), nil
		}
	}

	return RGBA{}, fmt.Errorf("%w: %T", ErrUnrecognizedColorFormat, v)
}

// ToLab converts any accepted color shape to LabA. Lab values, and objects
// exposing l/a/b, are used as they are.
func ToLab(v any) (LabA, error) {
	switch c := v.(type) {
	case LabA:
		return checkLab(c)
	case *LabA:
		if c != nil {
			return checkLab(*c)
		}
		return LabA{}, fmt.Errorf("%w: %T", ErrUnrecognizedColorFormat, v)
	case map[string]any:
		return objectToLab(c)
	case map[string]float64:
		return objectToLab(widen(c))
	}

	rgba, err := ToRGBA(v)
	if err != nil {
		return LabA{}, err
	}
	return RGBToLab(rgba), nil
}

func checkRGBA(c RGBA) (RGBA, error) {
	if !validAlpha(c.Alpha) {
		return RGBA{}, fmt.Errorf("%w: alpha must be a number in [0,1], got %v", ErrUnrecognizedColorFormat, c.Alpha)
	}
	return c, nil
}

func checkHSLA(c HSLA) (RGBA, error) {
	if !finite(c.Hue, c.Saturation, c.Lightness) || !validAlpha(c.Alpha) {
		return RGBA{}, fmt.Errorf("%w: %v", ErrUnrecognizedColorFormat, c)
	}
	return HSLToRGB(c), nil
}

func checkLab(c LabA) (LabA, error) {
	if !finite(c.L, c.A, c.B) || !validAlpha(c.Alpha) {
		return LabA{}, fmt.Errorf("%w: %v", ErrUnrecognizedColorFormat, c)
	}
	return c, nil
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func validAlpha(a float64) bool {
	return a >= 0 && a <= 1
}

// nilPointer reports whether c is a nil pointer to one of the image/color
// types, whose value receivers would panic.
func nilPointer(c color.Color) bool {
	switch p := c.(type) {
	case *color.RGBA:
		return p == nil
	case *color.RGBA64:
		return p == nil
	case *color.NRGBA:
		return p == nil
	case *color.NRGBA64:
		return p == nil
	case *color.Alpha:
		return p == nil
	case *color.Alpha16:
		return p == nil
	case *color.Gray:
		return p == nil
	case *color.Gray16:
		return p == nil
	case *color.CMYK:
		return p == nil
	case *color.YCbCr:
		return p == nil
	case *color.NYCbCrA:
		return p == nil
	}
	return false
}

func objectToRGBA(obj map[string]any) (RGBA, error) {
	if hasKeys(obj, "red", "green", "blue") {
		return rgbaFromObject(obj)
	}
	if hasKeys(obj, "l", "a", "b") {
		lc, err := labFromObject(obj)
		if err != nil {
			return RGBA{}, err
		}
		return LabToRGB(lc), nil
	}
	return RGBA{}, fmt.Errorf("%w: object with keys %v", ErrUnrecognizedColorFormat, keys(obj))
}

func objectToLab(obj map[string]any) (LabA, error) {
	if hasKeys(obj, "l", "a", "b") {
		return labFromObject(obj)
	}
	if hasKeys(obj, "red", "green", "blue") {
		c, err := rgbaFromObject(obj)
		if err != nil {
			return LabA{}, err
		}
		return RGBToLab(c), nil
	}
	return LabA{}, fmt.Errorf("%w: object with keys %v", ErrUnrecognizedColorFormat, keys(obj))
}

func rgbaFromObject(obj map[string]any) (RGBA, error) {
	var ch [3]uint8
	for i, key := range []string{"red", "green", "blue"} {
		v, ok := number(obj[key])
		if !ok || v < 0 || v > 255 {
			return RGBA{}, fmt.Errorf("%w: %s must be a number in [0,255], got %v", ErrUnrecognizedColorFormat, key, obj[key])
		}
		ch[i] = uint8(math.Round(v))
	}

	alpha, err := objectAlpha(obj)
	if err != nil {
		return RGBA{}, err
	}

	return RGBA{Red: ch[0], Green: ch[1], Blue: ch[2], Alpha: alpha}, nil
}

func labFromObject(obj map[string]any) (LabA, error) {
	var v [3]float64
	for i, key := range []string{"l", "a", "b"} {
		n, ok := number(obj[key])
		if !ok {
			return LabA{}, fmt.Errorf("%w: %s must be a number, got %v", ErrUnrecognizedColorFormat, key, obj[key])
		}
		v[i] = n
	}

	alpha, err := objectAlpha(obj)
	if err != nil {
		return LabA{}, err
	}

	return LabA{L: v[0], A: v[1], B: v[2], Alpha: alpha}, nil
}

func objectAlpha(obj map[string]any) (float64, error) {
	raw, ok := obj["alpha"]
	if !ok {
		return 1, nil
	}
	v, ok := number(raw)
	if !ok || v < 0 || v > 1 {
		return 0, fmt.Errorf("%w: alpha must be a number in [0,1], got %v", ErrUnrecognizedColorFormat, raw)
	}
	return v, nil
}

func number(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint32:
		f = float64(n)
	case json.Number:
		var err error
		if f, err = n.Float64(); err != nil {
			return 0, false
		}
	default:
		return 0, false
	}
	return f, finite(f)
}

func hasKeys(obj map[string]any, names ...string) bool {
	for _, name := range names {
		if _, ok := obj[name]; !ok {
			return false
		}
	}
	return true
}

func keys(obj map[string]any) []string {
	res := make([]string, 0, len(obj))
	for k := range obj {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

func widen(obj map[string]float64) map[string]any {
	res := make(map[string]any, len(obj))
	for k, v := range obj {
		res[k] = v
	}
	return res
}
