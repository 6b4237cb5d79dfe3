package cielab

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrParse is matched by every *ParseError.
var ErrParse = errors.New("unrecognized color string")

// ParseError reports a string that matches none of the color grammars.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: %q", ErrParse, e.Input)
	}
	return fmt.Sprintf("%s: %q: %s", ErrParse, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Parse reads a color in one of these forms, ignoring case and whitespace:
//
//	#RGB #RGBA #RRGGBB #RRGGBBAA
//	rgb(r, g, b) rgba(r, g, b, a)
//	hsl(h, s%, l%) hsla(h, s%, l%, a)
//	a CSS color keyword such as "rebeccapurple"
//
// Channels may be numbers in [0,255] or percentages, alpha a number in
// [0,1] or a percentage, hue a number of degrees.
func Parse(s string) (RGBA, error) {
	str := strings.ToLower(strings.Join(strings.Fields(s), ""))
	if str == "" {
		return RGBA{}, &ParseError{Input: s, Reason: "empty"}
	}

	if hex, ok := strings.CutPrefix(str, "#"); ok {
		c, err := parseHex(hex)
		if err != nil {
			return RGBA{}, &ParseError{Input: s, Reason: err.Error()}
		}
		return c, nil
	}

	if open := strings.IndexByte(str, '('); open > 0 {
		c, err := parseFunc(str[:open], str[open+1:])
		if err != nil {
			return RGBA{}, &ParseError{Input: s, Reason: err.Error()}
		}
		return c, nil
	}

	if named, ok := colornames.Map[str]; ok {
		return rgbaConvert(named).(RGBA), nil
	}

	return RGBA{}, &ParseError{Input: s}
}

func parseHex(s string) (RGBA, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex digits")
	}

	var c color.NRGBA
	switch len(s) {
	case 3:
		c = color.NRGBA{R: nibble(v, 2), G: nibble(v, 1), B: nibble(v, 0), A: 0xff}
	case 4:
		c = color.NRGBA{R: nibble(v, 3), G: nibble(v, 2), B: nibble(v, 1), A: nibble(v, 0)}
	case 6:
		c = color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
	case 8:
		c = color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}
	default:
		return RGBA{}, fmt.Errorf("should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA")
	}

	return RGBA{Red: c.R, Green: c.G, Blue: c.B, Alpha: float64(c.A) / 255}, nil
}

func nibble(v uint64, pos int) uint8 {
	n := uint8(v>>(4*pos)) & 0x0f
	return n | n<<4
}

func parseFunc(name, rest string) (RGBA, error) {
	body, ok := strings.CutSuffix(rest, ")")
	if !ok {
		return RGBA{}, fmt.Errorf("missing closing parenthesis")
	}

	args := strings.Split(body, ",")
	for _, arg := range args {
		if arg == "" {
			return RGBA{}, fmt.Errorf("empty argument")
		}
	}

	switch name {
	case "rgb", "rgba":
		return parseRGBFunc(name, args)
	case "hsl", "hsla":
		return parseHSLFunc(name, args)
	default:
		return RGBA{}, fmt.Errorf("unsupported function %q", name)
	}
}

func parseRGBFunc(name string, args []string) (RGBA, error) {
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, fmt.Errorf("%s() takes 3 or 4 arguments, got %d", name, len(args))
	}

	var ch [3]uint8
	for i := range ch {
		v, err := parseChannel(args[i])
		if err != nil {
			return RGBA{}, err
		}
		ch[i] = v
	}

	alpha := 1.0
	if len(args) == 4 {
		var err error
		if alpha, err = parseAlpha(args[3]); err != nil {
			return RGBA{}, err
		}
	}

	return RGBA{Red: ch[0], Green: ch[1], Blue: ch[2], Alpha: alpha}, nil
}

func parseHSLFunc(name string, args []string) (RGBA, error) {
	if len(args) != 3 && len(args) != 4 {
		return RGBA{}, fmt.Errorf("%s() takes 3 or 4 arguments, got %d", name, len(args))
	}

	hue, err := parseNumber(strings.TrimSuffix(args[0], "deg"))
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hue %q", args[0])
	}

	sat, err := parsePercent(args[1])
	if err != nil {
		return RGBA{}, err
	}

	light, err := parsePercent(args[2])
	if err != nil {
		return RGBA{}, err
	}

	alpha := 1.0
	if len(args) == 4 {
		if alpha, err = parseAlpha(args[3]); err != nil {
			return RGBA{}, err
		}
	}

	return HSLToRGB(HSLA{Hue: hue, Saturation: sat, Lightness: light, Alpha: alpha}), nil
}

// parseChannel reads 0-255 or 0%-100%.
func parseChannel(s string) (uint8, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := parseNumber(pct)
		if err != nil || v < 0 || v > 100 {
			return 0, fmt.Errorf("invalid channel %q", s)
		}
		return to8(v / 100), nil
	}

	v, err := parseNumber(s)
	if err != nil || v < 0 || v > 255 {
		return 0, fmt.Errorf("invalid channel %q", s)
	}
	return uint8(v + 0.5), nil
}

// parsePercent reads a saturation or lightness, with or without the
// percent sign, and scales it to [0,1].
func parsePercent(s string) (float64, error) {
	v, err := parseNumber(strings.TrimSuffix(s, "%"))
	if err != nil || v < 0 || v > 100 {
		return 0, fmt.Errorf("invalid percentage %q", s)
	}
	return v / 100, nil
}

// parseAlpha reads 0-1 or 0%-100%.
func parseAlpha(s string) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := parseNumber(pct)
		if err != nil || v < 0 || v > 100 {
			return 0, fmt.Errorf("invalid alpha %q", s)
		}
		return v / 100, nil
	}

	v, err := parseNumber(s)
	if err != nil || v < 0 || v > 1 {
		return 0, fmt.Errorf("invalid alpha %q", s)
	}
	return v, nil
}

// parseNumber is strconv.ParseFloat without NaN and infinities.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}
