package cielab

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#F00", RGBA{255, 0, 0, 1}},
		{"#f008", RGBA{255, 0, 0, 0x88 / 255.0}},
		{"#FF1111", RGBA{255, 17, 17, 1}},
		{"#ff000080", RGBA{255, 0, 0, 0x80 / 255.0}},
		{"  # a B c  ", RGBA{0xaa, 0xbb, 0xcc, 1}},
		{"rgb(255, 0, 0)", RGBA{255, 0, 0, 1}},
		{"RGB( 0 ,128, 255 )", RGBA{0, 128, 255, 1}},
		{"rgb(100%, 50%, 0%)", RGBA{255, 128, 0, 1}},
		{"rgba(0, 0, 255, 0.5)", RGBA{0, 0, 255, 0.5}},
		{"rgba(0, 0, 255, 25%)", RGBA{0, 0, 255, 0.25}},
		{"hsl(120, 100%, 50%)", RGBA{0, 255, 0, 1}},
		{"hsl(240deg, 100%, 50%)", RGBA{0, 0, 255, 1}},
		{"hsl(0, 0%, 100%)", RGBA{255, 255, 255, 1}},
		{"HSLA(0, 100%, 50%, 0.25)", RGBA{255, 0, 0, 0.25}},
		{"RebeccaPurple", RGBA{102, 51, 153, 1}},
		{"black", RGBA{0, 0, 0, 1}},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want.Red, got.Red, "red")
			assert.Equal(t, tc.want.Green, got.Green, "green")
			assert.Equal(t, tc.want.Blue, got.Blue, "blue")
			assert.InDelta(t, tc.want.Alpha, got.Alpha, 1e-9, "alpha")
		})
	}
}

func TestParseError(t *testing.T) {
	for _, in := range []string{
		"",
		"   ",
		"not-a-color",
		"#",
		"#ff",
		"#fffff",
		"#gggggg",
		"#ff00ff00ff",
		"rgb(1, 2)",
		"rgb(1, 2, 3",
		"rgb(256, 0, 0)",
		"rgb(-1, 0, 0)",
		"rgb(1,,3)",
		"rgba(0, 0, 0, 2)",
		"hsl(nan, 10%, 10%)",
		"hsl(inf, 10%, 10%)",
		"hsl(10, 120%, 10%)",
		"cmyk(0, 0, 0, 0)",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrParse)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, in, perr.Input)
		})
	}
}

func TestFormat(t *testing.T) {
	c := RGBA{Red: 255, Green: 17, Blue: 0, Alpha: 1}
	assert.Equal(t, "#ff1100", c.Hex())
	assert.Equal(t, "rgb(255, 17, 0)", c.String())

	c.Alpha = 0.5
	assert.Equal(t, "#ff110080", c.Hex())
	assert.Equal(t, "rgba(255, 17, 0, 0.5)", c.String())

	assert.Equal(t, "hsl(120.0, 100.0%, 50.0%)", HSLA{Hue: 120, Saturation: 1, Lightness: 0.5, Alpha: 1}.String())
}
