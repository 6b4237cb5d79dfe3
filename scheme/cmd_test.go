package scheme

import (
	"bytes"
	"testing"

	"huematch/cielab"
	"huematch/harmony"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLICmd(t *testing.T) {
	tests := []struct {
		scheme string
		format string
		want   string
	}{
		{"triadic", "hex", "#ff0000\t#00ff00\t#0000ff\n"},
		{"complementary", "rgb", "rgb(255, 0, 0)\trgb(0, 255, 255)\n"},
		{"split", "hex", "#ff0000\t#ccff00\t#0066ff\n"},
		{"analogous", "hsl", "hsl(0.0, 100.0%, 50.0%)\thsl(30.1, 100.0%, 50.0%)\thsl(60.0, 100.0%, 50.0%)\n"},
	}

	for _, tc := range tests {
		t.Run(tc.scheme, func(t *testing.T) {
			cmd := &CLICmd{
				Scheme: tc.scheme,
				Colors: []string{"#f00"},
				Amount: 3,
				Steps:  12,
				Format: tc.format,
			}
			require.NoError(t, cmd.Validate())

			var out bytes.Buffer
			require.NoError(t, cmd.Run(&out))
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestCLICmdErrors(t *testing.T) {
	cmd := &CLICmd{Scheme: "triadic", Colors: []string{"#f00", "bogus"}, Amount: 3, Steps: 12}
	require.NoError(t, cmd.Validate())
	assert.Equal(t, harmony.SchemeTriadic, cmd.Parsed)

	var out bytes.Buffer
	assert.ErrorContains(t, cmd.Run(&out), "error processing 1 colors")
	assert.Equal(t, "#ff0000\t#00ff00\t#0000ff\n", out.String())

	assert.Error(t, (&CLICmd{Scheme: "mono", Amount: 3, Steps: 12}).Validate())
	assert.Error(t, (&CLICmd{Scheme: "analogous", Amount: 0, Steps: 12}).Validate())
	assert.Error(t, (&CLICmd{Scheme: "analogous", Amount: 3, Steps: 0}).Validate())
}

func TestFormat(t *testing.T) {
	red := cielab.RGBA{Red: 255, Alpha: 1}
	assert.Equal(t, "#ff0000", Format(red, "hex"))
	assert.Equal(t, "rgb(255, 0, 0)", Format(red, "rgb"))
	assert.Equal(t, "hsl(0.0, 100.0%, 50.0%)", Format(red, "hsl"))
	assert.Equal(t, "lab(53.24, 80.09, 67.20 / 1)", Format(red, "lab"))
}
