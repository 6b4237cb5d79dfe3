package scheme

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"huematch/cielab"
	"huematch/harmony"
)

type CLICmd struct {
	Scheme string         `arg:"" help:"Harmony scheme" enum:"analogous,complementary,split,triadic,tetradic"`
	Colors []string       `arg:"" help:"Base colors" sep:"none"`
	Amount int            `help:"Colors in an analogous scheme" default:"3"`
	Steps  int            `help:"Hue steps around the color wheel for an analogous scheme" default:"12"`
	Format string         `help:"Output notation" enum:"hex,rgb,hsl,lab" default:"hex"`
	Parsed harmony.Scheme `kong:"-"`
}

func (c *CLICmd) Validate() error {
	var err error
	if c.Parsed, err = harmony.ParseScheme(c.Scheme); err != nil {
		return err
	}

	if c.Amount < 1 {
		return fmt.Errorf("invalid amount: %d", c.Amount)
	}
	if c.Steps < 1 {
		return fmt.Errorf("invalid steps: %d", c.Steps)
	}
	return nil
}

func (c *CLICmd) Run(out io.Writer) error {
	var errCount int
	for _, base := range c.Colors {
		colors, err := harmony.Generate(base, c.Parsed, c.Amount, c.Steps)
		if err != nil {
			errCount++
			slog.Error("could not build scheme", "color", base, "scheme", c.Parsed, "error", err)
			continue
		}

		line := make([]string, len(colors))
		for i, col := range colors {
			line[i] = Format(col, c.Format)
		}
		if _, err := fmt.Fprintln(out, strings.Join(line, "\t")); err != nil {
			return fmt.Errorf("could not write scheme: %w", err)
		}
	}

	if errCount > 0 {
		return fmt.Errorf("error processing %d colors", errCount)
	}
	return nil
}

// Format renders c in one of the notations hex, rgb, hsl or lab.
func Format(c cielab.RGBA, notation string) string {
	switch notation {
	case "rgb":
		return c.String()
	case "hsl":
		return cielab.RGBToHSL(c).String()
	case "lab":
		return cielab.RGBToLab(c).String()
	default:
		return c.Hex()
	}
}
