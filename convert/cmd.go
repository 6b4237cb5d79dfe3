package convert

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"huematch/cielab"
	"huematch/fileop"
	"huematch/palette"
)

type CLICmd struct {
	Out       string   `help:"Also save the parsed colors as a RIFF PAL file" type:"path"`
	Overwrite bool     `help:"Replace an existing PAL file" default:"false"`
	Colors    []string `arg:"" help:"Colors to convert" sep:"none"`
}

func (c *CLICmd) Validate() error {
	if c.Out != "" && filepath.Ext(c.Out) == "" {
		c.Out += ".pal"
	}
	return nil
}

func (c *CLICmd) Run(out io.Writer) error {
	idx := palette.New(palette.WithLogger(slog.Default()))
	defer idx.Destroy()

	var errCount int
	for _, s := range c.Colors {
		rgba, err := cielab.ToRGBA(s)
		if err != nil {
			errCount++
			slog.Error("could not convert color", "color", s, "error", err)
			continue
		}

		if _, err := fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", rgba.Hex(), rgba, cielab.RGBToHSL(rgba), cielab.RGBToLab(rgba)); err != nil {
			return fmt.Errorf("could not write color: %w", err)
		}

		if err := idx.Add(rgba); err != nil {
			return err
		}
	}

	if c.Out != "" && idx.Len() > 0 {
		var n int64
		err := fileop.Save(c.Out, c.Overwrite, func(w io.Writer) error {
			var err error
			n, err = idx.WriteRIFF(w)
			return err
		})
		if err != nil {
			return err
		}
		slog.Info("saved palette", "file", c.Out, "colors", n)
	}

	if errCount > 0 {
		return fmt.Errorf("error processing %d colors", errCount)
	}
	return nil
}
