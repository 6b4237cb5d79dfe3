package find

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"

	"huematch/cielab"
	"huematch/palette"
	"huematch/parallel"
)

var errEmptyHaystack = errors.New("no colors to search: give --palette or --color")

type QueryParams struct {
	Palette string   `help:"Palette name (${builtins}) or palette file (RIFF PAL or paletted image) to search" env:"HUEMATCH_PALETTE" short:"p"`
	Color   []string `help:"Additional color to search, may be repeated" short:"c" sep:"none"`
	Amount  int      `help:"Number of matches per color" default:"1" short:"n"`
	Needles []string `arg:"" help:"Colors to look up" sep:"none"`
}

type CLICmd struct {
	Near NearCmd `cmd:"" help:"List the palette colors nearest to each given color"`
	Far  FarCmd  `cmd:"" help:"List the palette colors farthest from each given color"`
}

type NearCmd struct {
	QueryParams
}

type FarCmd struct {
	QueryParams
}

func (q *QueryParams) Validate() error {
	if q.Amount < 1 {
		return fmt.Errorf("invalid amount: %d", q.Amount)
	}
	if q.Palette == "" && len(q.Color) == 0 {
		return errEmptyHaystack
	}
	return nil
}

func (c *NearCmd) Run(pool *parallel.Pool, out io.Writer) error {
	return c.run(pool, out, (*palette.Index).NearEntries)
}

func (c *FarCmd) Run(pool *parallel.Pool, out io.Writer) error {
	return c.run(pool, out, (*palette.Index).FarEntries)
}

type queryFunc func(idx *palette.Index, c any, amount int) ([]palette.Match, error)

func (q *QueryParams) run(pool *parallel.Pool, out io.Writer, query queryFunc) error {
	idx, err := q.index()
	if err != nil {
		return err
	}
	defer idx.Destroy()

	results := make([][]palette.Match, len(q.Needles))
	var errCount atomic.Uint64
	pool.Each(len(q.Needles), func(i int) {
		matches, err := query(idx, q.Needles[i], q.Amount)
		if err != nil {
			errCount.Add(1)
			slog.Error("could not match color", "color", q.Needles[i], "error", err)
			return
		}
		results[i] = matches
	})

	for i, matches := range results {
		for _, m := range matches {
			if _, err := fmt.Fprintf(out, "%s\t%s\t%.4f\n", q.Needles[i], describe(m.Source), m.Distance); err != nil {
				return fmt.Errorf("could not write results: %w", err)
			}
		}
	}

	if n := errCount.Load(); n > 0 {
		return fmt.Errorf("error matching %d colors", n)
	}
	return nil
}

func (q *QueryParams) index() (*palette.Index, error) {
	idx := palette.New(palette.WithLogger(slog.Default()))

	if q.Palette != "" {
		n, err := idx.Load(q.Palette)
		if err != nil {
			return nil, err
		}
		slog.Debug("loaded palette", "palette", q.Palette, "colors", n)
	}

	if err := idx.Add(q.Color); err != nil {
		return nil, err
	}

	if idx.Len() == 0 {
		return nil, errEmptyHaystack
	}
	return idx, nil
}

// describe prints named colors as given and everything else as hex.
func describe(source any) string {
	if s, ok := source.(string); ok {
		return s
	}
	c, err := cielab.ToRGBA(source)
	if err != nil {
		return fmt.Sprint(source)
	}
	return c.Hex()
}
