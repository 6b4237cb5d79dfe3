package palette

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"huematch/cielab"
	"huematch/deltae"
)

// ErrDestroyed is returned by every fallible method of an Index after
// Destroy.
var ErrDestroyed = errors.New("palette index destroyed")

// Entry is one haystack color: its Lab coordinates and the value it was
// added as.
type Entry struct {
	Lab    cielab.LabA
	Source any
}

// Index is a haystack of colors searched by perceptual distance.
//
// An Index is not safe for concurrent use while it is being modified;
// concurrent Near and Far calls on an index nobody modifies are fine.
type Index struct {
	haystack  []Entry
	distance  deltae.Func
	logger    *slog.Logger
	destroyed bool
}

type Option func(*Index)

// WithLogger makes the index report changes to its haystack at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(idx *Index) {
		idx.logger = logger
	}
}

// WithDistance replaces the CIEDE2000 metric.
func WithDistance(f deltae.Func) Option {
	return func(idx *Index) {
		idx.distance = f
	}
}

var (
	_ PaletteRIFFReaderWriter = &Index{}
	_ PaletteConverter        = &Index{}
)

func New(opts ...Option) *Index {
	idx := &Index{
		distance: deltae.CIEDE2000,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// Add appends colors to the haystack. Each argument may be a single color
// in any shape cielab.ToLab accepts, or a slice of them. Either every color
// is added or, on the first one that fails to parse, none is.
func (idx *Index) Add(colors ...any) error {
	if idx.destroyed {
		return ErrDestroyed
	}

	var entries []Entry
	for _, c := range flatten(colors) {
		lc, err := cielab.ToLab(c)
		if err != nil {
			return fmt.Errorf("could not add color %v: %w", c, err)
		}
		entries = append(entries, Entry{Lab: lc, Source: c})
	}

	idx.haystack = append(idx.haystack, entries...)
	idx.logger.Debug("added colors", "count", len(entries), "size", len(idx.haystack))

	return nil
}

// Flush empties the haystack. It does nothing once the index is destroyed.
func (idx *Index) Flush() *Index {
	if idx.destroyed {
		return idx
	}

	idx.logger.Debug("flushed colors", "count", len(idx.haystack))
	idx.haystack = idx.haystack[:0]
	return idx
}

// Destroy releases the haystack. The index must not be used afterwards.
func (idx *Index) Destroy() {
	idx.logger.Debug("destroyed index", "count", len(idx.haystack))
	idx.haystack = nil
	idx.destroyed = true
}

func (idx *Index) Len() int {
	return len(idx.haystack)
}

// Entries returns a copy of the haystack in insertion order.
func (idx *Index) Entries() []Entry {
	return append([]Entry(nil), idx.haystack...)
}

// Near returns the sources of up to amount entries, nearest to c first.
func (idx *Index) Near(c any, amount int) ([]any, error) {
	matches, err := idx.NearEntries(c, amount)
	return sources(matches), err
}

// Far returns the sources of up to amount entries, farthest from c first.
func (idx *Index) Far(c any, amount int) ([]any, error) {
	matches, err := idx.FarEntries(c, amount)
	return sources(matches), err
}

// NearEntries is Near with the matched entries and their distances.
func (idx *Index) NearEntries(c any, amount int) ([]Match, error) {
	return idx.rank(c, amount, closer)
}

// FarEntries is Far with the matched entries and their distances.
func (idx *Index) FarEntries(c any, amount int) ([]Match, error) {
	return idx.rank(c, amount, farther)
}

func (idx *Index) rank(c any, amount int, before func(a, b float64) bool) ([]Match, error) {
	if idx.destroyed {
		return nil, ErrDestroyed
	}

	needle, err := cielab.ToLab(c)
	if err != nil {
		return nil, fmt.Errorf("could not read query color %v: %w", c, err)
	}

	r := newRanking(min(max(amount, 0), len(idx.haystack)), before)
	for i, straw := range idx.haystack {
		r.offer(Match{Entry: straw, Position: i, Distance: idx.distance(needle, straw.Lab)})
	}

	return r.matches, nil
}

// From adds every color of a palette, keeping the palette's colors as
// sources.
func (idx *Index) From(pal color.Palette) (int64, error) {
	if err := idx.Add(pal); err != nil {
		return 0, err
	}
	return int64(len(pal)), nil
}

// To renders the haystack into a palette of the given model.
func (idx *Index) To(m color.Model) (color.Palette, error) {
	if idx.destroyed {
		return nil, ErrDestroyed
	}

	pal := make(color.Palette, 0, len(idx.haystack))
	for _, e := range idx.haystack {
		c, err := cielab.ToRGBA(e.Source)
		if err != nil {
			return pal, fmt.Errorf("could not render color %v: %w", e.Source, err)
		}
		pal = append(pal, m.Convert(c))
	}
	return pal, nil
}

func (idx *Index) ReadRIFF(r io.Reader) (int64, error) {
	pals, err := ReadFrom(r)
	if err != nil {
		return 0, fmt.Errorf("could not load palettes: %w", err)
	}

	var n int64
	for _, pal := range pals {
		added, err := idx.From(pal)
		if err != nil {
			return n, err
		}
		n += added
	}

	return n, nil
}

func (idx *Index) WriteRIFF(w io.Writer) (int64, error) {
	pal, err := idx.To(color.RGBAModel)
	if err != nil {
		return 0, err
	}

	if n, err := WriteTo(w, []color.Palette{pal}); err != nil {
		return n, fmt.Errorf("could not save palette: %w", err)
	} else {
		return n, nil
	}
}

// flatten expands slice arguments so that Add("#fff", []string{"#000"})
// and Add("#fff", "#000") are the same.
func flatten(colors []any) []any {
	var res []any
	for _, c := range colors {
		switch s := c.(type) {
		case []any:
			res = append(res, s...)
		case []string:
			res = appendAll(res, s)
		case []cielab.RGBA:
			res = appendAll(res, s)
		case []cielab.HSLA:
			res = appendAll(res, s)
		case []cielab.LabA:
			res = appendAll(res, s)
		case []map[string]any:
			res = appendAll(res, s)
		case color.Palette:
			res = appendAll(res, s)
		case []color.Color:
			res = appendAll(res, s)
		default:
			res = append(res, c)
		}
	}
	return res
}

func appendAll[T any](dst []any, src []T) []any {
	for _, v := range src {
		dst = append(dst, v)
	}
	return dst
}

func sources(matches []Match) []any {
	if matches == nil {
		return nil
	}
	res := make([]any, len(matches))
	for i, m := range matches {
		res[i] = m.Source
	}
	return res
}
