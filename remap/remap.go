package remap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"

	"huematch/palette"

	"golang.org/x/image/draw"
)

// MaxPaletted is the largest palette a paletted image can carry.
const MaxPaletted = 256

var ErrEmptyPalette = errors.New("palette has no colors")

// Remap redraws img with the colors held by idx. Without dithering every
// distinct source color is replaced by its CIEDE2000 nearest entry; the
// result is paletted when idx holds at most MaxPaletted colors.
// Dithering uses Floyd-Steinberg error diffusion, which matches in RGB.
func Remap(logger *slog.Logger, img image.Image, idx *palette.Index, dither bool) (image.Image, error) {
	pal, err := idx.To(color.RGBAModel)
	if err != nil {
		return nil, err
	} else if len(pal) == 0 {
		return nil, ErrEmptyPalette
	}

	sr := img.Bounds()
	dr := image.Rect(0, 0, sr.Dx(), sr.Dy())

	if dither {
		if len(pal) > MaxPaletted {
			return nil, fmt.Errorf("cannot dither with %d colors, at most %d", len(pal), MaxPaletted)
		}
		logger.Info("dithering", "colors", len(pal))
		dest := image.NewPaletted(dr, pal)
		draw.FloydSteinberg.Draw(dest, dr, img, sr.Min)
		return dest, nil
	}

	m := newMatcher(idx)
	var set func(x, y, pos int)
	var dest draw.Image
	if len(pal) <= MaxPaletted {
		p := image.NewPaletted(dr, pal)
		set = func(x, y, pos int) { p.SetColorIndex(x, y, uint8(pos)) }
		dest = p
	} else {
		rgba := image.NewRGBA(dr)
		set = func(x, y, pos int) { rgba.Set(x, y, pal[pos]) }
		dest = rgba
	}

	for y := sr.Min.Y; y < sr.Max.Y; y++ {
		for x := sr.Min.X; x < sr.Max.X; x++ {
			pos, err := m.nearest(img.At(x, y))
			if err != nil {
				return nil, fmt.Errorf("could not match pixel (%d,%d): %w", x, y, err)
			}
			set(x-sr.Min.X, y-sr.Min.Y, pos)
		}
	}

	logger.Info("remapped", "colors", len(pal), "distinct", len(m.cache))
	return dest, nil
}

// matcher memoizes nearest lookups per source color.
type matcher struct {
	idx   *palette.Index
	cache map[color.NRGBA]int
}

func newMatcher(idx *palette.Index) *matcher {
	return &matcher{
		idx:   idx,
		cache: make(map[color.NRGBA]int),
	}
}

func (m *matcher) nearest(c color.Color) (int, error) {
	key := color.NRGBAModel.Convert(c).(color.NRGBA)
	if pos, ok := m.cache[key]; ok {
		return pos, nil
	}

	matches, err := m.idx.NearEntries(key, 1)
	if err != nil {
		return 0, err
	} else if len(matches) == 0 {
		return 0, ErrEmptyPalette
	}

	m.cache[key] = matches[0].Position
	return matches[0].Position, nil
}
