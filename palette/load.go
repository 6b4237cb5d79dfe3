package palette

import (
	"bufio"
	"bytes"
	"fmt"
	"image"
	"image/color"
	stdpalette "image/color/palette"
	_ "image/gif"
	_ "image/png"
	"maps"
	"os"
	"slices"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
	_ "golang.org/x/image/tiff"
)

// Builtins lists the palette names Load resolves without touching the
// file system.
var Builtins = []string{"bw", "vga16", "web216", "plan9", "css"}

var vga16 = color.Palette{
	color.RGBA{0x00, 0x00, 0x00, 0xff},
	color.RGBA{0x00, 0x00, 0xaa, 0xff},
	color.RGBA{0x00, 0xaa, 0x00, 0xff},
	color.RGBA{0x00, 0xaa, 0xaa, 0xff},
	color.RGBA{0xaa, 0x00, 0x00, 0xff},
	color.RGBA{0xaa, 0x00, 0xaa, 0xff},
	color.RGBA{0xaa, 0x55, 0x00, 0xff},
	color.RGBA{0xaa, 0xaa, 0xaa, 0xff},
	color.RGBA{0x55, 0x55, 0x55, 0xff},
	color.RGBA{0x55, 0x55, 0xff, 0xff},
	color.RGBA{0x55, 0xff, 0x55, 0xff},
	color.RGBA{0x55, 0xff, 0xff, 0xff},
	color.RGBA{0xff, 0x55, 0x55, 0xff},
	color.RGBA{0xff, 0x55, 0xff, 0xff},
	color.RGBA{0xff, 0xff, 0x55, 0xff},
	color.RGBA{0xff, 0xff, 0xff, 0xff},
}

// Load adds a named palette to the index and returns how many colors it
// added. Builtin names are tried first; "css" adds the CSS color keywords
// as strings, so matches come back as names. Anything else is read as a
// file: a RIFF PAL, or a paletted GIF, PNG, BMP or TIFF image.
func (idx *Index) Load(name string) (int64, error) {
	switch name {
	case "bw":
		return idx.From(color.Palette{color.Black, color.White})
	case "vga16":
		return idx.From(vga16)
	case "web216":
		return idx.From(stdpalette.WebSafe)
	case "plan9":
		return idx.From(stdpalette.Plan9)
	case "css":
		names := slices.Sorted(maps.Keys(colornames.Map))
		if err := idx.Add(names); err != nil {
			return 0, err
		}
		return int64(len(names)), nil
	}

	return idx.loadFile(name)
}

func (idx *Index) loadFile(name string) (int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return 0, fmt.Errorf("could not open palette %q: %w", name, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			idx.logger.Error("could not close palette file", "name", name, "error", closeErr)
		}
	}()

	r := bufio.NewReader(f)
	if magic, err := r.Peek(len(riffType)); err == nil && bytes.Equal(magic, riffType[:]) {
		n, err := idx.ReadRIFF(r)
		if err != nil {
			return n, fmt.Errorf("could not read palette %q: %w", name, err)
		}
		return n, nil
	}

	conf, format, err := image.DecodeConfig(r)
	if err != nil {
		return 0, fmt.Errorf("could not read palette %q: %w", name, err)
	}

	pal, ok := conf.ColorModel.(color.Palette)
	if !ok {
		return 0, fmt.Errorf("%s image %q has no palette", format, name)
	}

	return idx.From(pal)
}
