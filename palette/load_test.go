package palette

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func TestLoadBuiltins(t *testing.T) {
	tests := map[string]int{
		"bw":     2,
		"vga16":  16,
		"web216": 216,
		"plan9":  256,
		"css":    len(colornames.Map),
	}
	require.Len(t, Builtins, len(tests))

	for _, name := range Builtins {
		t.Run(name, func(t *testing.T) {
			idx := New()
			n, err := idx.Load(name)
			require.NoError(t, err)
			assert.EqualValues(t, tests[name], n)
			assert.Equal(t, tests[name], idx.Len())
		})
	}
}

func TestLoadCSSNames(t *testing.T) {
	idx := New()
	_, err := idx.Load("css")
	require.NoError(t, err)

	got, err := idx.Near("#663399", 1)
	require.NoError(t, err)
	assert.Equal(t, []any{"rebeccapurple"}, got)
}

func TestLoadVGA16(t *testing.T) {
	idx := New()
	_, err := idx.Load("vga16")
	require.NoError(t, err)

	got, err := idx.Near("#0000AB", 1)
	require.NoError(t, err)
	assert.Equal(t, []any{color.RGBA{0x00, 0x00, 0xaa, 0xff}}, got)
}

func writeImage(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f))
	require.NoError(t, f.Close())
	return path
}

func TestLoadFile(t *testing.T) {
	pal := color.Palette{red, green, blue, color.RGBA{A: 0xff}}
	img := image.NewPaletted(image.Rect(0, 0, 4, 1), pal)
	for i := range pal {
		img.SetColorIndex(i, 0, uint8(i))
	}

	src := New()
	require.NoError(t, src.Add(pal))

	paths := map[string]string{
		"pal": writeImage(t, "colors.pal", func(f *os.File) error {
			_, err := src.WriteRIFF(f)
			return err
		}),
		"gif": writeImage(t, "colors.gif", func(f *os.File) error {
			return gif.Encode(f, img, nil)
		}),
		"png": writeImage(t, "colors.png", func(f *os.File) error {
			return png.Encode(f, img)
		}),
	}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			idx := New()
			n, err := idx.Load(path)
			require.NoError(t, err)
			assert.EqualValues(t, len(pal), n)

			got, err := idx.Near("#0011EE", 1)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, color.RGBAModel.Convert(blue), color.RGBAModel.Convert(got[0].(color.Color)))
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	idx := New()

	_, err := idx.Load(filepath.Join(t.TempDir(), "missing.pal"))
	assert.ErrorIs(t, err, fs.ErrNotExist)

	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	path := writeImage(t, "truecolor.png", func(f *os.File) error {
		return png.Encode(f, rgba)
	})
	_, err = idx.Load(path)
	assert.ErrorContains(t, err, "has no palette")

	path = writeImage(t, "garbage.bin", func(f *os.File) error {
		_, err := f.WriteString("definitely not a palette")
		return err
	})
	_, err = idx.Load(path)
	assert.Error(t, err)

	assert.Zero(t, idx.Len())
}
