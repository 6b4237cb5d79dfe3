package remap

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"sync"

	"huematch/fileop"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Save encodes img as outType into dest.
func Save(img image.Image, outType, dest string, overwrite bool) error {
	var encode func(io.Writer) error
	switch outType {
	case "gif":
		encode = func(w io.Writer) error { return gif.Encode(w, img, nil) }
	case "jpeg":
		encode = func(w io.Writer) error { return jpeg.Encode(w, img, &jpeg.Options{Quality: 100}) }
	case "png":
		enc := png.Encoder{
			CompressionLevel: png.BestCompression,
			BufferPool:       pngPool,
		}
		encode = func(w io.Writer) error { return enc.Encode(w, img) }
	case "bmp":
		encode = func(w io.Writer) error { return bmp.Encode(w, img) }
	case "tiff":
		encode = func(w io.Writer) error { return tiff.Encode(w, img, nil) }
	default:
		return fmt.Errorf("unsupported output format: %s", outType)
	}

	if err := fileop.Save(dest, overwrite, encode); err != nil {
		return fmt.Errorf("could not save %s image: %w", outType, err)
	}
	return nil
}

type pngEncoderBufferPool struct {
	pool sync.Pool
}

func (p *pngEncoderBufferPool) Get() *png.EncoderBuffer {
	return p.pool.Get().(*png.EncoderBuffer)
}

func (p *pngEncoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var pngPool = &pngEncoderBufferPool{
	pool: sync.Pool{
		New: func() any {
			return &png.EncoderBuffer{}
		},
	},
}
