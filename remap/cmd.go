package remap

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"huematch/palette"
	"huematch/parallel"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type CLICmd struct {
	Scan      string         `help:"Source folder to scan" default:"."`
	Dest      string         `help:"Destination folder for remapped pictures. Relative to scan dir if not absolute." default:"remapped"`
	Palette   string         `help:"Palette name (${builtins}) or palette file (RIFF PAL or paletted image)" env:"HUEMATCH_PALETTE" required:""`
	Dither    bool           `help:"Apply Floyd-Steinberg dithering instead of nearest color matching" default:"false"`
	Format    string         `help:"Output format of remapped image. If prefixed with 'unsup:' will convert only unsupported formats" enum:"same,gif,unsup:gif,jpeg,unsup:jpeg,png,unsup:png,bmp,unsup:bmp,tiff,unsup:tiff" default:"unsup:png"`
	Overwrite bool           `help:"Replace existing files in the destination folder" default:"false"`
	Index     *palette.Index `kong:"-"`
}

func (c *CLICmd) Validate() error {
	scanDir, err := filepath.Abs(c.Scan)
	var info os.FileInfo
	if err == nil {
		if info, err = os.Stat(scanDir); err == nil && !info.IsDir() {
			err = fmt.Errorf("not a directory")
		}
	}
	if err != nil {
		return fmt.Errorf("invalid scan path %q: %w", c.Scan, err)
	}
	c.Scan = scanDir

	if !filepath.IsAbs(c.Dest) {
		c.Dest = filepath.Join(scanDir, c.Dest)
	}
	if c.Dest == c.Scan {
		return fmt.Errorf("destination folder is the scan folder: %q", c.Dest)
	}

	c.Index = palette.New(palette.WithLogger(slog.Default()))
	if _, err := c.Index.Load(c.Palette); err != nil {
		return err
	}
	if c.Index.Len() == 0 {
		return fmt.Errorf("palette %q: %w", c.Palette, ErrEmptyPalette)
	}
	if c.Dither && c.Index.Len() > MaxPaletted {
		return fmt.Errorf("cannot dither with palette %q: %d colors, at most %d", c.Palette, c.Index.Len(), MaxPaletted)
	}

	return nil
}

func (c *CLICmd) Run(pool *parallel.Pool) error {
	defer c.Index.Destroy()

	if err := os.MkdirAll(c.Dest, 0o755); err != nil {
		return fmt.Errorf("unable to create destination folder %q: %w", c.Dest, err)
	}

	files, err := os.ReadDir(c.Scan)
	if err != nil {
		return fmt.Errorf("unable to read folder %q: %w", c.Scan, err)
	}

	var processedCount, errCount atomic.Uint64
	for _, file := range files {
		if file.IsDir() {
			continue
		}

		pool.Do(func() {
			filePath := filepath.Join(c.Scan, file.Name())
			logger := slog.Default().With("file", filePath)

			if err := c.process(logger, filePath, file.Name()); err != nil {
				errCount.Add(1)
				logger.Error("could not remap image", "error", err)
				return
			}
			processedCount.Add(1)
		})
	}

	pool.Wait()

	processed := processedCount.Load()
	errors := errCount.Load()
	slog.Info("stats", "processed", processed, "errors", errors,
		"total", processed+errors)

	if errors > 0 {
		return fmt.Errorf("error processing %d files", errors)
	}
	return nil
}

func (c *CLICmd) process(logger *slog.Logger, filePath, fileName string) error {
	imgFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("could not open image: %w", err)
	}

	img, imgType, err := image.Decode(imgFile)
	if closeErr := imgFile.Close(); closeErr != nil {
		logger.Error("could not close image", "error", closeErr)
	}
	if err != nil {
		return fmt.Errorf("could not decode image: %w", err)
	}

	img, err = Remap(logger.With("palette", c.Palette), img, c.Index, c.Dither)
	if err != nil {
		return err
	}

	outType, unsupOnly := strings.CutPrefix(c.Format, "unsup:")
	if (unsupOnly && imgType != "webp") || outType == "same" {
		outType = imgType
	}

	return Save(img, outType, destName(c.Dest, fileName, outType), c.Overwrite)
}

func destName(destDir, srcName, outType string) string {
	oldExt := filepath.Ext(srcName)
	return filepath.Join(destDir, fmt.Sprintf("%s.%s", srcName[:len(srcName)-len(oldExt)], outType))
}
