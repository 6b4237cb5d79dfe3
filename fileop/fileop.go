package fileop

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// Save writes dest through a temporary file in the same folder and renames
// it into place once write returned without error. Unless overwrite is set,
// an existing dest is left alone and the error matches fs.ErrExist.
func Save(dest string, overwrite bool, write func(io.Writer) error) (err error) {
	if !overwrite {
		if err := checkDest(dest); err != nil {
			return err
		}
	}

	dir, name := filepath.Split(dest)
	if dir == "" {
		dir = "."
	}

	outFile, err := os.CreateTemp(dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("could not create temporary destination for %q: %w", dest, err)
	}
	canRename := false
	defer func() {
		if defErr := outFile.Sync(); defErr != nil && err == nil {
			err = fmt.Errorf("could not flush temporary destination %q: %w", outFile.Name(), defErr)
		}
		if defErr := outFile.Close(); defErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", outFile.Name(), defErr)
		}

		if canRename && err == nil {
			if defErr := os.Rename(outFile.Name(), dest); defErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", dest, defErr)
			}
		}

		if err != nil {
			if rmErr := os.Remove(outFile.Name()); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				slog.Error("could not remove temporary destination", "name", outFile.Name(), "error", rmErr)
			}
		}
	}()

	if err = write(outFile); err != nil {
		return fmt.Errorf("could not write %q: %w", dest, err)
	}

	canRename = true
	return nil
}

func checkDest(dest string) error {
	destFileInfo, err := os.Stat(dest)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination file %q: %w", dest, err)
		}
		return nil
	}

	return fmt.Errorf("destination file %q: %w", destFileInfo.Name(), fs.ErrExist)
}
