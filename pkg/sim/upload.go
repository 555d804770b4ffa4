package sim

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ZipDir archives all regular files under inputDir into zipPath.
// Files are stored uncompressed with forward-slash paths relative to
// inputDir; simulation inputs are mostly binary meshes that do not
// compress, and the solver unpacks by relative path.
func ZipDir(zipPath, inputDir string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("sim: creating archive: %w", err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)

	err = filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Store,
		})
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		return fmt.Errorf("sim: archiving %s: %w", inputDir, err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("sim: finalizing archive: %w", err)
	}
	return out.Close()
}

// UploadDir zips all files in a directory (recursively) and uploads
// the archive for simulation. The archive is temporary and removed
// after the upload, whether it succeeded or not.
func UploadDir(ctx context.Context, c Client, inputDir string, def JobDefinition) (*PreJob, error) {
	tmp, err := os.CreateTemp("", "simulation-*.zip")
	if err != nil {
		return nil, fmt.Errorf("sim: temp archive: %w", err)
	}
	zipPath := tmp.Name()
	tmp.Close()
	defer os.Remove(zipPath)

	if err := ZipDir(zipPath, inputDir); err != nil {
		return nil, err
	}
	return c.UploadSimulation(ctx, zipPath, def)
}
