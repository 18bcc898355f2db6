// Package archive is the export output sink: pretty-printed JSON on a
// writer, or a timestamped JSON file wrapped in a zip archive.
package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/flate"
)

// stampFormat is the timestamp embedded in archive names:
// GitHubExport-YYYYMMDD-HHMMSS.
const stampFormat = "20060102-150405"

// Print serializes the document as indented JSON to w. Map keys are
// emitted in sorted order.
func Print(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("printing export: %w", err)
	}
	return nil
}

// Write serializes the document to a timestamped JSON file in the
// system temp directory, then wraps it in a zip archive of the same
// stem inside dir. It returns the archive path.
func Write(doc any, dir string) (string, error) {
	name := "GitHubExport-" + time.Now().Format(stampFormat)

	jsonPath := filepath.Join(os.TempDir(), name+".json")
	data, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("serializing export: %w", err)
	}
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}

	zipPath := filepath.Join(dir, name+".zip")
	if err := writeZip(zipPath, name+".json", jsonPath); err != nil {
		return "", err
	}
	return zipPath, nil
}

// writeZip creates a zip archive at zipPath containing srcPath stored
// under entryName, deflated with klauspost/compress.
func writeZip(zipPath, entryName, srcPath string) (err error) {
	f, err := os.Create(zipPath)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(f)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})

	w, err := zw.Create(entryName)
	if err != nil {
		return fmt.Errorf("creating archive entry: %w", err)
	}

	src, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("opening export file: %w", err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("compressing export: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finalizing archive: %w", err)
	}
	return nil
}
