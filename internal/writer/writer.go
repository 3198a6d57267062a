// Package writer persists formatted transcripts under the output directory.
package writer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileWriter writes transcript files into a fixed output directory,
// creating it on first use and overwriting same-named files.
type FileWriter struct {
	dir string
}

func NewFileWriter(dir string) *FileWriter {
	return &FileWriter{dir: dir}
}

// Write stores content as <dir>/<baseName>.<extension>. The content lands
// via a temp file and rename so a failed write never leaves a partial file
// behind.
func (w *FileWriter) Write(baseName, extension, content string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", w.dir)
	}

	target := filepath.Join(w.dir, baseName+"."+extension)

	tmp, err := os.CreateTemp(w.dir, baseName+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to write %s", target)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}

	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errors.Wrapf(err, "failed to move transcript into place")
	}
	return nil
}
