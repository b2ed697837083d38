package envfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and parses the env file at path. A missing file yields an
// empty image rather than an error; anything else (permissions, I/O)
// surfaces as a failure.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &File{Path: path}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(path, string(data)), nil
}

// Save atomically replaces the file with the image's content: the text is
// written to a temp file in the same directory, then renamed over the
// destination. A reader never observes a partially written file; a crash
// mid-write leaves either the old or the new complete content.
func (f *File) Save() error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(f.Text()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	// CreateTemp uses 0600; match the conventional env file mode
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting mode on %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, f.Path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing %s: %w", f.Path, err)
	}
	return nil
}
