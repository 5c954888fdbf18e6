package storage

import (
	"errors"
	"os"
	"path/filepath"
)

// FileKV implements KV with one JSON file per key inside a directory.
type FileKV struct {
	dir string
}

// NewFileKV creates a FileKV rooted at dir. The directory is created on first write.
func NewFileKV(dir string) *FileKV {
	return &FileKV{dir: dir}
}

// Dir returns the storage directory.
func (s *FileKV) Dir() string {
	return s.dir
}

// Path returns the file that holds key.
func (s *FileKV) Path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Get reads the file for key.
// A missing file is reported as an absent key, not an error.
func (s *FileKV) Get(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes value to a temp file and renames it over the key's file,
// so readers never observe a partial write.
func (s *FileKV) Set(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.Path(key)); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
