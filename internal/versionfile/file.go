package versionfile

import (
	"fmt"
	"os"
	"strings"
)

// Read returns the raw contents of path. Any read failure, including a
// nonexistent file, is reported as ErrMissingFile.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMissingFile, path, err)
	}
	return data, nil
}

// ReadTrimmed returns the contents of path with surrounding whitespace removed.
func ReadTrimmed(path string) (string, error) {
	data, err := Read(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// Write replaces the contents of an existing file, keeping its permissions.
func Write(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
