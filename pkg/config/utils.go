package config

import (
	"os"
	"path/filepath"
)

// findEnvFile walks up from the working directory and returns the first
// directory entry named filename (".env" when empty). An absolute filename is
// only checked in place.
func findEnvFile(filename string) (string, error) {
	if filename == "" {
		filename = ".env"
	}
	if filepath.IsAbs(filename) {
		if info, err := os.Stat(filename); err != nil || info.IsDir() {
			return "", os.ErrNotExist
		}
		return filename, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
