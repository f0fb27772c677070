package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath resolves the runtime directory before any config is
// parsed, so the .env inside it can be loaded first.
func GetRuntimePath() string {
	path := os.Getenv("REDWAN_RUNTIME_PATH")
	if path == "" {
		path = ".redwan"
	}
	return resolvePath(path)
}

// resolvePath anchors relative paths at the user's home directory.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path)
}
