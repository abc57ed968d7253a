// Package paths resolves config and registry locations.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// LocalConfigFile is the project-local config, relative to the working dir.
const LocalConfigFile = ".walletbridge/config.yaml"

// ExpandHome replaces a leading ~ with the user's home directory.
// Other paths, and ~ when the home directory is unknown, are returned as is.
//
//   - "~" -> "/home/me"
//   - "~/registry" -> "/home/me/registry"
//   - "~other/x" -> "~other/x"
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// UserConfigDir returns ~/.config/walletbridge, or "" without a home dir.
func UserConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "walletbridge")
}

// UserConfigFile returns the per-user config file. Without a home directory
// it falls back to the local file.
func UserConfigFile() string {
	dir := UserConfigDir()
	if dir == "" {
		return LocalConfigFile
	}
	return filepath.Join(dir, "config.yaml")
}

// FindConfig returns the first existing config file, checking the local
// file under dir before the per-user file. ok is false when neither exists.
func FindConfig(dir string) (path string, ok bool) {
	candidates := []string{filepath.Join(dir, LocalConfigFile), UserConfigFile()}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}
