package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// HomeEnv overrides the dirsweep home directory.
const HomeEnv = "DIRSWEEP_HOME"

// GetHome returns the dirsweep home directory
// Priority order:
//  1. DIRSWEEP_HOME environment variable (if set)
//  2. <user config dir>/dirsweep
//  3. .dirsweep in the current working directory (fallback)
//
// The directory is created if it doesn't exist
func GetHome() (string, error) {
	if home := os.Getenv(HomeEnv); home != "" {
		return ensureDir(home)
	}

	if configDir, err := os.UserConfigDir(); err == nil && configDir != "" {
		return ensureDir(filepath.Join(configDir, "dirsweep"))
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return ensureDir(filepath.Join(cwd, ".dirsweep"))
}

func ensureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve home directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("create home directory: %w", err)
	}
	return abs, nil
}
