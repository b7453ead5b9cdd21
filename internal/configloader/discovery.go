package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

const appName = "parkdown"

// ConfigPaths holds the config files found for one run. Empty fields mean
// the layer has no file.
type ConfigPaths struct {
	// User is $XDG_CONFIG_HOME/parkdown/config.{yaml,yml,toml}.
	User string

	// Project is the nearest .parkdown.{yml,yaml,toml} above the working
	// directory.
	Project string

	// Explicit comes from --config.
	Explicit string
}

//nolint:gochecknoglobals // read-only lookup tables
var (
	projectConfigFiles = []string{".parkdown.yml", ".parkdown.yaml", ".parkdown.toml"}
	userConfigFiles    = []string{"config.yaml", "config.yml", "config.toml"}

	// A directory holding any of these is a repository root. A .git file
	// marks a worktree.
	vcsRootMarkers = []string{".git", ".hg", ".svn"}
)

// DiscoverPaths finds the user and project config files for workDir.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{User: findUserConfig(), Project: project}, nil
}

func findUserConfig() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}

	return firstFile(filepath.Join(dir, appName), userConfigFiles)
}

// FindProjectConfig walks up from startDir and returns the first project
// config file, or "" when there is none. The search ends at a repository
// root, the home directory or the filesystem root, whichever comes first.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		if path := firstFile(dir, projectConfigFiles); path != "" {
			return path, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that exists in dir as a regular file.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path
		}
	}
	return ""
}

// IsTOMLConfig reports whether path names a TOML config file.
func IsTOMLConfig(path string) bool {
	return filepath.Ext(path) == ".toml"
}
