package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// appName names the configuration directories under the system and user
// config roots.
const appName = "wsfmt"

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// System is the first system-wide config found (e.g. /etc/wsfmt/config.yaml).
	System string

	// User is the user-level config path (e.g. ~/.config/wsfmt/config.yaml).
	User string

	// Project is the nearest project config (e.g. ./.wsfmt.yml).
	Project string

	// Explicit is a config path provided via --config flag.
	Explicit string
}

// ProjectConfigFiles are the project config names, in order of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".wsfmt.yml",
	".wsfmt.yaml",
	"wsfmt.yml",
	"wsfmt.yaml",
}

// dirConfigFiles are the names looked up inside system and user config dirs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var dirConfigFiles = []string{"config.yaml", "config.yml"}

// vcsRootMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn", ".jj"}

// DiscoverPaths finds the system, user and project configuration files.
// Missing files are represented as empty strings, not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	paths := &ConfigPaths{
		System: firstConfigIn(systemConfigDirs(os.Getenv)),
		User:   firstConfigIn(userConfigDirs(os.Getenv)),
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	return paths, nil
}

// systemConfigDirs lists system-wide config directories, most specific
// first: /etc/wsfmt, then every $XDG_CONFIG_DIRS entry (default /etc/xdg).
func systemConfigDirs(getenv func(string) string) []string {
	if runtime.GOOS == "windows" {
		programData := getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return []string{filepath.Join(programData, appName)}
	}

	dirs := []string{filepath.Join("/etc", appName)}

	xdgDirs := getenv("XDG_CONFIG_DIRS")
	if xdgDirs == "" {
		xdgDirs = "/etc/xdg"
	}
	for _, dir := range filepath.SplitList(xdgDirs) {
		if dir = strings.TrimSpace(dir); filepath.IsAbs(dir) {
			dirs = append(dirs, filepath.Join(dir, appName))
		}
	}
	return dirs
}

// userConfigDirs returns $XDG_CONFIG_HOME/wsfmt, defaulting to ~/.config.
func userConfigDirs(getenv func(string) string) []string {
	configHome := getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configHome = filepath.Join(home, ".config")
	}
	return []string{filepath.Join(configHome, appName)}
}

// firstConfigIn returns the first config file found in dirs, or "".
func firstConfigIn(dirs []string) string {
	for _, dir := range dirs {
		for _, name := range dirConfigFiles {
			if path := filepath.Join(dir, name); isRegularFile(path) {
				return path
			}
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config
// file and returns "" when there is none. The search ends at a VCS root,
// the home directory or the filesystem root, whichever comes first.
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
			return "", fmt.Errorf("find project config: %w", err)
		}

		for _, name := range ProjectConfigFiles {
			if path := filepath.Join(dir, name); isRegularFile(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || dir == home || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
