package services

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// maxSearchResults bounds how many hits a file search reports.
const maxSearchResults = 10

// CleanPath trims surrounding quote characters from a spoken or typed path
// and expands a leading ~ to the user's home directory. Applied before any
// filesystem check.
func CleanPath(raw, home string) string {
	path := strings.Trim(strings.TrimSpace(raw), `"'`)
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// SearchFiles walks root for files whose name contains pattern
// (case-insensitive) and returns at most maxSearchResults matches.
// Unreadable directories are skipped rather than aborting the walk.
func SearchFiles(root, pattern string) ([]string, error) {
	needle := strings.ToLower(pattern)
	var matches []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.Contains(strings.ToLower(d.Name()), needle) {
			matches = append(matches, path)
			if len(matches) >= maxSearchResults {
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return matches, nil
}

// userHome returns the home directory, falling back to the working directory
// when it cannot be determined.
func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	return home
}
