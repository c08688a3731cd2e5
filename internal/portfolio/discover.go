// SPDX-License-Identifier: AGPL-3.0-or-later
package portfolio

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// FilterOptions defines criteria for including or excluding snapshot files.
type FilterOptions struct {
	// ExcludeDirs is a list of directory names to exclude.
	// Matching is segment-aware: "archive" excludes "archive/a.yaml" and
	// "team/archive/b.yaml", but not "archive_2023/c.yaml".
	ExcludeDirs []string

	// IncludeExtensions is a list of extensions to include (e.g., ".yaml").
	// Matching ignores case. If empty, all extensions are included.
	IncludeExtensions []string
}

// DefaultFilterOptions selects YAML and JSON snapshots outside hidden
// tooling directories.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		ExcludeDirs:       []string{".git", ".productlabs", "node_modules"},
		IncludeExtensions: []string{".yaml", ".yml", ".json"},
	}
}

// Discover walks root and returns the slash-separated paths, relative to
// root, of every file that passes opts.
func Discover(root string, opts FilterOptions) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("discovering snapshots in %s: %w", root, err)
	}
	return FilterFiles(paths, opts), nil
}

// FilterFiles applies the filter options to a list of file paths.
// It returns a new slice of strings, sorted deterministically.
func FilterFiles(paths []string, opts FilterOptions) []string {
	if len(paths) == 0 {
		return nil
	}

	var filtered []string
	for _, path := range paths {
		if shouldExclude(path, opts.ExcludeDirs) {
			continue
		}
		if !shouldIncludeExtension(path, opts.IncludeExtensions) {
			continue
		}
		filtered = append(filtered, path)
	}

	sort.Strings(filtered)
	return filtered
}

// shouldExclude reports whether any directory segment of path is excluded.
func shouldExclude(path string, excludes []string) bool {
	if len(excludes) == 0 {
		return false
	}
	parts := strings.Split(path, "/")
	for _, part := range parts[:len(parts)-1] {
		for _, exclude := range excludes {
			if part == exclude {
				return true
			}
		}
	}
	return false
}

func shouldIncludeExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, want := range extensions {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
