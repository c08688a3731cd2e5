// SPDX-License-Identifier: AGPL-3.0-or-later
package portfolio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterFiles(t *testing.T) {
	tests := []struct {
		name     string
		paths    []string
		opts     FilterOptions
		expected []string
	}{
		{
			name:     "exclude archive",
			paths:    []string{"a.yaml", "archive/old.yaml", "team/b.yaml"},
			opts:     FilterOptions{ExcludeDirs: []string{"archive"}},
			expected: []string{"a.yaml", "team/b.yaml"},
		},
		{
			name:     "exclude nested directory",
			paths:    []string{"archive/a.yaml", "team/archive/b.yaml", "team/c.yaml"},
			opts:     FilterOptions{ExcludeDirs: []string{"archive"}},
			expected: []string{"team/c.yaml"},
		},
		{
			name:     "segment matching only",
			paths:    []string{"archive_2023/a.yaml", "myarchive/b.yaml"},
			opts:     FilterOptions{ExcludeDirs: []string{"archive"}},
			expected: []string{"archive_2023/a.yaml", "myarchive/b.yaml"},
		},
		{
			name:     "file names are not directory segments",
			paths:    []string{"archive", "team/archive"},
			opts:     FilterOptions{ExcludeDirs: []string{"archive"}},
			expected: []string{"archive", "team/archive"},
		},
		{
			name:     "extension filter ignores case",
			paths:    []string{"a.yaml", "b.md", "C.JSON", "d.yml"},
			opts:     DefaultFilterOptions(),
			expected: []string{"C.JSON", "a.yaml", "d.yml"},
		},
		{
			name:     "empty input",
			paths:    nil,
			opts:     DefaultFilterOptions(),
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterFiles(tt.paths, tt.opts)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	createFile(t, root, "labs.yaml")
	createFile(t, root, "team/insights.json")
	createFile(t, root, "team/notes.md")
	createFile(t, root, ".productlabs/portfolio/last-run.json")
	createFile(t, root, ".git/config.yml")

	got, err := Discover(root, DefaultFilterOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"labs.yaml", "team/insights.json"}, got)
}

func TestDiscover_MissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"), DefaultFilterOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discovering snapshots")
}
