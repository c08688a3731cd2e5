// SPDX-License-Identifier: AGPL-3.0-or-later
package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/projection"
)

// StateStore reads and writes portfolio run state under one directory.
type StateStore struct {
	baseDir string
}

// NewStateStore creates a store at the given base directory (e.g. .productlabs/portfolio).
func NewStateStore(baseDir string) *StateStore {
	return &StateStore{baseDir: baseDir}
}

func (s *StateStore) lastRunPath() string {
	return filepath.Join(s.baseDir, "last-run.json")
}

func (s *StateStore) entryPath(snapshot string) string {
	key := strings.NewReplacer("/", "__", `\`, "__").Replace(snapshot)
	return filepath.Join(s.baseDir, "entries", key+".json")
}

// ReadLastRun loads the last run summary. A missing file is a clean state
// and returns nil without error.
func (s *StateStore) ReadLastRun() (*LastRun, error) {
	var last LastRun
	ok, err := readJSON(s.lastRunPath(), &last)
	if err != nil || !ok {
		return nil, err
	}
	return &last, nil
}

// ReadEntry loads the stored result for snapshot, or nil if there is none.
func (s *StateStore) ReadEntry(snapshot string) (*Entry, error) {
	var e Entry
	ok, err := readJSON(s.entryPath(snapshot), &e)
	if err != nil || !ok {
		return nil, err
	}
	return &e, nil
}

// WriteLastRun saves the run summary.
func (s *StateStore) WriteLastRun(last LastRun) error {
	return writeJSON(s.lastRunPath(), last)
}

// WriteEntry saves one snapshot's result.
func (s *StateStore) WriteEntry(e Entry) error {
	return writeJSON(s.entryPath(e.Snapshot), e)
}

// Reset clears the state directory.
func (s *StateStore) Reset() error {
	return os.RemoveAll(s.baseDir)
}

// LoadFailed returns the snapshots that failed in the last run.
func (s *StateStore) LoadFailed() ([]string, error) {
	last, err := s.ReadLastRun()
	if err != nil {
		return nil, err
	}
	if last == nil {
		return nil, nil
	}
	return last.Failed, nil
}

func readJSON(path string, v any) (bool, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path built from the state directory
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", path, err)
	}
	return true, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	return projection.AtomicWrite(path, append(data, '\n'))
}
