// SPDX-License-Identifier: AGPL-3.0-or-later
package portfolio

import "github.com/buildly-release-management/buildly-react-template-sub002/internal/status"

// EntryStatus is the outcome of evaluating one snapshot. A red product is
// still a passing evaluation; fail means the snapshot could not be evaluated.
type EntryStatus string

const (
	EntryPass EntryStatus = "pass"
	EntryFail EntryStatus = "fail"
)

// Entry is the stored result for one snapshot.
// Stored as <state>/entries/<key>.json.
type Entry struct {
	Snapshot  string        `json:"snapshot" yaml:"snapshot"`
	Status    EntryStatus   `json:"status" yaml:"status"`
	ProductID string        `json:"productId,omitempty" yaml:"productId,omitempty"`
	Product   string        `json:"product,omitempty" yaml:"product,omitempty"`
	Overall   status.Status `json:"overall,omitempty" yaml:"overall,omitempty"`
	Score     int           `json:"score,omitempty" yaml:"score,omitempty"`
	Error     string        `json:"error,omitempty" yaml:"error,omitempty"`
}

// LastRun summarizes the most recent portfolio run.
// Stored as <state>/last-run.json.
type LastRun struct {
	Status    string   `json:"status"`    // "pass" or "fail"
	Snapshots []string `json:"snapshots"` // Ordered list of snapshots evaluated
	Failed    []string `json:"failed"`    // Snapshots that could not be evaluated
}
