// SPDX-License-Identifier: AGPL-3.0-or-later
package health

import (
	"math"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// ItemTally counts features or issues by status.
type ItemTally struct {
	Total          int `json:"total" yaml:"total"`
	Completed      int `json:"completed" yaml:"completed"`
	InProgress     int `json:"inProgress" yaml:"inProgress"`
	Blocked        int `json:"blocked" yaml:"blocked"`
	CompletionRate int `json:"completionRate" yaml:"completionRate"`
}

// ReleaseTally counts releases by status.
type ReleaseTally struct {
	Total          int `json:"total" yaml:"total"`
	Completed      int `json:"completed" yaml:"completed"`
	Active         int `json:"active" yaml:"active"`
	Planned        int `json:"planned" yaml:"planned"`
	CompletionRate int `json:"completionRate" yaml:"completionRate"`
}

// ProgressDetails holds the per entity tallies.
type ProgressDetails struct {
	Features          ItemTally    `json:"features" yaml:"features"`
	Issues            ItemTally    `json:"issues" yaml:"issues"`
	Releases          ReleaseTally `json:"releases" yaml:"releases"`
	AverageCompletion float64      `json:"averageCompletion" yaml:"averageCompletion"`
}

// ProgressResult is the output of EvaluateProgress.
type ProgressResult struct {
	Status  status.Status   `json:"status" yaml:"status"`
	Details ProgressDetails `json:"details" yaml:"details"`
}

// Status literals are matched case-sensitively.
var (
	featureCompleted = statusSet(model.StatusCompleted, model.StatusDone)
	issueCompleted   = statusSet(model.StatusCompleted, model.StatusDone, model.StatusResolved, model.StatusClosed)
	itemInProgress   = statusSet(model.StatusInProgress, model.StatusDoing)
	itemBlocked      = statusSet(model.StatusBlocked)
	releaseCompleted = statusSet(model.ReleaseCompleted, model.ReleaseReleased)
	releaseActive    = statusSet(model.ReleaseActive, model.ReleaseInProgress)
	releasePlanned   = statusSet(model.ReleasePlanned)
)

// EvaluateProgress tallies completion across releases, features and issues.
func EvaluateProgress(releases []model.Release, features []model.Feature, issues []model.Issue) ProgressResult {
	var d ProgressDetails

	for _, f := range features {
		d.Features.add(f.Status, featureCompleted)
	}
	d.Features.CompletionRate = completionRate(d.Features.Completed, d.Features.Total)

	for _, i := range issues {
		d.Issues.add(i.Status, issueCompleted)
	}
	d.Issues.CompletionRate = completionRate(d.Issues.Completed, d.Issues.Total)

	for _, r := range releases {
		d.Releases.Total++
		switch {
		case releaseCompleted[r.Status]:
			d.Releases.Completed++
		case releaseActive[r.Status]:
			d.Releases.Active++
		case releasePlanned[r.Status]:
			d.Releases.Planned++
		}
	}
	d.Releases.CompletionRate = completionRate(d.Releases.Completed, d.Releases.Total)

	d.AverageCompletion = float64(d.Features.CompletionRate+d.Issues.CompletionRate) / 2

	res := ProgressResult{Status: status.Green, Details: d}
	switch {
	case d.AverageCompletion < 30:
		res.Status = status.Red
	case d.AverageCompletion < 60:
		res.Status = status.Yellow
	}
	if d.Features.Blocked > 0 || d.Issues.Blocked > 0 {
		res.Status = status.Escalate(res.Status, status.Yellow)
	}
	return res
}

func (t *ItemTally) add(s string, completed map[string]bool) {
	t.Total++
	switch {
	case completed[s]:
		t.Completed++
	case itemInProgress[s]:
		t.InProgress++
	case itemBlocked[s]:
		t.Blocked++
	}
}

// completionRate is the rounded percentage of completed items, 0 for no items.
func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) * 100 / float64(total)))
}

func statusSet(values ...string) map[string]bool {
	m := make(map[string]bool, len(values))
	for _, v := range values {
		m[v] = true
	}
	return m
}
