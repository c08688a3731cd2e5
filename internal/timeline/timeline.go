// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package timeline reconciles releases with the features and issues
// planned into them.
//
// Reconcile matches work items to releases, auto-completes late releases
// whose work is all finished, and recomputes an extended end date for late
// releases that still have open work. Inputs are never mutated.
package timeline

import (
	"math"
	"time"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
)

// DefaultExtensionDays pushes a late release's end date past now when none
// of its open features carries a later due date.
const DefaultExtensionDays = 14

// Options tune reconciliation.
type Options struct {
	ExtensionDays int
}

func (o Options) extensionDays() int {
	if o.ExtensionDays <= 0 {
		return DefaultExtensionDays
	}
	return o.ExtensionDays
}

// ReleaseItems is a release with the work items matched to it.
type ReleaseItems struct {
	Release  model.Release   `json:"release" yaml:"release"`
	Features []model.Feature `json:"features" yaml:"features"`
	Issues   []model.Issue   `json:"issues" yaml:"issues"`
}

// Unassigned holds work items that match no known release.
type Unassigned struct {
	Features []model.Feature `json:"features" yaml:"features"`
	Issues   []model.Issue   `json:"issues" yaml:"issues"`
}

// MatchItems groups features and issues under their releases, preserving
// release order. An issue without a release inherits its feature's release.
func MatchItems(releases []model.Release, features []model.Feature, issues []model.Issue) ([]ReleaseItems, Unassigned) {
	out := make([]ReleaseItems, len(releases))
	index := make(map[string]int, len(releases))
	for i, r := range releases {
		out[i] = ReleaseItems{Release: r, Features: []model.Feature{}, Issues: []model.Issue{}}
		if r.ID != "" {
			index[r.ID] = i
		}
	}

	unassigned := Unassigned{Features: []model.Feature{}, Issues: []model.Issue{}}
	featureRelease := make(map[string]string, len(features))

	for _, f := range features {
		if f.ID != "" {
			featureRelease[f.ID] = f.ReleaseID
		}
		if i, ok := index[f.ReleaseID]; ok && f.ReleaseID != "" {
			out[i].Features = append(out[i].Features, f)
			continue
		}
		unassigned.Features = append(unassigned.Features, f)
	}

	for _, is := range issues {
		releaseID := is.ReleaseID
		if releaseID == "" && is.FeatureID != "" {
			releaseID = featureRelease[is.FeatureID]
		}
		if i, ok := index[releaseID]; ok && releaseID != "" {
			out[i].Issues = append(out[i].Issues, is)
			continue
		}
		unassigned.Issues = append(unassigned.Issues, is)
	}

	return out, unassigned
}

// ReleaseState is the reconciled view of one release.
type ReleaseState struct {
	Release          model.Release `json:"release" yaml:"release"`
	TotalItems       int           `json:"totalItems" yaml:"totalItems"`
	FinishedItems    int           `json:"finishedItems" yaml:"finishedItems"`
	CompletionRate   int           `json:"completionRate" yaml:"completionRate"`
	Late             bool          `json:"late" yaml:"late"`
	AutoCompleted    bool          `json:"autoCompleted" yaml:"autoCompleted"`
	ExtendedEndDate  *model.Date   `json:"extendedEndDate,omitempty" yaml:"extendedEndDate,omitempty"`
	SlipDays         int           `json:"slipDays" yaml:"slipDays"`
	OpenFeatureCount int           `json:"openFeatureCount" yaml:"openFeatureCount"`
}

// Result is the output of Reconcile.
type Result struct {
	Releases      []ReleaseState `json:"releases" yaml:"releases"`
	Unassigned    Unassigned     `json:"unassigned" yaml:"unassigned"`
	AutoCompleted int            `json:"autoCompleted" yaml:"autoCompleted"`
	Extended      int            `json:"extended" yaml:"extended"`
}

// Reconcile matches items to releases and settles late releases relative to now.
func Reconcile(releases []model.Release, features []model.Feature, issues []model.Issue, now time.Time, opts Options) Result {
	matched, unassigned := MatchItems(releases, features, issues)
	res := Result{Releases: make([]ReleaseState, 0, len(matched)), Unassigned: unassigned}

	for _, m := range matched {
		st := reconcileRelease(m, now, opts)
		if st.AutoCompleted {
			res.AutoCompleted++
		}
		if st.ExtendedEndDate != nil {
			res.Extended++
		}
		res.Releases = append(res.Releases, st)
	}
	return res
}

func reconcileRelease(m ReleaseItems, now time.Time, opts Options) ReleaseState {
	st := ReleaseState{Release: copyRelease(m.Release)}

	for _, f := range m.Features {
		st.TotalItems++
		if model.IsFinished(f.Status) {
			st.FinishedItems++
		} else {
			st.OpenFeatureCount++
		}
	}
	for _, is := range m.Issues {
		st.TotalItems++
		if model.IsFinished(is.Status) {
			st.FinishedItems++
		}
	}
	if st.TotalItems > 0 {
		st.CompletionRate = int(math.Round(float64(st.FinishedItems) * 100 / float64(st.TotalItems)))
	}

	r := &st.Release
	if r.Status == model.ReleaseCompleted || r.TargetDate == nil || !r.TargetDate.Before(now) {
		return st
	}
	st.Late = true

	if st.TotalItems > 0 && st.FinishedItems == st.TotalItems {
		r.Status = model.ReleaseCompleted
		st.AutoCompleted = true
		return st
	}

	end := r.TargetDate.Time
	for _, f := range m.Features {
		if !model.IsFinished(f.Status) && f.EndDate != nil && f.EndDate.After(end) {
			end = f.EndDate.Time
		}
	}
	if !end.After(now) {
		end = startOfDay(now).AddDate(0, 0, opts.extensionDays())
	}

	extended := model.Date{Time: end}
	st.ExtendedEndDate = &extended
	st.SlipDays = int(math.Round(end.Sub(r.TargetDate.Time).Hours() / 24))
	return st
}

// copyRelease detaches the mutable parts of r from the caller's value.
func copyRelease(r model.Release) model.Release {
	if r.Team != nil {
		r.Team = append([]model.TeamSlot(nil), r.Team...)
	}
	if r.Duration != nil {
		d := *r.Duration
		r.Duration = &d
	}
	return r
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
