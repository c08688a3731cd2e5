// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

package health

import (
	"math"
	"time"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

const hoursPerDay = 24

// TimelineDetails describes schedule risk.
type TimelineDetails struct {
	HasDates           bool           `json:"hasDates" yaml:"hasDates"`
	ProgressPercentage float64        `json:"progressPercentage" yaml:"progressPercentage"`
	DaysRemaining      int            `json:"daysRemaining" yaml:"daysRemaining"`
	TotalDays          int            `json:"totalDays" yaml:"totalDays"`
	DelayedReleases    int            `json:"delayedReleases" yaml:"delayedReleases"`
	OverdueTasks       int            `json:"overdueTasks" yaml:"overdueTasks"`
	Urgency            status.Urgency `json:"urgency" yaml:"urgency"`
}

// TimelineResult is the output of EvaluateTimeline.
type TimelineResult struct {
	Status  status.Status   `json:"status" yaml:"status"`
	Details TimelineDetails `json:"details" yaml:"details"`
}

// EvaluateTimeline computes schedule risk from the product dates, release
// target dates and feature due dates, relative to now.
func EvaluateTimeline(product model.Product, releases []model.Release, features []model.Feature, now time.Time) TimelineResult {
	res := TimelineResult{
		Status:  status.Green,
		Details: TimelineDetails{Urgency: status.UrgencyLow},
	}
	d := &res.Details

	start, end := product.Info.StartDate, product.Info.EndDate
	if start != nil && end != nil {
		d.HasDates = true

		totalDays := end.Sub(start.Time).Hours() / hoursPerDay
		elapsedDays := math.Floor(now.Sub(start.Time).Hours() / hoursPerDay)
		d.TotalDays = int(math.Round(totalDays))
		d.DaysRemaining = daysUntil(end.Time, now)

		switch {
		case totalDays > 0:
			d.ProgressPercentage = clamp(elapsedDays/totalDays*100, 0, 100)
		case !now.Before(end.Time):
			d.ProgressPercentage = 100
		}

		switch {
		case d.DaysRemaining < 0:
			res.Status, d.Urgency = status.Red, status.UrgencyCritical
		case d.DaysRemaining <= 7:
			res.Status, d.Urgency = status.Red, status.UrgencyHigh
		case d.DaysRemaining <= 30:
			res.Status, d.Urgency = status.Yellow, status.UrgencyMedium
		case d.ProgressPercentage > 80 && float64(d.DaysRemaining) < totalDays*0.2:
			res.Status, d.Urgency = status.Yellow, status.UrgencyMedium
		}
	}

	for _, r := range releases {
		if r.TargetDate != nil && r.TargetDate.Before(now) && r.Status != model.ReleaseCompleted {
			d.DelayedReleases++
		}
	}
	if d.DelayedReleases >= 1 {
		res.Status = status.Escalate(res.Status, status.Yellow)
	}
	if d.DelayedReleases >= 2 {
		res.Status, d.Urgency = status.Red, status.UrgencyHigh
	}

	for _, f := range features {
		if f.EndDate != nil && f.EndDate.Before(now) && f.Status != model.StatusCompleted {
			d.OverdueTasks++
		}
	}
	if d.OverdueTasks >= 1 {
		res.Status = status.Escalate(res.Status, status.Yellow)
	}
	if d.OverdueTasks >= 3 {
		res.Status = status.Red
	}

	return res
}

// daysUntil returns whole days from now to t, rounded up. Negative when t is past.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / hoursPerDay))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
