// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package statusdoc projects a health summary into a Markdown document.
package statusdoc

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/projection"
)

// Render returns the Markdown status document for s.
func Render(s health.Summary) string {
	var b strings.Builder

	b.WriteString(projection.Header(1, "Product Status: "+s.ProductName))
	b.WriteString(projection.Fields(
		projection.Field{Key: "Overall", Value: fmt.Sprintf("%s (%s)", s.OverallLabel, s.Overall)},
		projection.Field{Key: "Score", Value: strconv.Itoa(s.Score)},
		projection.Field{Key: "Generated", Value: s.GeneratedAt.Format(time.RFC3339)},
	))
	b.WriteString("\n")

	b.WriteString(projection.Header(2, "Dimensions"))
	rows := make([][]string, 0, len(s.Dimensions))
	for _, d := range s.Dimensions {
		rows = append(rows, []string{d.Name, d.Status.String(), d.Label, strconv.Itoa(d.Score)})
	}
	b.WriteString(projection.Table([]string{"Dimension", "Status", "Label", "Score"}, rows))
	b.WriteString("\n")

	renderTimeline(&b, s.Details.Timeline)
	renderBudget(&b, s.Details.Budget)
	renderResources(&b, s.Details.Resources)
	renderProgress(&b, s.Details.Progress)

	b.WriteString(projection.Header(2, "Recommendations"))
	b.WriteString(projection.List(s.Recommendations))

	return b.String()
}

// Write renders s and writes it atomically to path.
func Write(path string, s health.Summary) error {
	if err := projection.AtomicWrite(path, []byte(Render(s))); err != nil {
		return fmt.Errorf("writing status document: %w", err)
	}
	return nil
}

func renderTimeline(b *strings.Builder, d health.TimelineDetails) {
	b.WriteString(projection.Header(2, "Timeline"))
	var fields []projection.Field
	if d.HasDates {
		fields = append(fields,
			projection.Field{Key: "Days Remaining", Value: strconv.Itoa(d.DaysRemaining)},
			projection.Field{Key: "Progress", Value: fmt.Sprintf("%.1f%%", d.ProgressPercentage)},
		)
	} else {
		fields = append(fields, projection.Field{Key: "Dates", Value: "not set"})
	}
	fields = append(fields,
		projection.Field{Key: "Delayed Releases", Value: strconv.Itoa(d.DelayedReleases)},
		projection.Field{Key: "Overdue Tasks", Value: strconv.Itoa(d.OverdueTasks)},
		projection.Field{Key: "Urgency", Value: string(d.Urgency)},
	)
	b.WriteString(projection.Fields(fields...))
	b.WriteString("\n")
}

func renderBudget(b *strings.Builder, d health.BudgetDetails) {
	b.WriteString(projection.Header(2, "Budget"))
	if !d.HasBudget {
		b.WriteString("No budget set.\n\n")
		return
	}
	fields := []projection.Field{
		{Key: "Total", Value: money(d.TotalBudget)},
		{Key: "Spent", Value: money(d.SpentBudget)},
		{Key: "Remaining", Value: money(d.RemainingBudget)},
		{Key: "Utilization", Value: fmt.Sprintf("%.1f%%", d.BudgetUtilization)},
	}
	if d.OverrunPercentage > 0 {
		fields = append(fields, projection.Field{Key: "Overrun", Value: fmt.Sprintf("%.1f%%", d.OverrunPercentage)})
	}
	if d.WeeklyTeamCost > 0 {
		fields = append(fields, projection.Field{
			Key:   "Projected Spend",
			Value: fmt.Sprintf("%s (%d weeks at %s/week)", money(d.ProjectedSpend), d.DurationWeeks, money(d.WeeklyTeamCost)),
		})
	}
	b.WriteString(projection.Fields(fields...))
	b.WriteString("\n")
}

func renderResources(b *strings.Builder, d health.ResourceDetails) {
	b.WriteString(projection.Header(2, "Resources"))
	missing := "none"
	if len(d.MissingRoles) > 0 {
		missing = strings.Join(d.MissingRoles, ", ")
	}
	b.WriteString(projection.Fields(
		projection.Field{Key: "Active Members", Value: fmt.Sprintf("%d of %d", d.ActiveTeamMembers, d.TotalTeamMembers)},
		projection.Field{Key: "Pending Tasks", Value: strconv.Itoa(d.PendingTasks)},
		projection.Field{Key: "Tasks per Member", Value: fmt.Sprintf("%.1f", d.TasksPerMember)},
		projection.Field{Key: "Missing Roles", Value: missing},
	))
	b.WriteString("\n")
}

func renderProgress(b *strings.Builder, d health.ProgressDetails) {
	b.WriteString(projection.Header(2, "Progress"))
	rows := [][]string{
		tallyRow("Features", d.Features.Total, d.Features.Completed, d.Features.CompletionRate),
		tallyRow("Issues", d.Issues.Total, d.Issues.Completed, d.Issues.CompletionRate),
		tallyRow("Releases", d.Releases.Total, d.Releases.Completed, d.Releases.CompletionRate),
	}
	b.WriteString(projection.Table([]string{"Type", "Total", "Completed", "Completion"}, rows))
	b.WriteString("\n")
}

func tallyRow(name string, total, completed, rate int) []string {
	return []string{name, strconv.Itoa(total), strconv.Itoa(completed), strconv.Itoa(rate) + "%"}
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
