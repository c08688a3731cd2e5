// SPDX-License-Identifier: AGPL-3.0-or-later
package statusdoc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/projection"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/timeline"
)

// RenderReconciliation returns a Markdown view of a timeline reconciliation.
func RenderReconciliation(productName string, res timeline.Result) string {
	var b strings.Builder

	b.WriteString(projection.Header(1, "Release Timeline: "+productName))
	b.WriteString(projection.Fields(
		projection.Field{Key: "Releases", Value: strconv.Itoa(len(res.Releases))},
		projection.Field{Key: "Auto-completed", Value: strconv.Itoa(res.AutoCompleted)},
		projection.Field{Key: "Extended", Value: strconv.Itoa(res.Extended)},
	))
	b.WriteString("\n")

	b.WriteString(projection.Header(2, "Releases"))
	rows := make([][]string, 0, len(res.Releases))
	for _, st := range res.Releases {
		rows = append(rows, []string{
			releaseName(st),
			st.Release.Status,
			dateOrDash(st),
			fmt.Sprintf("%d/%d (%d%%)", st.FinishedItems, st.TotalItems, st.CompletionRate),
			outcome(st),
		})
	}
	b.WriteString(projection.Table([]string{"Release", "Status", "Target", "Done", "Outcome"}, rows))
	b.WriteString("\n")

	b.WriteString(projection.Header(2, "Unassigned Work"))
	var unassigned []string
	for _, f := range res.Unassigned.Features {
		unassigned = append(unassigned, "Feature: "+itemName(f.Name, f.ID))
	}
	for _, is := range res.Unassigned.Issues {
		unassigned = append(unassigned, "Issue: "+itemName(is.Name, is.ID))
	}
	b.WriteString(projection.List(unassigned))

	return b.String()
}

func releaseName(st timeline.ReleaseState) string {
	return itemName(st.Release.Name, st.Release.ID)
}

func itemName(name, id string) string {
	switch {
	case name != "":
		return name
	case id != "":
		return id
	default:
		return "(unnamed)"
	}
}

func dateOrDash(st timeline.ReleaseState) string {
	if st.Release.TargetDate == nil {
		return "-"
	}
	return st.Release.TargetDate.String()
}

func outcome(st timeline.ReleaseState) string {
	switch {
	case st.AutoCompleted:
		return "auto-completed"
	case st.ExtendedEndDate != nil:
		return fmt.Sprintf("extended to %s (+%d days)", st.ExtendedEndDate, st.SlipDays)
	default:
		return "on track"
	}
}
