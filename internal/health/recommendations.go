// SPDX-License-Identifier: AGPL-3.0-or-later
package health

import (
	"fmt"
	"strings"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// Recommendations derives advice from a report. Each triggered condition adds
// one message, in the order timeline, budget, resources, then a closing
// message when the score is below the green threshold.
func Recommendations(r StatusReport) []string {
	recs := []string{}
	recs = append(recs, timelineRecommendations(r.Timeline, r.Details.Timeline)...)
	recs = append(recs, budgetRecommendations(r.Budget, r.Details.Budget)...)
	recs = append(recs, resourceRecommendations(r.Resources, r.Details.Resources)...)

	switch {
	case r.Score < status.YellowThreshold:
		recs = append(recs, "Overall project health is critical. Schedule an immediate review with stakeholders.")
	case r.Score < status.GreenThreshold:
		recs = append(recs, "Project health needs attention. Review the at-risk areas weekly until they recover.")
	}
	return recs
}

func timelineRecommendations(s status.Status, d TimelineDetails) []string {
	var recs []string
	switch {
	case d.HasDates && d.DaysRemaining < 0:
		recs = append(recs, "Project is overdue. Reassess scope and agree on a new end date.")
	case d.HasDates && d.DaysRemaining <= 7:
		recs = append(recs, fmt.Sprintf("Only %d days remaining. Focus the team on release-critical features.", d.DaysRemaining))
	case s == status.Yellow:
		recs = append(recs, "Timeline is at risk. Review upcoming milestones and consider trimming scope.")
	}
	if d.DelayedReleases > 0 {
		recs = append(recs, fmt.Sprintf("%d release(s) past target date. Update release plans.", d.DelayedReleases))
	}
	if d.OverdueTasks > 0 {
		recs = append(recs, fmt.Sprintf("%d feature(s) past due date. Re-plan or reassign them.", d.OverdueTasks))
	}
	return recs
}

func budgetRecommendations(s status.Status, d BudgetDetails) []string {
	if !d.HasBudget {
		return nil
	}
	var recs []string
	switch {
	case d.OverrunPercentage > 0:
		recs = append(recs, fmt.Sprintf("Budget overrun by %.1f%%. Review spending and secure additional funding.", d.OverrunPercentage))
	case s == status.Red:
		recs = append(recs, fmt.Sprintf("Budget utilization at %.1f%%. Apply immediate cost controls.", d.BudgetUtilization))
	case s == status.Yellow && !d.ProjectedOverrun:
		recs = append(recs, fmt.Sprintf("Budget utilization at %.1f%%. Monitor spending closely.", d.BudgetUtilization))
	}
	if d.ProjectedOverrun {
		recs = append(recs, fmt.Sprintf("Projected spend of %.2f exceeds the budget at the current team burn rate.", d.ProjectedSpend))
	}
	return recs
}

func resourceRecommendations(s status.Status, d ResourceDetails) []string {
	var recs []string
	if d.ActiveTeamMembers == 0 {
		recs = append(recs, "Assign active team members to the product.")
	}
	for _, b := range d.Bottlenecks {
		if b == BottleneckOverloaded {
			recs = append(recs, fmt.Sprintf("Team is overloaded at %.1f tasks per member. Add resources or reduce scope.", d.TasksPerMember))
		}
	}
	if len(d.MissingRoles) > 0 {
		recs = append(recs, "Fill missing roles: "+strings.Join(d.MissingRoles, ", ")+".")
	}
	if s == status.Yellow && d.ActiveTeamMembers > 0 && len(d.MissingRoles) == 0 {
		recs = append(recs, "Team capacity is limited. Consider adding team members.")
	}
	return recs
}
