// SPDX-License-Identifier: AGPL-3.0-or-later
package health

import (
	"strings"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// RequiredRoles must each be held by at least one team member.
var RequiredRoles = []string{"Frontend Developer", "Backend Developer", "QA Engineer"}

// Bottleneck messages recorded by EvaluateResources.
const (
	BottleneckNoTeam      = "No active team members assigned"
	BottleneckLimitedTeam = "Limited team size"
	BottleneckOverloaded  = "Team overloaded"
	bottleneckMissing     = "Missing roles: "
)

// ResourceDetails describes staffing risk.
type ResourceDetails struct {
	TotalTeamMembers  int      `json:"totalTeamMembers" yaml:"totalTeamMembers"`
	ActiveTeamMembers int      `json:"activeTeamMembers" yaml:"activeTeamMembers"`
	PendingTasks      int      `json:"pendingTasks" yaml:"pendingTasks"`
	TasksPerMember    float64  `json:"tasksPerMember" yaml:"tasksPerMember"`
	MissingRoles      []string `json:"missingRoles" yaml:"missingRoles"`
	Bottlenecks       []string `json:"bottlenecks" yaml:"bottlenecks"`
}

// ResourceResult is the output of EvaluateResources.
type ResourceResult struct {
	Status  status.Status   `json:"status" yaml:"status"`
	Details ResourceDetails `json:"details" yaml:"details"`
}

// EvaluateResources computes staffing risk from active headcount, pending
// work and coverage of RequiredRoles.
func EvaluateResources(_ model.Product, team []model.TeamMember, features []model.Feature, issues []model.Issue) ResourceResult {
	res := ResourceResult{
		Status: status.Green,
		Details: ResourceDetails{
			TotalTeamMembers: len(team),
			MissingRoles:     []string{},
			Bottlenecks:      []string{},
		},
	}
	d := &res.Details

	for _, m := range team {
		if m.IsActive {
			d.ActiveTeamMembers++
		}
	}
	for _, f := range features {
		if !model.IsFinished(f.Status) {
			d.PendingTasks++
		}
	}
	for _, i := range issues {
		if !model.IsFinished(i.Status) {
			d.PendingTasks++
		}
	}

	switch d.ActiveTeamMembers {
	case 0:
		res.Status = status.Red
		d.Bottlenecks = append(d.Bottlenecks, BottleneckNoTeam)
	case 1:
		res.Status = status.Yellow
		d.Bottlenecks = append(d.Bottlenecks, BottleneckLimitedTeam)
	}

	if d.ActiveTeamMembers > 0 {
		d.TasksPerMember = float64(d.PendingTasks) / float64(d.ActiveTeamMembers)
		switch {
		case d.TasksPerMember > 10:
			res.Status = status.Red
			d.Bottlenecks = append(d.Bottlenecks, BottleneckOverloaded)
		case d.TasksPerMember > 5:
			res.Status = status.Escalate(res.Status, status.Yellow)
		}
	}

	for _, role := range RequiredRoles {
		if !roleCovered(team, role) {
			d.MissingRoles = append(d.MissingRoles, role)
		}
	}
	switch {
	case len(d.MissingRoles) > 1:
		res.Status = status.Red
		d.Bottlenecks = append(d.Bottlenecks, bottleneckMissing+strings.Join(d.MissingRoles, ", "))
	case len(d.MissingRoles) == 1:
		res.Status = status.Escalate(res.Status, status.Yellow)
	}

	return res
}

// roleCovered reports whether any member's role contains the first word of
// the required role, ignoring case.
func roleCovered(team []model.TeamMember, required string) bool {
	key := strings.ToLower(strings.Fields(required)[0])
	for _, m := range team {
		if strings.Contains(strings.ToLower(m.Role), key) {
			return true
		}
	}
	return false
}
