// SPDX-License-Identifier: AGPL-3.0-or-later
package health

import (
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// DefaultDurationWeeks is the projection horizon when a release has no duration.
const DefaultDurationWeeks = 12

// BudgetDetails describes budget risk and the burn-rate projection.
type BudgetDetails struct {
	HasBudget         bool    `json:"hasBudget" yaml:"hasBudget"`
	TotalBudget       float64 `json:"totalBudget" yaml:"totalBudget"`
	SpentBudget       float64 `json:"spentBudget" yaml:"spentBudget"`
	RemainingBudget   float64 `json:"remainingBudget" yaml:"remainingBudget"`
	BudgetUtilization float64 `json:"budgetUtilization" yaml:"budgetUtilization"`
	OverrunPercentage float64 `json:"overrunPercentage" yaml:"overrunPercentage"`
	WeeklyTeamCost    float64 `json:"weeklyTeamCost" yaml:"weeklyTeamCost"`
	DurationWeeks     int     `json:"durationWeeks" yaml:"durationWeeks"`
	ProjectedSpend    float64 `json:"projectedSpend" yaml:"projectedSpend"`
	ProjectedOverrun  bool    `json:"projectedOverrun" yaml:"projectedOverrun"`
}

// BudgetResult is the output of EvaluateBudget.
type BudgetResult struct {
	Status  status.Status `json:"status" yaml:"status"`
	Details BudgetDetails `json:"details" yaml:"details"`
}

// EvaluateBudget computes budget risk from spend against total and from the
// burn rate of the active release team. A release whose team is set but
// empty still projects its spend to date.
func EvaluateBudget(_ model.Product, budget *model.Budget, releases []model.Release) BudgetResult {
	if budget == nil || budget.TotalBudget <= 0 {
		return BudgetResult{Status: status.Green}
	}

	total, spent := budget.TotalBudget, budget.SpentBudget
	res := BudgetResult{
		Status: status.Green,
		Details: BudgetDetails{
			HasBudget:         true,
			TotalBudget:       total,
			SpentBudget:       spent,
			RemainingBudget:   total - spent,
			BudgetUtilization: spent * 100 / total,
		},
	}
	d := &res.Details

	if spent > total {
		d.OverrunPercentage = (spent - total) * 100 / total
		switch {
		case d.OverrunPercentage > 20:
			res.Status = status.Red
		case d.OverrunPercentage > 10:
			res.Status = status.Yellow
		default:
			res.Status = status.Green
		}
	} else {
		switch {
		case d.BudgetUtilization > 90:
			res.Status = status.Red
		case d.BudgetUtilization > 75:
			res.Status = status.Yellow
		}
	}

	if r := burnRelease(releases); r != nil && r.Team != nil {
		for _, slot := range r.Team {
			d.WeeklyTeamCost += slot.WeeklyCost()
		}
		d.DurationWeeks = DefaultDurationWeeks
		if r.Duration != nil && r.Duration.Weeks > 0 {
			d.DurationWeeks = r.Duration.Weeks
		}
		d.ProjectedSpend = spent + d.WeeklyTeamCost*float64(d.DurationWeeks)
		if d.ProjectedSpend > total {
			d.ProjectedOverrun = true
			res.Status = status.Escalate(res.Status, status.Yellow)
		}
	}

	return res
}

// burnRelease picks the release whose team drives the burn rate: the first
// active release, else the first release.
func burnRelease(releases []model.Release) *model.Release {
	for i := range releases {
		if releases[i].Status == model.ReleaseActive {
			return &releases[i]
		}
	}
	if len(releases) > 0 {
		return &releases[0]
	}
	return nil
}
