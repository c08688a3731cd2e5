// SPDX-License-Identifier: AGPL-3.0-or-later
package statusdoc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/health"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/statusdoc"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/testutil/golden"
)

func summaryFor(in health.Input, now string) health.Summary {
	at := model.MustParseDate(now).Time
	return health.GenerateStatusReport(in.Product, health.CalculateProductStatus(in, at), at)
}

func TestRender_Golden(t *testing.T) {
	in := health.Input{
		Product: model.Product{
			Name: "Labs",
			Info: model.ProductInfo{StartDate: model.DatePtr("2024-01-01"), EndDate: model.DatePtr("2024-06-30")},
		},
		Budget: &model.Budget{TotalBudget: 1000, SpentBudget: 1300},
		TeamMembers: []model.TeamMember{
			{Name: "Ana", Role: "Frontend Developer", IsActive: true},
			{Name: "Bo", Role: "Backend Developer", IsActive: true},
		},
	}

	got := statusdoc.Render(summaryFor(in, "2024-07-01"))
	golden.Assert(t, golden.TestdataDir(t), "overdue_product", got)
}

func TestRender_OptionalSections(t *testing.T) {
	in := health.Input{
		Product: model.Product{Name: "Undated"},
		Releases: []model.Release{{
			Status: model.ReleaseActive,
			Team:   []model.TeamSlot{{Role: "Backend Developer", Count: 2, WeeklyRate: 1000}},
		}},
	}
	out := statusdoc.Render(summaryFor(in, "2024-07-01"))
	if !strings.Contains(out, "- **Dates**: not set\n") {
		t.Errorf("expected undated timeline, got:\n%s", out)
	}
	if !strings.Contains(out, "No budget set.\n") {
		t.Errorf("expected missing budget note, got:\n%s", out)
	}

	in.Budget = &model.Budget{TotalBudget: 10000, SpentBudget: 1000}
	out = statusdoc.Render(summaryFor(in, "2024-07-01"))
	if !strings.Contains(out, "- **Projected Spend**: 25000.00 (12 weeks at 2000.00/week)\n") {
		t.Errorf("expected burn projection, got:\n%s", out)
	}
	if strings.Contains(out, "**Overrun**") {
		t.Errorf("overrun line must only appear when over budget")
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docs", "status.md")
	s := summaryFor(health.Input{Product: model.Product{Name: "Labs"}}, "2024-07-01")

	if err := statusdoc.Write(path, s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(got) != statusdoc.Render(s) {
		t.Errorf("written document differs from Render output")
	}
}
