// SPDX-License-Identifier: AGPL-3.0-or-later
package statusdoc_test

import (
	"testing"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/portfolio"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/statusdoc"
)

func TestRenderPortfolio(t *testing.T) {
	got := statusdoc.RenderPortfolio([]portfolio.Entry{
		{Snapshot: "labs.yaml", Status: portfolio.EntryPass, Product: "Labs", Overall: status.Red, Score: 39},
		{Snapshot: "team/insights.json", Status: portfolio.EntryPass, Product: "Insights", Overall: status.Green, Score: 100},
		{Snapshot: "broken.yaml", Status: portfolio.EntryFail, Error: "snapshot is empty"},
	})

	want := `# Portfolio Status

- **Products**: 3
- **Healthy**: 1
- **At Risk**: 0
- **Critical**: 1
- **Failed**: 1

| Snapshot | Product | Overall | Score | Note |
| --- | --- | --- | --- | --- |
| labs.yaml | Labs | red | 39 | Critical |
| team/insights.json | Insights | green | 100 | Healthy |
| broken.yaml | - | error | - | snapshot is empty |
`
	if got != want {
		t.Errorf("content mismatch:\nGOT:\n%s\nWANT:\n%s", got, want)
	}
}
