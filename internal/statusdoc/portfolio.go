// SPDX-License-Identifier: AGPL-3.0-or-later
package statusdoc

import (
	"strconv"
	"strings"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/portfolio"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/projection"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// RenderPortfolio returns a Markdown table of portfolio entries.
func RenderPortfolio(entries []portfolio.Entry) string {
	var b strings.Builder

	counts := map[status.Status]int{}
	failed := 0
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		if e.Status != portfolio.EntryPass {
			failed++
			rows = append(rows, []string{e.Snapshot, "-", "error", "-", e.Error})
			continue
		}
		counts[e.Overall]++
		rows = append(rows, []string{e.Snapshot, e.Product, e.Overall.String(), strconv.Itoa(e.Score), status.Label(e.Overall)})
	}

	b.WriteString(projection.Header(1, "Portfolio Status"))
	b.WriteString(projection.Fields(
		projection.Field{Key: "Products", Value: strconv.Itoa(len(entries))},
		projection.Field{Key: "Healthy", Value: strconv.Itoa(counts[status.Green])},
		projection.Field{Key: "At Risk", Value: strconv.Itoa(counts[status.Yellow])},
		projection.Field{Key: "Critical", Value: strconv.Itoa(counts[status.Red])},
		projection.Field{Key: "Failed", Value: strconv.Itoa(failed)},
	))
	b.WriteString("\n")
	b.WriteString(projection.Table([]string{"Snapshot", "Product", "Overall", "Score", "Note"}, rows))

	return b.String()
}
