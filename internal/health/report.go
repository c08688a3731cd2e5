// SPDX-License-Identifier: AGPL-3.0-or-later
package health

import (
	"time"

	"github.com/google/uuid"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// DimensionSummary is the display form of one dimension.
type DimensionSummary struct {
	Name   string        `json:"name" yaml:"name"`
	Status status.Status `json:"status" yaml:"status"`
	Label  string        `json:"label" yaml:"label"`
	Color  string        `json:"color" yaml:"color"`
	Score  int           `json:"score" yaml:"score"`
}

// Summary is a serializable report for display or export.
type Summary struct {
	ID              string             `json:"id" yaml:"id"`
	ProductID       string             `json:"productId,omitempty" yaml:"productId,omitempty"`
	ProductName     string             `json:"productName" yaml:"productName"`
	GeneratedAt     time.Time          `json:"generatedAt" yaml:"generatedAt"`
	Overall         status.Status      `json:"overall" yaml:"overall"`
	OverallLabel    string             `json:"overallLabel" yaml:"overallLabel"`
	OverallColor    string             `json:"overallColor" yaml:"overallColor"`
	Score           int                `json:"score" yaml:"score"`
	Dimensions      []DimensionSummary `json:"dimensions" yaml:"dimensions"`
	Recommendations []string           `json:"recommendations" yaml:"recommendations"`
	Details         Details            `json:"details" yaml:"details"`
}

// GenerateStatusReport combines a report with display labels, colors and a
// generation timestamp.
func GenerateStatusReport(product model.Product, report StatusReport, generatedAt time.Time) Summary {
	return Summary{
		ID:           uuid.NewString(),
		ProductID:    product.ID,
		ProductName:  product.Name,
		GeneratedAt:  generatedAt.UTC(),
		Overall:      report.Overall,
		OverallLabel: status.Label(report.Overall),
		OverallColor: status.Color(report.Overall),
		Score:        report.Score,
		Dimensions: []DimensionSummary{
			dimension("Timeline", report.Timeline),
			dimension("Budget", report.Budget),
			dimension("Resources", report.Resources),
			dimension("Progress", report.Progress),
		},
		Recommendations: append([]string{}, report.Recommendations...),
		Details:         copyDetails(report.Details),
	}
}

func copyDetails(d Details) Details {
	d.Resources.MissingRoles = append([]string{}, d.Resources.MissingRoles...)
	d.Resources.Bottlenecks = append([]string{}, d.Resources.Bottlenecks...)
	return d
}

func dimension(name string, s status.Status) DimensionSummary {
	return DimensionSummary{
		Name:   name,
		Status: s,
		Label:  status.Label(s),
		Color:  status.Color(s),
		Score:  status.Score(s),
	}
}
