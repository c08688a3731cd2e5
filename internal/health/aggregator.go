// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package health computes the product health report: timeline, budget,
// resource and progress risk, merged into one scored status with
// recommendations.
//
// Every function here is pure given its inputs and the supplied "now".
// The overall status is derived from the averaged score alone, so it can be
// milder than the worst dimension: three green dimensions and one red one
// average to 83 and report green overall.
package health

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
	"github.com/buildly-release-management/buildly-react-template-sub002/internal/status"
)

// Input is the snapshot evaluated by CalculateProductStatus.
// Nil slices and a nil Budget are valid.
type Input struct {
	Product     model.Product      `json:"product" yaml:"product"`
	Releases    []model.Release    `json:"releases" yaml:"releases"`
	Features    []model.Feature    `json:"features" yaml:"features"`
	Issues      []model.Issue      `json:"issues" yaml:"issues"`
	Budget      *model.Budget      `json:"budget,omitempty" yaml:"budget,omitempty"`
	TeamMembers []model.TeamMember `json:"team_members" yaml:"team_members"`
}

// Details groups the per dimension detail bags.
type Details struct {
	Timeline  TimelineDetails `json:"timeline" yaml:"timeline"`
	Budget    BudgetDetails   `json:"budget" yaml:"budget"`
	Resources ResourceDetails `json:"resources" yaml:"resources"`
	Progress  ProgressDetails `json:"progress" yaml:"progress"`
}

// StatusReport is the merged health report.
type StatusReport struct {
	Overall         status.Status `json:"overall" yaml:"overall"`
	Score           int           `json:"score" yaml:"score"`
	Timeline        status.Status `json:"timeline" yaml:"timeline"`
	Budget          status.Status `json:"budget" yaml:"budget"`
	Resources       status.Status `json:"resources" yaml:"resources"`
	Progress        status.Status `json:"progress" yaml:"progress"`
	Details         Details       `json:"details" yaml:"details"`
	Recommendations []string      `json:"recommendations" yaml:"recommendations"`
}

// CalculateProductStatus runs the four evaluators and merges them into a report.
func CalculateProductStatus(in Input, now time.Time) StatusReport {
	timeline := EvaluateTimeline(in.Product, in.Releases, in.Features, now)
	budget := EvaluateBudget(in.Product, in.Budget, in.Releases)
	resources := EvaluateResources(in.Product, in.TeamMembers, in.Features, in.Issues)
	progress := EvaluateProgress(in.Releases, in.Features, in.Issues)

	sum := status.Score(timeline.Status) + status.Score(budget.Status) +
		status.Score(resources.Status) + status.Score(progress.Status)
	score := int(math.Round(float64(sum) / 4))

	report := StatusReport{
		Overall:   status.FromScore(score),
		Score:     score,
		Timeline:  timeline.Status,
		Budget:    budget.Status,
		Resources: resources.Status,
		Progress:  progress.Status,
		Details: Details{
			Timeline:  timeline.Details,
			Budget:    budget.Details,
			Resources: resources.Details,
			Progress:  progress.Details,
		},
	}
	report.Recommendations = Recommendations(report)
	return report
}

// Calculator evaluates snapshots against an injectable clock.
type Calculator struct {
	clock  status.Clock
	logger *zap.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithClock sets the clock used for "now".
func WithClock(c status.Clock) Option {
	return func(calc *Calculator) {
		if c != nil {
			calc.clock = c
		}
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *zap.Logger) Option {
	return func(calc *Calculator) {
		if l != nil {
			calc.logger = l
		}
	}
}

// NewCalculator returns a Calculator using the system clock and a no-op logger
// unless overridden.
func NewCalculator(opts ...Option) *Calculator {
	c := &Calculator{
		clock:  status.SystemClock{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Now returns the calculator's current time.
func (c *Calculator) Now() time.Time {
	return c.clock.Now()
}

// Calculate evaluates in at the calculator's current time.
func (c *Calculator) Calculate(in Input) StatusReport {
	return c.CalculateAt(in, c.clock.Now())
}

// CalculateAt evaluates in at now.
func (c *Calculator) CalculateAt(in Input, now time.Time) StatusReport {
	report := CalculateProductStatus(in, now)
	c.logger.Debug("product status calculated",
		zap.String("product", in.Product.Name),
		zap.String("overall", report.Overall.String()),
		zap.Int("score", report.Score),
		zap.String("timeline", report.Timeline.String()),
		zap.String("budget", report.Budget.String()),
		zap.String("resources", report.Resources.String()),
		zap.String("progress", report.Progress.String()),
	)
	return report
}
