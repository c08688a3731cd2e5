// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package model defines the product snapshots evaluated by the health engine.
//
// All values are plain input snapshots fetched from the backend by the caller.
// Nothing in this package is persisted or mutated by the engine.
package model

// Product is the product being evaluated.
type Product struct {
	ID   string      `json:"product_uuid,omitempty" yaml:"product_uuid,omitempty"`
	Name string      `json:"name" yaml:"name"`
	Info ProductInfo `json:"product_info" yaml:"product_info"`
}

// ProductInfo carries the optional product schedule.
type ProductInfo struct {
	StartDate *Date `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate   *Date `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

// Release statuses with special meaning to the engine. The set is open.
const (
	ReleaseCompleted  = "completed"
	ReleaseReleased   = "released"
	ReleaseActive     = "active"
	ReleaseInProgress = "in_progress"
	ReleasePlanned    = "planned"
)

// Release is a planned or shipped product release.
type Release struct {
	ID         string     `json:"release_uuid,omitempty" yaml:"release_uuid,omitempty"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Status     string     `json:"status" yaml:"status"`
	TargetDate *Date      `json:"target_date,omitempty" yaml:"target_date,omitempty"`
	StartDate  *Date      `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate    *Date      `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	Team       []TeamSlot `json:"team,omitempty" yaml:"team,omitempty"`
	Duration   *Duration  `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// TeamSlot is one role line of a release team roster.
type TeamSlot struct {
	Role       string  `json:"role" yaml:"role"`
	Count      int     `json:"count" yaml:"count"`
	WeeklyRate float64 `json:"weeklyRate" yaml:"weeklyRate"`
}

// WeeklyCost is Count × WeeklyRate.
func (s TeamSlot) WeeklyCost() float64 {
	return float64(s.Count) * s.WeeklyRate
}

// Duration is the planned length of a release.
type Duration struct {
	Weeks int `json:"weeks" yaml:"weeks"`
}

// Work item statuses shared by features and issues.
const (
	StatusCompleted  = "completed"
	StatusDone       = "done"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
	StatusInProgress = "in_progress"
	StatusDoing      = "doing"
	StatusBlocked    = "blocked"
)

// Feature is a unit of product work. Status is free-form.
type Feature struct {
	ID        string `json:"feature_uuid,omitempty" yaml:"feature_uuid,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Status    string `json:"status" yaml:"status"`
	EndDate   *Date  `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	ReleaseID string `json:"release_uuid,omitempty" yaml:"release_uuid,omitempty"`
}

// Issue is a defect or task, optionally linked to a feature and a release.
type Issue struct {
	ID        string `json:"issue_uuid,omitempty" yaml:"issue_uuid,omitempty"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Status    string `json:"status" yaml:"status"`
	ReleaseID string `json:"release_uuid,omitempty" yaml:"release_uuid,omitempty"`
	FeatureID string `json:"feature_uuid,omitempty" yaml:"feature_uuid,omitempty"`
}

// Budget is the product budget. A nil *Budget means no budget was set.
type Budget struct {
	TotalBudget float64 `json:"total_budget" yaml:"total_budget"`
	SpentBudget float64 `json:"spent_budget" yaml:"spent_budget"`
}

// TeamMember is a person on the product team.
type TeamMember struct {
	Name     string `json:"name" yaml:"name"`
	Role     string `json:"role" yaml:"role"`
	IsActive bool   `json:"is_active" yaml:"is_active"`
}

// IsFinished reports whether a work item status counts as finished for
// workload purposes.
func IsFinished(status string) bool {
	return status == StatusCompleted || status == StatusDone
}
