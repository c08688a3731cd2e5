// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Product Labs - Product health, budget and release timeline analysis for Buildly Product Labs.

Copyright (C) 2025  Buildly

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package status holds the tri-state health status and its lookups.
package status

// Status is a tri-state health value.
type Status string

const (
	Green  Status = "green"
	Yellow Status = "yellow"
	Red    Status = "red"
)

// Score table. Unknown statuses score DefaultScore.
const (
	GreenScore   = 100
	YellowScore  = 65
	RedScore     = 30
	DefaultScore = 80
)

// Overall thresholds applied to an averaged score.
const (
	GreenThreshold  = 80
	YellowThreshold = 60
)

// String returns the wire form of the status.
func (s Status) String() string {
	return string(s)
}

// IsValid reports whether s is one of the three known values.
func (s Status) IsValid() bool {
	switch s {
	case Green, Yellow, Red:
		return true
	default:
		return false
	}
}

// Severity orders statuses green < yellow < red. Unknown values rank lowest.
func (s Status) Severity() int {
	switch s {
	case Green:
		return 1
	case Yellow:
		return 2
	case Red:
		return 3
	default:
		return 0
	}
}

// Escalate returns the more severe of current and candidate.
// It never lowers current.
func Escalate(current, candidate Status) Status {
	if candidate.Severity() > current.Severity() {
		return candidate
	}
	return current
}

// Score maps a status to its numeric score.
func Score(s Status) int {
	switch s {
	case Green:
		return GreenScore
	case Yellow:
		return YellowScore
	case Red:
		return RedScore
	default:
		return DefaultScore
	}
}

// FromScore maps an averaged score back to a status.
func FromScore(score int) Status {
	switch {
	case score >= GreenThreshold:
		return Green
	case score >= YellowThreshold:
		return Yellow
	default:
		return Red
	}
}

// Color returns the display color for s.
func Color(s Status) string {
	switch s {
	case Green:
		return "#4caf50"
	case Yellow:
		return "#ff9800"
	case Red:
		return "#f44336"
	default:
		return "#9e9e9e"
	}
}

// Label returns the display label for s.
func Label(s Status) string {
	switch s {
	case Green:
		return "Healthy"
	case Yellow:
		return "At Risk"
	case Red:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Urgency qualifies a timeline status.
type Urgency string

const (
	UrgencyLow      Urgency = "low"
	UrgencyMedium   Urgency = "medium"
	UrgencyHigh     Urgency = "high"
	UrgencyCritical Urgency = "critical"
)
