package status

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEscalate(t *testing.T) {
	all := []Status{Green, Yellow, Red}

	for _, cur := range all {
		for _, cand := range all {
			got := Escalate(cur, cand)
			assert.GreaterOrEqual(t, got.Severity(), cur.Severity(), "Escalate(%s, %s) lowered status", cur, cand)
			assert.GreaterOrEqual(t, got.Severity(), cand.Severity(), "Escalate(%s, %s) below candidate", cur, cand)
			assert.Equal(t, got, Escalate(got, cand), "Escalate must be idempotent")
		}
	}

	assert.Equal(t, Yellow, Escalate(Green, Yellow))
	assert.Equal(t, Red, Escalate(Yellow, Red))
	assert.Equal(t, Red, Escalate(Red, Green))
	assert.Equal(t, Green, Escalate(Green, Status("purple")))
}

func TestScore(t *testing.T) {
	assert.Equal(t, 100, Score(Green))
	assert.Equal(t, 65, Score(Yellow))
	assert.Equal(t, 30, Score(Red))
	assert.Equal(t, 80, Score(Status("")))
}

func TestFromScore(t *testing.T) {
	tests := []struct {
		score int
		want  Status
	}{
		{100, Green},
		{80, Green},
		{79, Yellow},
		{60, Yellow},
		{59, Red},
		{30, Red},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FromScore(tt.score), "score %d", tt.score)
	}
}

func TestColorAndLabel(t *testing.T) {
	tests := []struct {
		in    Status
		color string
		label string
	}{
		{Green, "#4caf50", "Healthy"},
		{Yellow, "#ff9800", "At Risk"},
		{Red, "#f44336", "Critical"},
		{Status("blue"), "#9e9e9e", "Unknown"},
		{Status(""), "#9e9e9e", "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.color, Color(tt.in), "color for %q", tt.in)
		assert.Equal(t, tt.label, Label(tt.in), "label for %q", tt.in)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, Green.IsValid())
	assert.True(t, Red.IsValid())
	assert.False(t, Status("GREEN").IsValid())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)
	var c Clock = FixedClock{At: at}
	assert.Equal(t, at, c.Now())
	assert.Equal(t, at, c.Now())
}
