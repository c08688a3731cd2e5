package timeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildly-release-management/buildly-react-template-sub002/internal/model"
)

var now = model.MustParseDate("2024-07-01").Time

func fixture() ([]model.Release, []model.Feature, []model.Issue) {
	releases := []model.Release{
		{ID: "r1", Name: "1.0", Status: model.ReleaseActive, TargetDate: model.DatePtr("2024-06-01")},
		{ID: "r2", Name: "1.1", Status: model.ReleaseActive, TargetDate: model.DatePtr("2024-06-15")},
		{ID: "r3", Name: "2.0", Status: model.ReleasePlanned, TargetDate: model.DatePtr("2024-09-01")},
		{ID: "r4", Name: "0.9", Status: model.ReleaseCompleted, TargetDate: model.DatePtr("2024-03-01")},
	}
	features := []model.Feature{
		{ID: "f1", Status: "done", ReleaseID: "r1"},
		{ID: "f2", Status: "completed", ReleaseID: "r1"},
		{ID: "f3", Status: "in_progress", ReleaseID: "r2", EndDate: model.DatePtr("2024-07-20")},
		{ID: "f4", Status: "todo", ReleaseID: "r3"},
		{ID: "f5", Status: "todo", ReleaseID: "missing"},
		{ID: "f6", Status: "todo"},
	}
	issues := []model.Issue{
		{ID: "i1", Status: "done", FeatureID: "f1"},
		{ID: "i2", Status: "open", ReleaseID: "r2"},
		{ID: "i3", Status: "open"},
	}
	return releases, features, issues
}

func TestMatchItems(t *testing.T) {
	releases, features, issues := fixture()
	matched, unassigned := MatchItems(releases, features, issues)

	require.Len(t, matched, 4)
	assert.Equal(t, "r1", matched[0].Release.ID)
	assert.Len(t, matched[0].Features, 2)
	require.Len(t, matched[0].Issues, 1, "issue inherits its feature's release")
	assert.Equal(t, "i1", matched[0].Issues[0].ID)

	assert.Len(t, matched[1].Features, 1)
	assert.Len(t, matched[1].Issues, 1)
	assert.Empty(t, matched[3].Features)
	assert.NotNil(t, matched[3].Features)

	assert.Len(t, unassigned.Features, 2)
	require.Len(t, unassigned.Issues, 1)
	assert.Equal(t, "i3", unassigned.Issues[0].ID)
}

func TestReconcile(t *testing.T) {
	releases, features, issues := fixture()
	res := Reconcile(releases, features, issues, now, Options{})

	require.Len(t, res.Releases, 4)

	done := res.Releases[0]
	assert.True(t, done.Late)
	assert.True(t, done.AutoCompleted)
	assert.Equal(t, model.ReleaseCompleted, done.Release.Status)
	assert.Equal(t, 100, done.CompletionRate)
	assert.Nil(t, done.ExtendedEndDate)

	slipping := res.Releases[1]
	assert.True(t, slipping.Late)
	assert.False(t, slipping.AutoCompleted)
	require.NotNil(t, slipping.ExtendedEndDate)
	assert.Equal(t, "2024-07-20", slipping.ExtendedEndDate.String())
	assert.Equal(t, 35, slipping.SlipDays)
	assert.Equal(t, 0, slipping.CompletionRate)
	assert.Equal(t, 1, slipping.OpenFeatureCount)

	future := res.Releases[2]
	assert.False(t, future.Late)
	assert.Nil(t, future.ExtendedEndDate)

	shipped := res.Releases[3]
	assert.False(t, shipped.Late)
	assert.Equal(t, 0, shipped.TotalItems)

	assert.Equal(t, 1, res.AutoCompleted)
	assert.Equal(t, 1, res.Extended)
	assert.Equal(t, model.ReleaseActive, releases[0].Status, "input releases must not be mutated")
}

func TestReconcile_ExtendsPastNowWhenNoLaterDueDate(t *testing.T) {
	releases := []model.Release{{ID: "r1", Status: model.ReleaseActive, TargetDate: model.DatePtr("2024-06-01")}}
	features := []model.Feature{
		{ID: "f1", Status: "todo", ReleaseID: "r1", EndDate: model.DatePtr("2024-06-20")},
	}

	res := Reconcile(releases, features, nil, now.Add(9*time.Hour), Options{ExtensionDays: 7})

	require.NotNil(t, res.Releases[0].ExtendedEndDate)
	assert.Equal(t, "2024-07-08", res.Releases[0].ExtendedEndDate.String())
	assert.Equal(t, 37, res.Releases[0].SlipDays)

	res = Reconcile(releases, features, nil, now, Options{})
	assert.Equal(t, "2024-07-15", res.Releases[0].ExtendedEndDate.String())
}

func TestReconcile_LateReleaseWithoutItemsIsNotAutoCompleted(t *testing.T) {
	releases := []model.Release{{ID: "r1", Status: model.ReleasePlanned, TargetDate: model.DatePtr("2024-06-01")}}

	res := Reconcile(releases, nil, nil, now, Options{})

	assert.False(t, res.Releases[0].AutoCompleted)
	assert.Equal(t, model.ReleasePlanned, res.Releases[0].Release.Status)
	require.NotNil(t, res.Releases[0].ExtendedEndDate)
}

func TestReconcile_DoesNotShareTeamSlices(t *testing.T) {
	releases := []model.Release{{
		ID:       "r1",
		Status:   model.ReleaseActive,
		Team:     []model.TeamSlot{{Role: "QA Engineer", Count: 1, WeeklyRate: 1000}},
		Duration: &model.Duration{Weeks: 6},
	}}

	res := Reconcile(releases, nil, nil, now, Options{})
	res.Releases[0].Release.Team[0].Count = 9
	res.Releases[0].Release.Duration.Weeks = 1

	assert.Equal(t, 1, releases[0].Team[0].Count)
	assert.Equal(t, 6, releases[0].Duration.Weeks)
}
