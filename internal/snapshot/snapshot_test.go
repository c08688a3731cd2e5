package snapshot

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlSnapshot = `
now: 2024-07-01
product:
  product_uuid: p-1
  name: Labs
  product_info:
    start_date: 2024-01-01
    end_date: 2024-06-30
releases:
  - release_uuid: r-1
    status: active
    target_date: 2024-06-01
    duration:
      weeks: 6
    team:
      - role: Backend Developer
        count: 2
        weeklyRate: 2000
features:
  - feature_uuid: f-1
    status: in_progress
    release_uuid: r-1
    end_date: 2024-06-20
issues:
  - issue_uuid: i-1
    status: done
budget:
  total_budget: 1000
  spent_budget: 1300
team_members:
  - name: Ana
    role: Frontend Developer
    is_active: true
`

const jsonSnapshot = `{
  "product": {"name": "Labs", "product_info": {"start_date": "2024-01-01"}},
  "team_members": [{"name": "Bo", "role": "QA Engineer", "is_active": false}]
}`

func TestDecode_YAML(t *testing.T) {
	snap, err := Decode([]byte(yamlSnapshot), FormatYAML)
	require.NoError(t, err)

	require.NotNil(t, snap.Now)
	assert.Equal(t, "2024-07-01", snap.Now.String())
	assert.Equal(t, "Labs", snap.Product.Name)
	require.NotNil(t, snap.Product.Info.EndDate)
	assert.Equal(t, "2024-06-30", snap.Product.Info.EndDate.String())

	require.Len(t, snap.Releases, 1)
	assert.Equal(t, 6, snap.Releases[0].Duration.Weeks)
	assert.Equal(t, 2000.0, snap.Releases[0].Team[0].WeeklyRate)
	require.Len(t, snap.Features, 1)
	assert.Equal(t, "r-1", snap.Features[0].ReleaseID)
	require.NotNil(t, snap.Budget)
	assert.Equal(t, 1300.0, snap.Budget.SpentBudget)
	require.Len(t, snap.TeamMembers, 1)
	assert.True(t, snap.TeamMembers[0].IsActive)
}

func TestDecode_JSON(t *testing.T) {
	snap, err := Decode([]byte(jsonSnapshot), FormatJSON)
	require.NoError(t, err)

	assert.Nil(t, snap.Now)
	assert.Nil(t, snap.Budget)
	assert.Nil(t, snap.Product.Info.EndDate)
	require.Len(t, snap.TeamMembers, 1)
	assert.False(t, snap.TeamMembers[0].IsActive)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte("  \n"), FormatYAML)
	assert.ErrorIs(t, err, ErrEmptySnapshot)

	_, err = Decode([]byte("{not json"), FormatJSON)
	assert.Error(t, err)

	_, err = Decode([]byte("product: [unterminated"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode([]byte("now: someday\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Decode([]byte("a: b"), Format("toml"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "snap.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlSnapshot), 0o600))
	snap, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "Labs", snap.Product.Name)

	jsonPath := filepath.Join(dir, "snap.JSON")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonSnapshot), 0o600))
	snap, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "Labs", snap.Product.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
