package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rollcall-cli/internal/model"
)

const rosterJSON = `{
  "business_categories": {
    "branch_managers": {
      "branch_manager_map": {
        "城西分局": ["王五"],
        "城东支局": ["张三", "李四"]
      }
    }
  }
}`

const categoriesJSON = `{
  "business_categories": {
    "lock_storage": {"keywords": ["锁存"]},
    "current_month_recovery": {"keywords": ["复机"], "exclude_keywords": ["高危", "上月"]},
    "high_risk_recovery": {"keywords": ["高危复机"]}
  }
}`

const channelsJSON = `{
  "branch_channel_map": {
    "城东支局": [
      {"name": "东街营业厅", "keywords": ["东街营业厅", "东街厅"]}
    ]
  },
  "points_regex": ["积分\\s*(\\d+)", "得(\\d+)分"]
}`

func writeConfigs(t *testing.T) Paths {
	t.Helper()
	dir := t.TempDir()
	paths := Paths{
		Roster:     filepath.Join(dir, "managers.json"),
		Categories: filepath.Join(dir, "categories.json"),
		Channels:   filepath.Join(dir, "channels.json"),
	}
	require.NoError(t, os.WriteFile(paths.Roster, []byte(rosterJSON), 0o644))
	require.NoError(t, os.WriteFile(paths.Categories, []byte(categoriesJSON), 0o644))
	require.NoError(t, os.WriteFile(paths.Channels, []byte(channelsJSON), 0o644))
	return paths
}

func TestLoad_PreservesDeclaredOrder(t *testing.T) {
	cfg, err := Load(writeConfigs(t))
	require.NoError(t, err)

	// File declares 城西分局 before 城东支局; resolution priority follows.
	assert.Equal(t, []string{"城西分局", "城东支局"}, cfg.Roster.Branches())
	assert.Equal(t, []string{"张三", "李四"}, cfg.Roster.Managers("城东支局"))
}

func TestLoad_CategoriesInPriorityOrder(t *testing.T) {
	cfg, err := Load(writeConfigs(t))
	require.NoError(t, err)

	require.Len(t, cfg.Categories, 3)
	assert.Equal(t, model.CategoryLockStorage, cfg.Categories[0].ID)
	assert.Equal(t, model.CategoryCurrentMonthRecovery, cfg.Categories[1].ID)
	assert.Equal(t, model.CategoryHighRiskRecovery, cfg.Categories[2].ID)

	assert.Equal(t, []string{"高危", "上月"}, cfg.Categories[1].ExcludeKeywords)
	assert.True(t, cfg.Categories[1].CountFromText)
	assert.False(t, cfg.Categories[0].CountFromText)
}

func TestLoad_PointsPatternListJoined(t *testing.T) {
	cfg, err := Load(writeConfigs(t))
	require.NoError(t, err)
	assert.Equal(t, `积分\s*(\d+)|得(\d+)分`, cfg.PointsPattern)

	require.Len(t, cfg.Channels, 1)
	assert.Equal(t, "城东支局", cfg.Channels[0].Branch)
	require.Len(t, cfg.Channels[0].Channels, 1)
	assert.Equal(t, "东街营业厅", cfg.Channels[0].Channels[0].Name)
	assert.Equal(t, []string{"东街营业厅", "东街厅"}, cfg.Channels[0].Channels[0].Keywords)
}

func TestLoad_YAMLChannelFile(t *testing.T) {
	paths := writeConfigs(t)
	channelsYAML := "branch_channel_map:\n" +
		"  城东支局:\n" +
		"    - name: 东街营业厅\n" +
		"      keywords: [东街厅]\n" +
		"points_regex: 积分\\s*(\\d+)\n"
	require.NoError(t, os.WriteFile(paths.Channels, []byte(channelsYAML), 0o644))

	cfg, err := Load(paths)
	require.NoError(t, err)
	assert.Equal(t, `积分\s*(\d+)`, cfg.PointsPattern)
	assert.Equal(t, "东街营业厅", cfg.Channels[0].Channels[0].Name)
}

func TestLoad_MissingFile(t *testing.T) {
	paths := writeConfigs(t)
	paths.Roster = filepath.Join(t.TempDir(), "absent.json")

	_, err := Load(paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestLoad_EmptyRoster(t *testing.T) {
	paths := writeConfigs(t)
	require.NoError(t, os.WriteFile(paths.Roster, []byte(`{"business_categories": {}}`), 0o644))

	_, err := Load(paths)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConfigMissing)
}
