package rollcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rollcall-cli/internal/model"
)

func testConfiguration() *RunConfiguration {
	return &RunConfiguration{
		Roster:     testRoster(),
		Categories: testCategories(),
		Channels:   testChannels(),
		Thresholds: Thresholds{ManagerPraiseTotal: 3, ChannelPraisePoints: 100},
	}
}

func TestNewEngine_BadPointsPattern(t *testing.T) {
	cfg := testConfiguration()
	cfg.PointsPattern = "("
	_, err := NewEngine(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadPointsPattern)
}

const managerChatText = `【8月25日存量接龙】
1、城东支局 张三 锁存2户
2、城东支局 张三 高危复机1户
3、城西分局 王五 锁存三户
无关内容 1户
`

func TestEngine_ManagerReport(t *testing.T) {
	engine, err := NewEngine(testConfiguration())
	require.NoError(t, err)

	result, err := engine.ManagerReport(managerChatText)
	require.NoError(t, err)

	assert.Equal(t, model.ReportKindManager, result.Kind)
	assert.NotEmpty(t, result.ReportID)
	assert.Equal(t, 4, result.LineCount)

	rows := result.ManagerRows
	require.Len(t, rows, 6)

	zhang := rows[0]
	assert.Equal(t, "张三", zhang.Manager)
	assert.Equal(t, 2, zhang.Counts[model.CategoryLockStorage])
	assert.Equal(t, 1, zhang.Counts[model.CategoryHighRiskRecovery])
	assert.Equal(t, 3, zhang.Total)

	assert.Equal(t, "李四", rows[1].Manager)
	assert.Zero(t, rows[1].Total)

	wang := rows[3]
	assert.Equal(t, "王五", wang.Manager)
	assert.Equal(t, 3, wang.Counts[model.CategoryLockStorage])

	grand := rows[5]
	require.True(t, grand.IsGrandTotal())
	assert.Equal(t, 6, grand.Total)

	assert.Equal(t, []string{"无关内容 1户"}, result.Exceptions)
	assert.Equal(t, []string{"张三", "王五"}, result.Praised)
	assert.Equal(t, []string{"李四"}, result.Reminded)
}

func TestEngine_ManagerReport_EveryLineCountedOnce(t *testing.T) {
	engine, err := NewEngine(testConfiguration())
	require.NoError(t, err)

	result, err := engine.ManagerReport(managerChatText)
	require.NoError(t, err)

	// Each surviving line lands in exactly one counter or the exception
	// list; no line is double-counted or silently dropped.
	const processed = 3
	assert.Equal(t, result.LineCount, processed+len(result.Exceptions))
}

func TestEngine_ManagerReport_Idempotent(t *testing.T) {
	engine, err := NewEngine(testConfiguration())
	require.NoError(t, err)

	first, err := engine.ManagerReport(managerChatText)
	require.NoError(t, err)
	second, err := engine.ManagerReport(managerChatText)
	require.NoError(t, err)

	assert.Equal(t, first.ManagerRows, second.ManagerRows)
	assert.Equal(t, first.Exceptions, second.Exceptions)
	assert.Equal(t, first.Praised, second.Praised)
	assert.Equal(t, first.Reminded, second.Reminded)
}

const channelChatText = `渠道接龙群
1、东街厅 办理 积分30
2、城西分局 西关厅 2顺档5+10元
3、新华书店 得30分
4、不认识的店 5分
`

func TestEngine_ChannelReport(t *testing.T) {
	engine, err := NewEngine(testConfiguration())
	require.NoError(t, err)

	result, err := engine.ChannelReport(channelChatText)
	require.NoError(t, err)

	assert.Equal(t, model.ReportKindChannel, result.Kind)
	assert.Equal(t, 4, result.LineCount)

	rows := result.ChannelRows
	require.Len(t, rows, 7)

	assert.Equal(t, "东街营业厅", rows[0].Channel)
	assert.Equal(t, 1, rows[0].Transactions)
	assert.Equal(t, 30, rows[0].Points)

	assert.Equal(t, "新华书店代办点", rows[1].Channel)
	assert.Equal(t, 30, rows[1].Points)

	assert.Equal(t, "西关营业厅", rows[3].Channel)
	assert.Equal(t, 13, rows[3].Points) // 2顺档5+10 → 5-2+10

	grand := rows[6]
	require.True(t, grand.IsGrandTotal())
	assert.Equal(t, 3, grand.Transactions)
	assert.Equal(t, 73, grand.Points)

	assert.Equal(t, []string{"4、不认识的店 5分"}, result.Exceptions)
	assert.Empty(t, result.Praised)
	assert.Equal(t, []string{"西门代办点"}, result.Reminded)
}

func TestEngine_ChannelReport_CustomPointsPattern(t *testing.T) {
	cfg := testConfiguration()
	cfg.PointsPattern = `办理(\d+)笔`
	engine, err := NewEngine(cfg)
	require.NoError(t, err)

	result, err := engine.ChannelReport("东街厅 办理5笔 得30分\n")
	require.NoError(t, err)

	rows := result.ChannelRows
	require.NotEmpty(t, rows)
	assert.Equal(t, "东街营业厅", rows[0].Channel)
	assert.Equal(t, 5, rows[0].Points)
}
