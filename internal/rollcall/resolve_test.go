package rollcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rollcall-cli/internal/model"
)

func testRoster() model.Roster {
	return model.Roster{
		{Branch: "城东支局", Managers: []string{"张三", "李四"}},
		{Branch: "城西分局", Managers: []string{"王五"}},
	}
}

func TestResolve_ExactBranchExactEntity(t *testing.T) {
	r := NewResolver(testRoster())
	m, ok := r.Resolve("城东支局 张三 锁存1户")
	require.True(t, ok)
	assert.Equal(t, "城东支局", m.Branch)
	assert.Equal(t, "张三", m.Entity)
	assert.NotContains(t, m.Remainder, "城东支局")
}

func TestResolve_AbbreviatedBranch(t *testing.T) {
	r := NewResolver(testRoster())
	m, ok := r.Resolve("城东 李四 复机2户")
	require.True(t, ok)
	assert.Equal(t, "城东支局", m.Branch)
	assert.Equal(t, "李四", m.Entity)
}

func TestResolve_PhoneticEntity(t *testing.T) {
	r := NewResolver(testRoster())
	m, ok := r.Resolve("城东支局 zhang san 办理两户")
	require.True(t, ok)
	assert.Equal(t, "城东支局", m.Branch)
	assert.Equal(t, "张三", m.Entity)
}

func TestResolve_NoBranch(t *testing.T) {
	r := NewResolver(testRoster())
	_, ok := r.Resolve("随便说一句 1户")
	assert.False(t, ok)
}

func TestResolve_BranchWithoutEntity(t *testing.T) {
	r := NewResolver(testRoster())
	m, ok := r.Resolve("城东支局 不认识的人 1户")
	require.True(t, ok)
	assert.Equal(t, "城东支局", m.Branch)
	assert.Empty(t, m.Entity)
}

func TestMatchBranchFuzzy_FullFormStripsShortForm(t *testing.T) {
	remainder, ok := matchBranchFuzzy("城西分局王五拆机挽留1户", "城西分局")
	require.True(t, ok)
	assert.Contains(t, remainder, "分局")
	assert.NotContains(t, remainder, "城西")
}

func TestEntityStages_Independent(t *testing.T) {
	assert.True(t, entityContainment("张三", "今天张三办了", nil))
	assert.False(t, entityContainment("张三", "今天李四办了", nil))

	assert.True(t, entityTokenEquality("张三", "", []string{"李四", "张三"}))
	assert.False(t, entityTokenEquality("张三", "", []string{"张三丰"}))

	assert.True(t, entityPhonetic("张三", "", []string{"zhang san"}))
	assert.False(t, entityPhonetic("张三", "", []string{"moshengren"}))

	// Last-resort stage: both leading characters inside one token.
	assert.True(t, entityCharOverlap("张三", "", []string{"张小三"}))
	assert.False(t, entityCharOverlap("张三", "", []string{"张先生"}))
}

func TestExtractTokens(t *testing.T) {
	tokens := extractTokens(" 张三丰 zhang san 办理2户")
	assert.Contains(t, tokens, "张三丰")
	assert.Contains(t, tokens, "zhang san")
}
