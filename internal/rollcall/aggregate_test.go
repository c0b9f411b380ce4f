package rollcall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/rollcall-cli/internal/model"
)

func TestManagerAggregator_SeedsEveryRosterEntry(t *testing.T) {
	agg := NewManagerAggregator(testRoster())
	rows := agg.Report()

	// 3 managers, 2 subtotals, 1 grand total.
	require.Len(t, rows, 6)
	for _, row := range rows {
		assert.Zero(t, row.Total, row.Manager)
	}
	assert.Equal(t, "张三", rows[0].Manager)
	assert.Equal(t, "李四", rows[1].Manager)
	assert.True(t, rows[2].IsSubtotal())
	assert.Equal(t, "王五", rows[3].Manager)
	assert.True(t, rows[4].IsSubtotal())
	assert.True(t, rows[5].IsGrandTotal())
}

func TestManagerAggregator_SubtotalsAndGrandTotal(t *testing.T) {
	agg := NewManagerAggregator(testRoster())
	agg.Add("城东支局", "张三", model.CategoryLockStorage, 2)
	agg.Add("城东支局", "李四", model.CategoryCurrentMonthRecovery, 1)
	agg.Add("城西分局", "王五", model.CategoryLockStorage, 3)

	rows := agg.Report()
	require.Len(t, rows, 6)

	assert.Equal(t, 2, rows[0].Total)
	assert.Equal(t, 1, rows[1].Total)

	subtotal := rows[2]
	require.True(t, subtotal.IsSubtotal())
	assert.Equal(t, "城东支局", subtotal.Branch)
	assert.Equal(t, 3, subtotal.Total)
	assert.Equal(t, 2, subtotal.Counts[model.CategoryLockStorage])

	grand := rows[5]
	require.True(t, grand.IsGrandTotal())
	assert.Equal(t, 6, grand.Total)
	assert.Equal(t, 5, grand.Counts[model.CategoryLockStorage])
}

func TestManagerAggregator_IgnoresUnseededPairs(t *testing.T) {
	agg := NewManagerAggregator(testRoster())
	agg.Add("无名支局", "某人", model.CategoryLockStorage, 9)

	rows := agg.Report()
	assert.Zero(t, rows[len(rows)-1].Total)
}

func TestManagerAggregator_ExceptionsDeduplicated(t *testing.T) {
	agg := NewManagerAggregator(testRoster())
	agg.Reject("看不懂的一行 1户")
	agg.Reject("看不懂的一行 1户")
	agg.Reject("另一行 2户")

	assert.Equal(t, []string{"看不懂的一行 1户", "另一行 2户"}, agg.Exceptions())
}
