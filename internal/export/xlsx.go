package export

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/rollcall-cli/internal/model"
)

// ReportFileName builds the dated workbook name, e.g.
// 存量经理接龙数据通报_0825_0930.xlsx.
func ReportFileName(prefix string, t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", prefix, t.Format("0102_1504"))
}

// Workbook writes one report run to an xlsx file: the main report sheet,
// the branch ranking, the per-entity ranking, and the exception sheet.
type Workbook struct {
	Title           string // report title prefix, e.g. 存量经理接龙数据通报
	PraiseThreshold int    // total (manager) or points (channel) earning praise
}

// Write saves the workbook for the run result at the given path.
func (w Workbook) Write(path string, result *model.RunResult) error {
	file := xlsx.NewFile()

	var err error
	switch result.Kind {
	case model.ReportKindManager:
		err = w.addManagerSheets(file, result)
	case model.ReportKindChannel:
		err = w.addChannelSheets(file, result)
	default:
		return eris.Errorf("export: unknown report kind %q", result.Kind)
	}
	if err != nil {
		return err
	}

	if err := w.addExceptionSheet(file, result); err != nil {
		return err
	}
	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}

func (w Workbook) titleLine(generatedAt time.Time) string {
	return fmt.Sprintf("%s_%s", w.Title, generatedAt.Format("0102_15:04"))
}

func (w Workbook) addManagerSheets(file *xlsx.File, result *model.RunResult) error {
	sheet, err := file.AddSheet("通报")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	addTextRow(sheet, w.titleLine(result.GeneratedAt))
	header := []string{"分支局", "存量经理", "晒照"}
	for _, id := range model.AllCategories() {
		header = append(header, id.Column())
	}
	header = append(header, "合计")
	addTextRow(sheet, header...)

	for _, row := range result.ManagerRows {
		r := sheet.AddRow()
		r.AddCell().Value = row.Branch
		r.AddCell().Value = row.Manager
		r.AddCell().Value = row.Photo
		for _, id := range model.AllCategories() {
			r.AddCell().SetInt(row.Counts[id])
		}
		r.AddCell().SetInt(row.Total)
	}

	w.addCommentary(sheet, result,
		fmt.Sprintf("截止目前，业务量达%d笔及以上的存量经理有%d人：%s，特此表扬！",
			w.PraiseThreshold, len(result.Praised), strings.Join(result.Praised, ", ")),
		fmt.Sprintf("截止目前，业务量未破0的存量经理有%d人：%s，请加油哦！",
			len(result.Reminded), strings.Join(result.Reminded, ", ")))

	if err := w.addBranchRanking(file, result.GeneratedAt, managerBranchTotals(result), false); err != nil {
		return err
	}
	return w.addManagerRanking(file, result)
}

func (w Workbook) addChannelSheets(file *xlsx.File, result *model.RunResult) error {
	sheet, err := file.AddSheet("通报")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	addTextRow(sheet, w.titleLine(result.GeneratedAt))
	addTextRow(sheet, "分支局", "渠道名称", "业务笔数", "积分")

	for _, row := range result.ChannelRows {
		r := sheet.AddRow()
		r.AddCell().Value = row.Branch
		r.AddCell().Value = row.Channel
		r.AddCell().SetInt(row.Transactions)
		r.AddCell().SetInt(row.Points)
	}

	w.addCommentary(sheet, result,
		fmt.Sprintf("截止目前，业务积分达%d及以上的渠道厅店有%d家：%s，特此表扬！",
			w.PraiseThreshold, len(result.Praised), strings.Join(result.Praised, ", ")),
		fmt.Sprintf("截止目前，业务积分未破0的渠道厅店有%d家：%s，请加油哦！",
			len(result.Reminded), strings.Join(result.Reminded, ", ")))

	if err := w.addBranchRanking(file, result.GeneratedAt, channelBranchTotals(result), true); err != nil {
		return err
	}
	return w.addChannelRanking(file, result)
}

func (w Workbook) addCommentary(sheet *xlsx.Sheet, result *model.RunResult, praise, remind string) {
	if len(result.Praised) == 0 && len(result.Reminded) == 0 {
		return
	}
	sheet.AddRow()
	if len(result.Praised) > 0 {
		addTextRow(sheet, praise)
	}
	if len(result.Reminded) > 0 {
		addTextRow(sheet, remind)
	}
}

type rankedEntry struct {
	name   string
	total  int
	points int
}

func managerBranchTotals(result *model.RunResult) []rankedEntry {
	var entries []rankedEntry
	for i := range result.ManagerRows {
		row := &result.ManagerRows[i]
		if row.IsSubtotal() && !row.IsGrandTotal() {
			entries = append(entries, rankedEntry{name: row.Branch, total: row.Total})
		}
	}
	return entries
}

func channelBranchTotals(result *model.RunResult) []rankedEntry {
	var entries []rankedEntry
	for i := range result.ChannelRows {
		row := &result.ChannelRows[i]
		if row.IsSubtotal() && !row.IsGrandTotal() {
			entries = append(entries, rankedEntry{name: row.Branch, total: row.Transactions, points: row.Points})
		}
	}
	return entries
}

// addBranchRanking writes the 分支局统计 sheet: branches ranked by volume
// (manager pipeline) or points (channel pipeline), descending.
func (w Workbook) addBranchRanking(file *xlsx.File, generatedAt time.Time, entries []rankedEntry, withPoints bool) error {
	sheet, err := file.AddSheet("分支局统计")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	addTextRow(sheet, fmt.Sprintf("分支局业务量统计_%s", generatedAt.Format("0102_15:04")))
	if withPoints {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].points > entries[j].points })
		addTextRow(sheet, "排名", "分支局", "业务量(合计)", "积分(合计)")
	} else {
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].total > entries[j].total })
		addTextRow(sheet, "排名", "分支局", "业务量(合计)")
	}

	sumTotal, sumPoints := 0, 0
	for i, e := range entries {
		r := sheet.AddRow()
		r.AddCell().SetInt(i + 1)
		r.AddCell().Value = e.name
		r.AddCell().SetInt(e.total)
		if withPoints {
			r.AddCell().SetInt(e.points)
		}
		sumTotal += e.total
		sumPoints += e.points
	}

	r := sheet.AddRow()
	r.AddCell().Value = "汇总"
	r.AddCell().Value = ""
	r.AddCell().SetInt(sumTotal)
	if withPoints {
		r.AddCell().SetInt(sumPoints)
	}
	return nil
}

// addManagerRanking writes the 分析 sheet: managers ranked by total,
// descending.
func (w Workbook) addManagerRanking(file *xlsx.File, result *model.RunResult) error {
	sheet, err := file.AddSheet("分析")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	var entries []rankedEntry
	for i := range result.ManagerRows {
		row := &result.ManagerRows[i]
		if row.IsSubtotal() || row.IsGrandTotal() {
			continue
		}
		entries = append(entries, rankedEntry{name: row.Manager, total: row.Total})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].total > entries[j].total })

	addTextRow(sheet, fmt.Sprintf("存量经理业务量排名分析_%s", result.GeneratedAt.Format("0102_15:04")))
	addTextRow(sheet, "排名", "存量经理", "业务量(合计)")
	sum := 0
	for i, e := range entries {
		r := sheet.AddRow()
		r.AddCell().SetInt(i + 1)
		r.AddCell().Value = e.name
		r.AddCell().SetInt(e.total)
		sum += e.total
	}

	r := sheet.AddRow()
	r.AddCell().Value = "汇总"
	r.AddCell().Value = ""
	r.AddCell().SetInt(sum)
	return nil
}

// addChannelRanking writes the 分析 sheet: channels ranked by points,
// descending.
func (w Workbook) addChannelRanking(file *xlsx.File, result *model.RunResult) error {
	sheet, err := file.AddSheet("分析")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	var entries []rankedEntry
	for i := range result.ChannelRows {
		row := &result.ChannelRows[i]
		if row.IsSubtotal() || row.IsGrandTotal() {
			continue
		}
		entries = append(entries, rankedEntry{name: row.Channel, total: row.Transactions, points: row.Points})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].points > entries[j].points })

	addTextRow(sheet, fmt.Sprintf("渠道厅店积分排名分析_%s", result.GeneratedAt.Format("0102_15:04")))
	addTextRow(sheet, "排名", "渠道名称", "业务笔数", "积分")
	sumTx, sumPoints := 0, 0
	for i, e := range entries {
		r := sheet.AddRow()
		r.AddCell().SetInt(i + 1)
		r.AddCell().Value = e.name
		r.AddCell().SetInt(e.total)
		r.AddCell().SetInt(e.points)
		sumTx += e.total
		sumPoints += e.points
	}

	r := sheet.AddRow()
	r.AddCell().Value = "汇总"
	r.AddCell().Value = ""
	r.AddCell().SetInt(sumTx)
	r.AddCell().SetInt(sumPoints)
	return nil
}

// addExceptionSheet writes the 异常记录 sheet: run totals followed by the
// lines routed to the exception list for human review.
func (w Workbook) addExceptionSheet(file *xlsx.File, result *model.RunResult) error {
	sheet, err := file.AddSheet("异常记录")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	addTextRow(sheet, "统计项", "数值")
	counts := []struct {
		label string
		n     int
	}{
		{"总条目数", result.LineCount},
		{"成功处理条目数", result.LineCount - len(result.Exceptions)},
		{"异常条目数", len(result.Exceptions)},
	}
	for _, c := range counts {
		r := sheet.AddRow()
		r.AddCell().Value = c.label
		r.AddCell().SetInt(c.n)
	}

	sheet.AddRow()
	addTextRow(sheet, "异常条目")
	for _, line := range result.Exceptions {
		addTextRow(sheet, line)
	}
	return nil
}

func addTextRow(sheet *xlsx.Sheet, values ...string) {
	row := sheet.AddRow()
	for _, v := range values {
		row.AddCell().Value = v
	}
}
