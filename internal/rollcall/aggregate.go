package rollcall

import (
	"sort"

	"github.com/sells-group/rollcall-cli/internal/model"
)

type rowKey struct {
	branch  string
	manager string
}

// ManagerAggregator accumulates per-manager counters across a run. Rows
// are pre-seeded from the roster so every configured manager appears in
// the report even with zero activity.
type ManagerAggregator struct {
	rows       map[rowKey]*model.ManagerRow
	exceptions []string
	rejected   map[string]bool
}

// NewManagerAggregator seeds one zeroed row per configured (branch,
// manager) pair.
func NewManagerAggregator(roster model.Roster) *ManagerAggregator {
	agg := &ManagerAggregator{
		rows:     make(map[rowKey]*model.ManagerRow),
		rejected: make(map[string]bool),
	}
	for _, br := range roster {
		for _, manager := range br.Managers {
			agg.rows[rowKey{br.Branch, manager}] = model.NewManagerRow(br.Branch, manager)
		}
	}
	return agg
}

// Add increments the category counter for a seeded (branch, manager) row.
// Pairs outside the roster are ignored; the resolver only yields roster
// entries.
func (a *ManagerAggregator) Add(branch, manager string, id model.CategoryID, qty int) {
	if row, ok := a.rows[rowKey{branch, manager}]; ok {
		row.Add(id, qty)
	}
}

// Reject records a line that failed resolution, classification, or
// extraction. A line already rejected is not recorded twice.
func (a *ManagerAggregator) Reject(line string) {
	if a.rejected[line] {
		return
	}
	a.rejected[line] = true
	a.exceptions = append(a.exceptions, line)
}

// Exceptions returns the rejected lines in first-seen order.
func (a *ManagerAggregator) Exceptions() []string {
	return a.exceptions
}

// Report emits the ordered report rows: manager rows sorted by name
// within each branch, one subtotal row per branch, branches sorted by
// name, and a trailing grand total row.
func (a *ManagerAggregator) Report() []model.ManagerRow {
	byBranch := make(map[string][]*model.ManagerRow)
	for key, row := range a.rows {
		byBranch[key.branch] = append(byBranch[key.branch], row)
	}

	branches := make([]string, 0, len(byBranch))
	for branch := range byBranch {
		branches = append(branches, branch)
	}
	sort.Strings(branches)

	grand := model.NewManagerRow(model.GrandTotalLabel, "")
	var report []model.ManagerRow
	for _, branch := range branches {
		rows := byBranch[branch]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Manager < rows[j].Manager })

		subtotal := model.NewManagerRow(branch, model.SubtotalLabel)
		for _, row := range rows {
			report = append(report, *row)
			for id, n := range row.Counts {
				if n != 0 {
					subtotal.Add(id, n)
					grand.Add(id, n)
				}
			}
		}
		report = append(report, *subtotal)
	}
	return append(report, *grand)
}
