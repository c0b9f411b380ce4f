package model

import "time"

// Row labels for aggregate rows. These appear verbatim in the report output.
const (
	SubtotalLabel   = "小计"
	GrandTotalLabel = "总计"
)

// ManagerRow is one report row of the manager pipeline: either a
// per-manager data row, a branch subtotal (Manager == SubtotalLabel), or
// the grand total (Branch == GrandTotalLabel).
type ManagerRow struct {
	Branch  string             `json:"branch"`
	Manager string             `json:"manager"`
	Photo   string             `json:"photo"`
	Counts  map[CategoryID]int `json:"counts"`
	Total   int                `json:"total"`
}

// NewManagerRow returns a zeroed data row for the given manager.
func NewManagerRow(branch, manager string) *ManagerRow {
	counts := make(map[CategoryID]int, len(AllCategories()))
	for _, id := range AllCategories() {
		counts[id] = 0
	}
	return &ManagerRow{Branch: branch, Manager: manager, Counts: counts}
}

// Add increments one category counter and recomputes the row total.
func (r *ManagerRow) Add(id CategoryID, qty int) {
	r.Counts[id] += qty
	total := 0
	for _, n := range r.Counts {
		total += n
	}
	r.Total = total
}

// IsSubtotal reports whether the row is a branch subtotal row.
func (r *ManagerRow) IsSubtotal() bool { return r.Manager == SubtotalLabel }

// IsGrandTotal reports whether the row is the grand total row.
func (r *ManagerRow) IsGrandTotal() bool { return r.Branch == GrandTotalLabel }

// ChannelRow is one report row of the channel pipeline.
type ChannelRow struct {
	Branch       string `json:"branch"`
	Channel      string `json:"channel"`
	Transactions int    `json:"transactions"`
	Points       int    `json:"points"`
}

// IsSubtotal reports whether the row is a branch subtotal row.
func (r *ChannelRow) IsSubtotal() bool { return r.Channel == SubtotalLabel }

// IsGrandTotal reports whether the row is the grand total row.
func (r *ChannelRow) IsGrandTotal() bool { return r.Branch == GrandTotalLabel }

// ReportKind distinguishes the two report pipelines.
type ReportKind string

const (
	ReportKindManager ReportKind = "manager"
	ReportKindChannel ReportKind = "channel"
)

// RunResult is the outcome of one report run: the ordered report rows,
// the exception lines that could not be fully resolved, and the
// praise/reminder commentary derived from the totals.
type RunResult struct {
	ReportID    string       `json:"report_id"`
	Kind        ReportKind   `json:"kind"`
	GeneratedAt time.Time    `json:"generated_at"`
	File        string       `json:"file,omitempty"`
	ManagerRows []ManagerRow `json:"manager_rows,omitempty"`
	ChannelRows []ChannelRow `json:"channel_rows,omitempty"`
	Exceptions  []string     `json:"exceptions"`
	LineCount   int          `json:"line_count"`
	Praised     []string     `json:"praised,omitempty"`
	Reminded    []string     `json:"reminded,omitempty"`
}

// RunStatus is the lifecycle state of a persisted report run.
type RunStatus string

const (
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is one persisted report run record.
type Run struct {
	ID        string     `json:"id"`
	Kind      ReportKind `json:"kind"`
	Status    RunStatus  `json:"status"`
	Error     string     `json:"error,omitempty"`
	Result    *RunResult `json:"result,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
