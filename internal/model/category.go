package model

// CategoryID identifies one configured business category.
type CategoryID string

const (
	CategoryLockStorage          CategoryID = "lock_storage"
	CategoryCurrentMonthRecovery CategoryID = "current_month_recovery"
	CategoryLastMonthRecovery    CategoryID = "last_month_recovery"
	CategoryHighRiskRecovery     CategoryID = "high_risk_recovery"
	CategoryDismantleRetention   CategoryID = "dismantle_retention"
	CategoryDowngradeRetention   CategoryID = "downgrade_retention"
)

// AllCategories returns every category in its declared classification
// priority order. Classification iterates this order and the first
// non-excluded keyword match wins.
func AllCategories() []CategoryID {
	return []CategoryID{
		CategoryLockStorage,
		CategoryCurrentMonthRecovery,
		CategoryLastMonthRecovery,
		CategoryHighRiskRecovery,
		CategoryDismantleRetention,
		CategoryDowngradeRetention,
	}
}

// categoryColumns maps category ids to their report column headers.
var categoryColumns = map[CategoryID]string{
	CategoryLockStorage:          "锁存",
	CategoryCurrentMonthRecovery: "当月复机",
	CategoryLastMonthRecovery:    "上月复机",
	CategoryHighRiskRecovery:     "高危复机",
	CategoryDismantleRetention:   "拆机挽留",
	CategoryDowngradeRetention:   "降档挽留",
}

// Column returns the report column header for the category.
func (c CategoryID) Column() string {
	return categoryColumns[c]
}

// CategoryRule is one configured business category: inclusion keywords,
// exclusion keywords, and whether the quantity is parsed from the line or
// defaults to one unit per mention. Exclusion keywords always take
// precedence over inclusion keywords.
type CategoryRule struct {
	ID              CategoryID `json:"id"`
	Keywords        []string   `json:"keywords"`
	ExcludeKeywords []string   `json:"exclude_keywords"`
	CountFromText   bool       `json:"count_from_text"`
}
