package rollcall

import (
	"strings"

	"github.com/sells-group/rollcall-cli/internal/model"
)

// Classify determines which business category the line belongs to. Rules
// are iterated in their declared priority order; a rule whose exclusion
// keywords hit is skipped outright, otherwise the first inclusion keyword
// hit selects the category.
func Classify(line string, rules []model.CategoryRule) (model.CategoryID, bool) {
	for _, rule := range rules {
		if containsAny(line, rule.ExcludeKeywords) {
			continue
		}
		if containsAny(line, rule.Keywords) {
			return rule.ID, true
		}
	}
	return "", false
}

func containsAny(line string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(line, kw) {
			return true
		}
	}
	return false
}
