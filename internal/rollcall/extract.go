package rollcall

import (
	"regexp"
	"strconv"
	"strings"
)

// chineseNumerals maps everyday and formal/financial numerals to values.
var chineseNumerals = map[string]int{
	"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
	"六": 6, "七": 7, "八": 8, "九": 9, "十": 10, "两": 2,
	"壹": 1, "贰": 2, "叁": 3, "肆": 4, "伍": 5,
	"陆": 6, "柒": 7, "捌": 8, "玖": 9, "拾": 10,
}

// countRe matches "<digits or numeral> 户", the unit-count marker.
var countRe = regexp.MustCompile(`(\d+|[一二三四五六七八九十两壹贰叁肆伍陆柒捌玖拾])\s*户`)

// ExtractCount parses the unit count from a line. A bare mention with no
// recognizable count marker implies one unit.
func ExtractCount(line string) int {
	compact := strings.ReplaceAll(line, " ", "")
	m := countRe.FindStringSubmatch(compact)
	if m == nil {
		return 1
	}
	if n, err := strconv.Atoi(m[1]); err == nil {
		return n
	}
	if n, ok := chineseNumerals[m[1]]; ok {
		return n
	}
	return 1
}

var (
	// tierShiftFullRe: "A顺档B+C元", slid from tier A to tier B with net
	// change C; value is B-A+C.
	tierShiftFullRe = regexp.MustCompile(`(\d+)顺档(\d+)\+(\d+)`)
	tierShiftBareRe = regexp.MustCompile(`顺档\d*\+(\d+)`)
	tierShiftFromRe = regexp.MustCompile(`(\d+)顺档\+(\d+)`)

	genericPointsRe = regexp.MustCompile(`(?:得|加|\+|增加)?\s*(\d+)\s*(?:分|积分)?`)
)

// ExtractPoints parses a point value from a line. A configured custom
// pattern takes precedence; its first captured group is the value. The
// tier-shift shorthand family is tried before the generic pattern, whose
// optional markers would otherwise swallow the leading tier digit.
// Returns false when no pattern yields a value.
func ExtractPoints(line string, custom *regexp.Regexp) (int, bool) {
	if custom != nil {
		if m := custom.FindStringSubmatch(line); m != nil {
			if n, ok := firstGroupInt(m); ok {
				return n, true
			}
		}
	}

	if m := tierShiftFullRe.FindStringSubmatch(line); m != nil {
		from, err1 := strconv.Atoi(m[1])
		to, err2 := strconv.Atoi(m[2])
		net, err3 := strconv.Atoi(m[3])
		if err1 == nil && err2 == nil && err3 == nil {
			return to - from + net, true
		}
	}
	if m := tierShiftBareRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := tierShiftFromRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[2]); err == nil {
			return n, true
		}
	}

	if m := genericPointsRe.FindStringSubmatch(line); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

// firstGroupInt returns the first non-empty capture group parsed as an
// integer. Custom patterns joined by alternation leave unused groups empty.
func firstGroupInt(m []string) (int, bool) {
	for _, g := range m[1:] {
		if g == "" {
			continue
		}
		if n, err := strconv.Atoi(g); err == nil {
			return n, true
		}
		return 0, false
	}
	return 0, false
}
