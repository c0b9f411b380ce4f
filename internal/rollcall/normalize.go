package rollcall

import (
	"regexp"
	"strings"

	"golang.org/x/text/width"
)

var digitRe = regexp.MustCompile(`\d`)

// headerPatterns match title/noise lines that carry no data record.
// A data line must survive all of these.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[\[【]`),  // bracket-style prefix
	regexp.MustCompile(`^.*月.*日`), // date-like token
	regexp.MustCompile(`接龙.*群`),
	regexp.MustCompile(`循环.*服务`),
	regexp.MustCompile(`拆降.*挽留`),
}

// numeralStartRe matches lines opening with a digit or Chinese numeral.
// Lines that do NOT start with one are headers when they carry a meta keyword.
var numeralStartRe = regexp.MustCompile(`^(\d|[一二三四五六七八九十壹贰叁肆伍陆柒捌玖拾])`)

var metaKeywords = []string{"接龙", "循环", "服务", "挽留", "群", "统计"}

// NormalizeLines splits raw roll-call text into the ordered sequence of
// surviving data lines: full-width characters folded, whitespace trimmed,
// blank lines, digit-free lines, and header lines discarded.
func NormalizeLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(width.Fold.String(line))
		if line == "" || !digitRe.MatchString(line) {
			continue
		}
		if IsHeaderLine(line) {
			continue
		}
		out = append(out, line)
	}
	return out
}

// IsHeaderLine reports whether the trimmed line is a title/noise line.
func IsHeaderLine(line string) bool {
	for _, re := range headerPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	compact := strings.ReplaceAll(line, " ", "")
	if !numeralStartRe.MatchString(compact) {
		for _, kw := range metaKeywords {
			if strings.Contains(line, kw) {
				return true
			}
		}
	}
	return false
}
