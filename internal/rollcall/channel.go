package rollcall

import (
	"regexp"
	"sort"
	"strings"

	"github.com/sells-group/rollcall-cli/internal/model"
)

// channelAcceptScore is the minimum match score for a channel keyword hit.
const channelAcceptScore = 0.4

type keywordClass int

const (
	kwChannel keywordClass = iota
	kwBusiness
	kwBranch
	kwManager
)

type keywordEntry struct {
	keyword string
	class   keywordClass
	channel string // set for kwChannel entries
}

// ChannelMatcher scores configured keywords against a line and picks the
// best channel. Business, branch, and manager keywords compete as
// distractors: when one of them outranks every channel keyword the line is
// rejected rather than misattributed.
type ChannelMatcher struct {
	entries []keywordEntry
}

// NewChannelMatcher builds the keyword table from the channel roster plus
// the distractor keyword sets.
func NewChannelMatcher(channels model.ChannelRoster, categories []model.CategoryRule, roster model.Roster) *ChannelMatcher {
	var entries []keywordEntry
	for _, bc := range channels {
		for _, ch := range bc.Channels {
			for _, kw := range ch.Keywords {
				entries = append(entries, keywordEntry{keyword: kw, class: kwChannel, channel: ch.Name})
			}
		}
	}
	for _, rule := range categories {
		for _, kw := range rule.Keywords {
			entries = append(entries, keywordEntry{keyword: kw, class: kwBusiness})
		}
	}
	for _, br := range roster {
		entries = append(entries, keywordEntry{keyword: br.Branch, class: kwBranch})
		for _, manager := range br.Managers {
			entries = append(entries, keywordEntry{keyword: manager, class: kwManager})
		}
	}
	return &ChannelMatcher{entries: entries}
}

// leadingIndexRe strips the roll-call sequence number participants prepend.
var leadingIndexRe = regexp.MustCompile(`^\d+[.、，,)\s]*`)

// StripLeadingIndex removes a leading sequence number ("3. ", "12、") from
// a roll-call entry.
func StripLeadingIndex(line string) string {
	return strings.TrimSpace(leadingIndexRe.ReplaceAllString(line, ""))
}

// Match returns the best-matching channel name for the line. Returns false
// when nothing reaches the acceptance score or when a distractor keyword
// wins.
func (m *ChannelMatcher) Match(line string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" || len(m.entries) == 0 {
		return "", false
	}
	hasBranchMarker := strings.Contains(lower, "支局") || strings.Contains(lower, "分局")

	var best *keywordEntry
	bestScore := 0.0
	consider := func(e *keywordEntry, score float64) {
		if score > bestScore {
			best = e
			bestScore = score
		}
	}

	// Pass 1: containment scored by keyword length; longer keywords are
	// stronger evidence.
	for i := range m.entries {
		e := &m.entries[i]
		kw := strings.ToLower(strings.TrimSpace(e.keyword))
		if kw == "" || !strings.Contains(lower, kw) {
			continue
		}
		runes := len([]rune(kw))
		switch {
		case runes <= 2:
			consider(e, 0.5)
		case runes <= 4:
			consider(e, 0.6)
		default:
			consider(e, 0.7)
		}
	}

	// Pass 2: boosts for branch-shaped and short name-shaped hits.
	for i := range m.entries {
		e := &m.entries[i]
		kw := strings.ToLower(strings.TrimSpace(e.keyword))
		if kw == "" || !strings.Contains(lower, kw) {
			continue
		}
		if hasBranchMarker {
			consider(e, 0.85)
		} else if len([]rune(kw)) <= 4 {
			consider(e, 0.8)
		}
	}

	if best == nil || bestScore < channelAcceptScore || best.class != kwChannel {
		return "", false
	}
	return best.channel, true
}

type channelKey struct {
	branch  string
	channel string
}

// ChannelAggregator accumulates transaction counts and point totals per
// configured channel, pre-seeded from the channel roster.
type ChannelAggregator struct {
	rows       map[channelKey]*model.ChannelRow
	exceptions []string
	rejected   map[string]bool
	branchOf   map[string]string
}

// NewChannelAggregator seeds one zeroed row per configured channel.
func NewChannelAggregator(channels model.ChannelRoster) *ChannelAggregator {
	agg := &ChannelAggregator{
		rows:     make(map[channelKey]*model.ChannelRow),
		rejected: make(map[string]bool),
		branchOf: make(map[string]string),
	}
	for _, bc := range channels {
		for _, ch := range bc.Channels {
			agg.rows[channelKey{bc.Branch, ch.Name}] = &model.ChannelRow{Branch: bc.Branch, Channel: ch.Name}
			agg.branchOf[ch.Name] = bc.Branch
		}
	}
	return agg
}

// Add records one transaction worth the given points against a channel.
func (a *ChannelAggregator) Add(channel string, points int) {
	branch, ok := a.branchOf[channel]
	if !ok {
		return
	}
	row := a.rows[channelKey{branch, channel}]
	row.Transactions++
	row.Points += points
}

// Reject records a line that matched no channel or yielded no points.
func (a *ChannelAggregator) Reject(line string) {
	if a.rejected[line] {
		return
	}
	a.rejected[line] = true
	a.exceptions = append(a.exceptions, line)
}

// Exceptions returns the rejected lines in first-seen order.
func (a *ChannelAggregator) Exceptions() []string {
	return a.exceptions
}

// Report emits channel rows sorted by name within each branch, one
// subtotal per branch, branches sorted by name, and a grand total row.
func (a *ChannelAggregator) Report() []model.ChannelRow {
	byBranch := make(map[string][]*model.ChannelRow)
	for key, row := range a.rows {
		byBranch[key.branch] = append(byBranch[key.branch], row)
	}

	branches := make([]string, 0, len(byBranch))
	for branch := range byBranch {
		branches = append(branches, branch)
	}
	sort.Strings(branches)

	grand := model.ChannelRow{Branch: model.GrandTotalLabel}
	var report []model.ChannelRow
	for _, branch := range branches {
		rows := byBranch[branch]
		sort.Slice(rows, func(i, j int) bool { return rows[i].Channel < rows[j].Channel })

		subtotal := model.ChannelRow{Branch: branch, Channel: model.SubtotalLabel}
		for _, row := range rows {
			report = append(report, *row)
			subtotal.Transactions += row.Transactions
			subtotal.Points += row.Points
			grand.Transactions += row.Transactions
			grand.Points += row.Points
		}
		report = append(report, subtotal)
	}
	return append(report, grand)
}
