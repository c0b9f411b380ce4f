package rollcall

import (
	"regexp"
	"strings"

	"github.com/sells-group/rollcall-cli/internal/model"
)

// phoneticThreshold is the minimum similarity for the phonetic entity stage.
const phoneticThreshold = 0.6

// branchSuffixes are the organizational suffixes stripped to form branch
// abbreviations.
var branchSuffixes = []string{"支局", "分局"}

// Match is a successful (or partial) resolution of a line against the
// roster. Entity is empty when the branch matched but no manager could be
// identified in the remainder.
type Match struct {
	Branch    string
	Entity    string
	Remainder string
}

// branchStage attempts to locate one configured branch in the line,
// returning the line with the branch text removed.
type branchStage struct {
	name string
	fn   func(line string, branch string) (remainder string, ok bool)
}

// branchStages is the resolution cascade for branches, highest priority
// first. The first stage producing a branch+entity match wins.
var branchStages = []branchStage{
	{name: "exact", fn: matchBranchExact},
	{name: "abbreviated", fn: matchBranchAbbreviated},
	{name: "fuzzy", fn: matchBranchFuzzy},
}

func matchBranchExact(line, branch string) (string, bool) {
	if !strings.Contains(line, branch) {
		return "", false
	}
	return strings.ReplaceAll(line, branch, ""), true
}

func matchBranchAbbreviated(line, branch string) (string, bool) {
	short := shortBranchName(branch)
	if short == "" || !strings.Contains(line, short) {
		return "", false
	}
	return strings.ReplaceAll(line, short, ""), true
}

// matchBranchFuzzy accepts either the full or the abbreviated form anywhere
// in the line. Broader than the abbreviated stage, not stricter: a full-form
// hit still strips only the short form, leaving the suffix in the remainder.
func matchBranchFuzzy(line, branch string) (string, bool) {
	short := shortBranchName(branch)
	if short == "" {
		short = branch
	}
	if !strings.Contains(line, short) && !strings.Contains(line, branch) {
		return "", false
	}
	return strings.ReplaceAll(line, short, ""), true
}

func shortBranchName(branch string) string {
	short := branch
	for _, suffix := range branchSuffixes {
		short = strings.ReplaceAll(short, suffix, "")
	}
	return short
}

// entityStage attempts to pick one configured entity out of the remainder.
type entityStage struct {
	name string
	fn   func(entity, remainder string, tokens []string) bool
}

// entityStages is the resolution cascade within a matched branch, highest
// priority first.
var entityStages = []entityStage{
	{name: "containment", fn: entityContainment},
	{name: "token_equality", fn: entityTokenEquality},
	{name: "phonetic", fn: entityPhonetic},
	{name: "char_overlap", fn: entityCharOverlap},
}

func entityContainment(entity, remainder string, _ []string) bool {
	return strings.Contains(remainder, entity)
}

func entityTokenEquality(entity, _ string, tokens []string) bool {
	for _, tok := range tokens {
		if entity == tok {
			return true
		}
	}
	return false
}

func entityPhonetic(entity, _ string, tokens []string) bool {
	for _, tok := range tokens {
		if Similarity(entity, tok) > phoneticThreshold {
			return true
		}
	}
	return false
}

// entityCharOverlap is the last-resort stage: accept when the entity's
// first and second characters both appear within a single token. Known to
// over-match short names; kept deliberately weak and last.
func entityCharOverlap(entity, _ string, tokens []string) bool {
	runes := []rune(entity)
	if len(runes) < 2 {
		return false
	}
	for _, tok := range tokens {
		if len([]rune(tok)) < 2 {
			continue
		}
		if strings.ContainsRune(tok, runes[0]) && strings.ContainsRune(tok, runes[1]) {
			return true
		}
	}
	return false
}

var (
	hanTokenRe   = regexp.MustCompile(`\p{Han}{2,4}`)
	latinTokenRe = regexp.MustCompile(`[A-Za-z]+(?:\s+[A-Za-z]+)*`)
)

// extractTokens pulls candidate name tokens out of the remainder: runs of
// 2-4 Han characters, plus latin word runs so romanized names reach the
// phonetic stage.
func extractTokens(remainder string) []string {
	tokens := hanTokenRe.FindAllString(remainder, -1)
	return append(tokens, latinTokenRe.FindAllString(remainder, -1)...)
}

// Resolver maps free-text lines onto the configured roster.
type Resolver struct {
	roster model.Roster
}

// NewResolver returns a resolver over the given roster. The roster is
// read-only; the resolver never mutates it.
func NewResolver(roster model.Roster) *Resolver {
	return &Resolver{roster: roster}
}

// Resolve determines which branch and entity the line refers to. Branch
// stages run in priority order over the roster's declared branch order;
// within a matched branch the entity cascade runs over the remainder. When
// a branch matches but no entity stage succeeds anywhere, the first such
// branch is returned with an empty Entity so the caller can report the
// line as an exception with branch context.
func (r *Resolver) Resolve(line string) (*Match, bool) {
	var branchOnly *Match
	for _, stage := range branchStages {
		for _, br := range r.roster {
			remainder, ok := stage.fn(line, br.Branch)
			if !ok {
				continue
			}
			if entity, found := findEntity(br.Managers, remainder); found {
				return &Match{Branch: br.Branch, Entity: entity, Remainder: remainder}, true
			}
			if branchOnly == nil {
				branchOnly = &Match{Branch: br.Branch, Remainder: remainder}
			}
		}
	}
	if branchOnly != nil {
		return branchOnly, true
	}
	return nil, false
}

func findEntity(entities []string, remainder string) (string, bool) {
	tokens := extractTokens(remainder)
	for _, stage := range entityStages {
		for _, entity := range entities {
			if stage.fn(entity, remainder, tokens) {
				return entity, true
			}
		}
	}
	return "", false
}
