package rollcall

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/rollcall-cli/internal/model"
)

// DefaultPointsPattern is the fallback point-extraction pattern used when
// the channel configuration does not provide one.
const DefaultPointsPattern = `积分\s*(\d+)`

// Thresholds control the praise/reminder commentary derived from totals.
type Thresholds struct {
	ManagerPraiseTotal  int
	ChannelPraisePoints int
}

// RunConfiguration is the complete, immutable configuration for one report
// run: the manager roster, category rules, channel roster, and the custom
// point-extraction pattern. Assembled once by the caller and passed into
// the engine; the engine holds no process-wide state.
type RunConfiguration struct {
	Roster        model.Roster
	Categories    []model.CategoryRule
	Channels      model.ChannelRoster
	PointsPattern string
	Thresholds    Thresholds
}

// Engine runs the two report pipelines over a RunConfiguration. A single
// run is fully synchronous; the engine is safe for concurrent runs since
// all mutable state lives in per-run accumulators.
type Engine struct {
	cfg      *RunConfiguration
	resolver *Resolver
	matcher  *ChannelMatcher
	pointsRe *regexp.Regexp
}

// NewEngine validates the configuration and builds the shared matchers.
func NewEngine(cfg *RunConfiguration) (*Engine, error) {
	pattern := cfg.PointsPattern
	if pattern == "" {
		pattern = DefaultPointsPattern
	}
	pointsRe, err := regexp.Compile(pattern)
	if err != nil {
		return nil, eris.Wrapf(ErrBadPointsPattern, "compile %q: %v", pattern, err)
	}
	return &Engine{
		cfg:      cfg,
		resolver: NewResolver(cfg.Roster),
		matcher:  NewChannelMatcher(cfg.Channels, cfg.Categories, cfg.Roster),
		pointsRe: pointsRe,
	}, nil
}

// ManagerReport runs pipeline A: per-manager business activity counts.
// Every surviving input line ends in exactly one of the aggregated
// counters or the exception list.
func (e *Engine) ManagerReport(text string) (*model.RunResult, error) {
	lines := NormalizeLines(text)
	agg := NewManagerAggregator(e.cfg.Roster)

	for _, line := range lines {
		if err := e.processManagerLine(line, agg); err != nil {
			agg.Reject(line)
			zap.L().Debug("manager line rejected",
				zap.String("line", line),
				zap.Error(err),
			)
		}
	}

	rows := agg.Report()
	praised, reminded := managerCommentary(rows, e.cfg.Thresholds.ManagerPraiseTotal)
	return &model.RunResult{
		ReportID:    uuid.New().String(),
		Kind:        model.ReportKindManager,
		GeneratedAt: time.Now(),
		ManagerRows: rows,
		Exceptions:  agg.Exceptions(),
		LineCount:   len(lines),
		Praised:     praised,
		Reminded:    reminded,
	}, nil
}

func (e *Engine) processManagerLine(line string, agg *ManagerAggregator) error {
	match, ok := e.resolver.Resolve(line)
	if !ok {
		return ErrNoBranch
	}
	if match.Entity == "" {
		return eris.Wrapf(ErrNoEntity, "branch %s", match.Branch)
	}

	id, ok := Classify(line, e.cfg.Categories)
	if !ok {
		return eris.Wrapf(ErrNoCategory, "entity %s", match.Entity)
	}

	qty := 1
	if rule := e.ruleFor(id); rule != nil && rule.CountFromText {
		qty = ExtractCount(line)
	}
	agg.Add(match.Branch, match.Entity, id, qty)
	return nil
}

func (e *Engine) ruleFor(id model.CategoryID) *model.CategoryRule {
	for i := range e.cfg.Categories {
		if e.cfg.Categories[i].ID == id {
			return &e.cfg.Categories[i]
		}
	}
	return nil
}

// ChannelReport runs pipeline B: per-channel transaction counts and point
// totals.
func (e *Engine) ChannelReport(text string) (*model.RunResult, error) {
	lines := NormalizeLines(text)
	agg := NewChannelAggregator(e.cfg.Channels)

	for _, line := range lines {
		if err := e.processChannelLine(line, agg); err != nil {
			agg.Reject(line)
			zap.L().Debug("channel line rejected",
				zap.String("line", line),
				zap.Error(err),
			)
		}
	}

	rows := agg.Report()
	praised, reminded := channelCommentary(rows, e.cfg.Thresholds.ChannelPraisePoints)
	return &model.RunResult{
		ReportID:    uuid.New().String(),
		Kind:        model.ReportKindChannel,
		GeneratedAt: time.Now(),
		ChannelRows: rows,
		Exceptions:  agg.Exceptions(),
		LineCount:   len(lines),
		Praised:     praised,
		Reminded:    reminded,
	}, nil
}

func (e *Engine) processChannelLine(line string, agg *ChannelAggregator) error {
	entry := StripLeadingIndex(line)

	channel, ok := e.matcher.Match(entry)
	if !ok {
		return ErrNoChannel
	}
	points, ok := ExtractPoints(entry, e.pointsRe)
	if !ok {
		return eris.Wrapf(ErrNoQuantity, "channel %s", channel)
	}
	agg.Add(channel, points)
	return nil
}

func managerCommentary(rows []model.ManagerRow, praiseTotal int) (praised, reminded []string) {
	if praiseTotal <= 0 {
		praiseTotal = 3
	}
	for i := range rows {
		row := &rows[i]
		if row.IsSubtotal() || row.IsGrandTotal() {
			continue
		}
		switch {
		case row.Total >= praiseTotal:
			praised = append(praised, row.Manager)
		case row.Total == 0:
			reminded = append(reminded, row.Manager)
		}
	}
	return praised, reminded
}

func channelCommentary(rows []model.ChannelRow, praisePoints int) (praised, reminded []string) {
	if praisePoints <= 0 {
		praisePoints = 100
	}
	for i := range rows {
		row := &rows[i]
		if row.IsSubtotal() || row.IsGrandTotal() {
			continue
		}
		switch {
		case row.Points >= praisePoints:
			praised = append(praised, row.Channel)
		case row.Points == 0:
			reminded = append(reminded, row.Channel)
		}
	}
	return praised, reminded
}
