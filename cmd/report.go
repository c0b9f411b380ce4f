package main

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/rollcall-cli/internal/export"
	"github.com/sells-group/rollcall-cli/internal/model"
	"github.com/sells-group/rollcall-cli/internal/registry"
	"github.com/sells-group/rollcall-cli/internal/rollcall"
)

func registryPaths() registry.Paths {
	dir := cfg.Registry.Dir
	return registry.Paths{
		Roster:     filepath.Join(dir, cfg.Registry.RosterFile),
		Categories: filepath.Join(dir, cfg.Registry.CategoryFile),
		Channels:   filepath.Join(dir, cfg.Registry.ChannelFile),
	}
}

// loadRunConfiguration assembles the immutable per-run configuration from
// the registry files plus the commentary thresholds.
func loadRunConfiguration() (*rollcall.RunConfiguration, error) {
	runCfg, err := registry.Load(registryPaths())
	if err != nil {
		return nil, err
	}
	runCfg.Thresholds = rollcall.Thresholds{
		ManagerPraiseTotal:  cfg.Report.ManagerPraiseTotal,
		ChannelPraisePoints: cfg.Report.ChannelPraisePoints,
	}
	return runCfg, nil
}

// readInput returns the chat text from the named file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", eris.Wrap(err, "read stdin")
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", eris.Wrapf(err, "read input %s", path)
	}
	return string(raw), nil
}

type runSummary struct {
	Input      string `json:"input"`
	File       string `json:"file,omitempty"`
	RunID      string `json:"run_id"`
	Lines      int    `json:"lines"`
	Exceptions int    `json:"exceptions"`
	Error      string `json:"error,omitempty"`
}

// generateReports runs one pipeline over each input, writes one workbook
// per input, and records every run in the history store. Inputs are
// processed concurrently; per-input failures are recorded and reported
// without aborting the other inputs' workbooks.
func generateReports(ctx context.Context, kind model.ReportKind, inputs []string, concurrency int) error {
	st, err := initStore()
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	runCfg, err := loadRunConfiguration()
	if err != nil {
		return eris.Wrap(err, "load registry")
	}
	engine, err := rollcall.NewEngine(runCfg)
	if err != nil {
		return err
	}

	prefix := cfg.Report.ManagerPrefix
	threshold := cfg.Report.ManagerPraiseTotal
	if kind == model.ReportKindChannel {
		prefix = cfg.Report.ChannelPrefix
		threshold = cfg.Report.ChannelPraisePoints
	}

	if concurrency <= 0 {
		concurrency = 1
	}

	var (
		mu        sync.Mutex
		summaries []runSummary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			result, runErr := runOne(engine, kind, input, prefix, threshold, len(inputs) > 1)

			run, recErr := st.RecordRun(gctx, kind, result, runErr)
			if recErr != nil {
				zap.L().Error("record run failed", zap.String("input", input), zap.Error(recErr))
			}

			summary := runSummary{Input: input}
			if run != nil {
				summary.RunID = run.ID
			}
			if result != nil {
				summary.File = result.File
				summary.Lines = result.LineCount
				summary.Exceptions = len(result.Exceptions)
			}
			if runErr != nil {
				summary.Error = runErr.Error()
			}
			mu.Lock()
			summaries = append(summaries, summary)
			mu.Unlock()
			return runErr
		})
	}
	err = g.Wait()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(summaries); encErr != nil {
		return encErr
	}
	return err
}

func runOne(engine *rollcall.Engine, kind model.ReportKind, input, prefix string, threshold int, multi bool) (*model.RunResult, error) {
	text, err := readInput(input)
	if err != nil {
		return nil, err
	}

	var result *model.RunResult
	if kind == model.ReportKindChannel {
		result, err = engine.ChannelReport(text)
	} else {
		result, err = engine.ManagerReport(text)
	}
	if err != nil {
		return nil, err
	}

	if multi && input != "-" {
		stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		prefix = prefix + "_" + stem
	}
	path := filepath.Join(cfg.Report.OutputDir, export.ReportFileName(prefix, result.GeneratedAt))

	workbook := export.Workbook{Title: prefix, PraiseThreshold: threshold}
	if err := workbook.Write(path, result); err != nil {
		return result, err
	}
	result.File = path

	zap.L().Info("report generated",
		zap.String("kind", string(kind)),
		zap.String("input", input),
		zap.String("file", path),
		zap.Int("lines", result.LineCount),
		zap.Int("exceptions", len(result.Exceptions)),
	)
	return result, nil
}
