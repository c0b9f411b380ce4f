package store

import (
	"context"

	"github.com/sells-group/rollcall-cli/internal/model"
)

// RunFilter specifies criteria for listing report runs.
type RunFilter struct {
	Kind   model.ReportKind `json:"kind,omitempty"`
	Status model.RunStatus  `json:"status,omitempty"`
	Limit  int              `json:"limit,omitempty"`
	Offset int              `json:"offset,omitempty"`
}

// Store defines the persistence interface for report run history.
type Store interface {
	RecordRun(ctx context.Context, kind model.ReportKind, result *model.RunResult, runErr error) (*model.Run, error)
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]model.Run, error)

	Migrate(ctx context.Context) error
	Close() error
}
