package performance

import (
	"PerfDash/entity"
	"context"
)

type Core interface {
	Performance(scope entity.Scope) (*entity.Report, error)
	ExportCSV(scope entity.Scope) ([]byte, string, error)
	Refresh(ctx context.Context, trigger, user string) (*entity.PerformanceRun, error)
	History(limit int) ([]entity.PerformanceRun, error)
}
