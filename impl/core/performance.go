package core

import (
	"PerfDash/entity"
	"PerfDash/internal/performance"
	"bytes"
	"context"
	"fmt"
)

// Performance builds the report of one scope from the latest snapshot.
func (c *Core) Performance(scope entity.Scope) (*entity.Report, error) {
	snap := c.Snapshot()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	report := performance.BuildReport(snap, scope, c.now().In(c.loc), c.auditLimit)
	return &report, nil
}

// ExportCSV renders the same report as Performance as a CSV file.
func (c *Core) ExportCSV(scope entity.Scope) ([]byte, string, error) {
	report, err := c.Performance(scope)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	if err = performance.WriteCSV(&buf, *report); err != nil {
		return nil, "", fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), performance.ExportFilename(report.GeneratedAt), nil
}

// History returns the latest recorded runs, newest first.
func (c *Core) History(limit int) ([]entity.PerformanceRun, error) {
	if c.repo == nil {
		return nil, fmt.Errorf("repository is not set")
	}
	if limit <= 0 || limit > c.historyLimit {
		limit = c.historyLimit
	}
	return c.repo.GetPerformanceRuns(limit)
}

// RequestRefresh runs a manual refresh on behalf of a websocket or chat user.
func (c *Core) RequestRefresh(ctx context.Context, username string) error {
	_, err := c.Refresh(ctx, entity.TriggerManual, username)
	return err
}
