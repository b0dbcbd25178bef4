package core

import (
	"PerfDash/entity"
	"PerfDash/internal/lib/sl"
	"PerfDash/internal/performance"
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"log/slog"
	"strings"
)

var (
	ErrNoSnapshot    = errors.New("performance data not loaded yet")
	ErrStaleSnapshot = errors.New("refresh superseded by a newer one")
)

// Refresh fetches a new snapshot and publishes it. Every refresh takes a
// sequence number before fetching; a result that arrives after a later
// refresh has already been committed is discarded with ErrStaleSnapshot.
func (c *Core) Refresh(ctx context.Context, trigger, user string) (*entity.PerformanceRun, error) {
	if c.source == nil {
		return nil, fmt.Errorf("source is not set")
	}

	seq := c.nextSequence()
	snap, err := c.source.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	snap.Sequence = seq

	if !c.commit(snap) {
		c.log.With(
			slog.Uint64("sequence", seq),
			slog.String("trigger", trigger),
		).Debug("stale snapshot discarded")
		return nil, ErrStaleSnapshot
	}

	run := c.record(snap, trigger, user)
	c.log.With(
		slog.Uint64("sequence", seq),
		slog.String("trigger", trigger),
		slog.Int("alerts", len(run.Alerts)),
		slog.Any("failed", snap.Failed),
	).Info("performance snapshot refreshed")
	return run, nil
}

// Snapshot returns the latest committed snapshot. Callers must not modify it.
func (c *Core) Snapshot() *entity.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Core) nextSequence() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sequence++
	return c.sequence
}

func (c *Core) commit(snap *entity.Snapshot) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if snap.Sequence <= c.committed {
		return false
	}
	c.committed = snap.Sequence
	c.snapshot = snap
	return true
}

// record stores the network-wide figures of a committed snapshot and
// notifies the dashboards.
func (c *Core) record(snap *entity.Snapshot, trigger, user string) *entity.PerformanceRun {
	now := c.now().In(c.loc)
	report := performance.BuildReport(snap, entity.Scope{Management: entity.ScopeAll}, now, 0)

	run := &entity.PerformanceRun{
		ID:            uuid.NewString(),
		CreatedAt:     now,
		SnapshotAt:    snap.FetchedAt,
		Trigger:       trigger,
		User:          user,
		Summary:       report.Summary,
		Alerts:        report.Alerts,
		FailedSources: report.FailedSources,
	}

	if c.repo != nil {
		if err := c.repo.SavePerformanceRun(run); err != nil {
			c.log.With(sl.Err(err)).Error("save performance run")
		}
	}
	if c.hub != nil {
		c.hub.BroadcastPerformance(run)
	}
	c.sendDigest(run)

	return run
}

// sendDigest forwards the alerts to the admin chat when they differ from
// the last digest sent.
func (c *Core) sendDigest(run *entity.PerformanceRun) {
	if c.ms == nil {
		return
	}
	if len(run.Alerts) == 0 || (len(run.Alerts) == 1 && run.Alerts[0] == performance.NoAlerts) {
		return
	}

	key := strings.Join(run.Alerts, "\n")
	c.mu.Lock()
	if key == c.lastDigest {
		c.mu.Unlock()
		return
	}
	c.lastDigest = key
	c.mu.Unlock()

	var b strings.Builder
	b.WriteString("Network performance alerts\n")
	for _, alert := range run.Alerts {
		b.WriteString("- ")
		b.WriteString(alert)
		b.WriteString("\n")
	}
	if len(run.FailedSources) > 0 {
		b.WriteString("Sources not loaded: ")
		b.WriteString(strings.Join(run.FailedSources, ", "))
	}
	c.ms.SendMessage(strings.TrimSpace(b.String()))
}
