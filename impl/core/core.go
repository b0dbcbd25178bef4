package core

import (
	"PerfDash/entity"
	"PerfDash/internal/lib/sl"
	"context"
	"log/slog"
	"sync"
	"time"
)

type Repository interface {
	CheckApiKey(key string) (string, error)
	GenerateApiKey(username string) (string, error)

	SavePerformanceRun(run *entity.PerformanceRun) error
	GetPerformanceRuns(limit int) ([]entity.PerformanceRun, error)
}

// Source loads a fresh snapshot of the upstream collections.
type Source interface {
	Fetch(ctx context.Context) (*entity.Snapshot, error)
}

// Notifier pushes refresh events to the connected dashboards.
type Notifier interface {
	BroadcastPerformance(run *entity.PerformanceRun)
}

// MessageService delivers the alert digest to the admin chat.
type MessageService interface {
	SendMessage(msg string)
}

const (
	defaultAuditLimit   = 20
	defaultHistoryLimit = 30
)

type Core struct {
	repo            Repository
	source          Source
	hub             Notifier
	ms              MessageService
	authKey         string
	keys            map[string]string
	keysMu          sync.RWMutex
	loc             *time.Location
	refreshInterval time.Duration
	auditLimit      int
	historyLimit    int
	now             func() time.Time

	mu         sync.RWMutex
	snapshot   *entity.Snapshot
	sequence   uint64
	committed  uint64
	lastDigest string

	log *slog.Logger
}

func New(log *slog.Logger) *Core {
	return &Core{
		log:          log.With(sl.Module("core")),
		keys:         make(map[string]string),
		loc:          time.UTC,
		auditLimit:   defaultAuditLimit,
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
}

func (c *Core) SetRepository(repo Repository) {
	c.repo = repo
}

func (c *Core) SetSource(source Source) {
	c.source = source
}

func (c *Core) SetNotifier(hub Notifier) {
	c.hub = hub
}

func (c *Core) SetMessageService(ms MessageService) {
	c.ms = ms
}

func (c *Core) SetAuthKey(key string) {
	c.authKey = key
}

// SetLocation sets the zone of calendar weeks and report timestamps.
func (c *Core) SetLocation(loc *time.Location) {
	if loc != nil {
		c.loc = loc
	}
}

func (c *Core) SetRefreshInterval(interval time.Duration) {
	c.refreshInterval = interval
}

func (c *Core) SetLimits(auditLimit, historyLimit int) {
	if auditLimit >= 0 {
		c.auditLimit = auditLimit
	}
	if historyLimit > 0 {
		c.historyLimit = historyLimit
	}
}

// Init loads the first snapshot and keeps refreshing it every refresh
// interval until ctx is done. A zero interval disables the periodic refresh.
func (c *Core) Init(ctx context.Context) {
	go func() {
		if _, err := c.Refresh(ctx, entity.TriggerStartup, ""); err != nil {
			c.log.With(sl.Err(err)).Error("startup refresh")
		}
		if c.refreshInterval <= 0 {
			return
		}

		ticker := time.NewTicker(c.refreshInterval)
		defer ticker.Stop()
		c.log.With(
			slog.Duration("interval", c.refreshInterval),
		).Info("performance refresh scheduled")

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := c.Refresh(ctx, entity.TriggerSchedule, ""); err != nil {
					c.log.With(sl.Err(err)).Error("scheduled refresh")
				}
			}
		}
	}()
}
