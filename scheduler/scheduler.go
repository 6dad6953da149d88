package scheduler

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"

	"golf-atlas/models"
	"golf-atlas/source"
	"golf-atlas/utils"
)

// Reloader is anything that can run a fresh ingestion pass.
type Reloader interface {
	Source() string
	Reload(ctx context.Context, cacheBust string) (*models.Snapshot, error)
}

// Scheduler triggers background reloads, either on a cron schedule or when
// a local source file changes.
type Scheduler struct {
	target Reloader
	logger *utils.Logger
	cron   *cron.Cron
	cancel context.CancelFunc
	done   chan struct{}
}

func New(target Reloader, logger *utils.Logger) *Scheduler {
	return &Scheduler{target: target, logger: logger}
}

// Every registers a cron-driven reload. Scheduled passes always bust caches.
func (s *Scheduler) Every(expr string) error {
	if s.cron == nil {
		s.cron = cron.New()
	}
	_, err := s.cron.AddFunc(expr, func() { s.reload("cron", true) })
	if err != nil {
		return fmt.Errorf("scheduler: invalid expression %q: %w", expr, err)
	}
	s.logger.Info("[scheduler] Refreshing %s on %q", s.target.Source(), expr)
	return nil
}

// Start begins running the registered triggers. When watch is set and the
// source is a local file, edits to it trigger a reload too.
func (s *Scheduler) Start(ctx context.Context, watch bool) {
	if s.cron != nil {
		s.cron.Start()
	}
	if !watch || !source.IsLocal(s.target.Source()) {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})
	path := source.LocalPath(s.target.Source())
	go func() {
		defer close(s.done)
		err := source.Watch(ctx, path, 500*time.Millisecond, s.logger, func() { s.reload("file change", false) })
		if err != nil {
			s.logger.Error("[scheduler] Watching %s: %v", path, err)
		}
	}()
}

// Stop halts every trigger and waits for a running cron job to return.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
		<-s.done
	}
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

func (s *Scheduler) reload(trigger string, bust bool) {
	cacheBust := ""
	if bust {
		cacheBust = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	s.logger.Debug("[scheduler] Reload triggered by %s", trigger)
	snap, err := s.target.Reload(context.Background(), cacheBust)
	if err != nil {
		s.logger.Warn("[scheduler] Reload (%s) failed: %v", trigger, err)
		return
	}
	s.logger.Info("[scheduler] Reload (%s) published snapshot %s with %d courses", trigger, snap.ID, snap.Stats.Valid)
}
