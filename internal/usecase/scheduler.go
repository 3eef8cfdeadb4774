package usecase

import (
	"context"
	"fmt"
	"time"

	"MacroPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Locker guards scheduled runs across replicas.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

const scheduleLockKey = "briefing:schedule"

// Scheduler generates briefings on a cron schedule (with seconds field).
type Scheduler struct {
	uc      *BriefingUseCase
	locker  Locker
	log     *logger.Logger
	cron    *cron.Cron
	lockTTL time.Duration
}

// NewScheduler validates spec and registers the briefing job. locker may be nil.
func NewScheduler(spec string, uc *BriefingUseCase, locker Locker, log *logger.Logger) (*Scheduler, error) {
	s := &Scheduler{
		uc:      uc,
		locker:  locker,
		log:     log,
		cron:    cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		lockTTL: 5 * time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start begins the schedule in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info("briefing schedule started", logger.String("next", e.Next.Format(time.RFC3339)))
	}
}

// Stop halts the schedule and waits for a running job.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RunOnce generates one briefing and delivers it synchronously. It reports whether it ran.
func (s *Scheduler) RunOnce(ctx context.Context) bool {
	if s.locker != nil {
		ok, err := s.locker.TryLock(ctx, scheduleLockKey, s.lockTTL)
		if err != nil {
			s.log.Warn("schedule lock failed", logger.Error(err))
			return false
		}
		if !ok {
			s.log.Debug("scheduled briefing skipped, another instance holds the lock")
			return false
		}
		defer func() { _ = s.locker.Unlock(ctx, scheduleLockKey) }()
	}

	b, failed := s.uc.GenerateAndDeliver(ctx)
	s.log.Info("scheduled briefing done",
		logger.String("generated_at", b.GeneratedAt.Format(time.RFC3339)),
		logger.Int("sink_failures", failed),
	)
	return true
}
