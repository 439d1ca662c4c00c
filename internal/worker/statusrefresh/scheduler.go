package statusrefresh

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultSpec каждую минуту
const DefaultSpec = "@every 1m"

// Scheduler запускает Refresher по cron-расписанию
type Scheduler struct {
	cron      *cron.Cron
	refresher *Refresher
	spec      string
	timeout   time.Duration
	logger    Logger
}

func NewScheduler(refresher *Refresher, spec string, timeout time.Duration, logger Logger) *Scheduler {
	if spec == "" {
		spec = DefaultSpec
	}
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logger)),
		cron.SkipIfStillRunning(cron.PrintfLogger(logger)),
	))

	return &Scheduler{
		cron:      c,
		refresher: refresher,
		spec:      spec,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.RunOnce); err != nil {
		s.logger.Error("Scheduler: failed to schedule status refresh %q: %v", s.spec, err)
		return err
	}
	s.logger.Info("Scheduler: status refresh scheduled %q", s.spec)
	s.cron.Start()
	return nil
}

// Stop останавливает планировщик; контекст закрывается, когда текущий проход завершён
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce один проход по занятиям и абонементам
func (s *Scheduler) RunOnce() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	lessons, err := s.refresher.RefreshLessons(ctx)
	if err != nil {
		s.logger.Error("Scheduler: %v", err)
	}

	subs, err := s.refresher.ExpireSubscriptions(ctx)
	if err != nil {
		s.logger.Error("Scheduler: %v", err)
	}

	if lessons.Updated+subs.Updated > 0 {
		s.logger.Info("Scheduler: lessons updated=%d, subscriptions expired=%d", lessons.Updated, subs.Updated)
	}
}
