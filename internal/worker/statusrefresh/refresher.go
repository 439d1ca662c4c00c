package statusrefresh

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-DanceStudio/internal/infra/storage"
)

const (
	opRefreshLessons      = "refresh_lessons"
	opExpireSubscriptions = "expire_subscriptions"
)

// ErrRefresh возвращается, если проход не смог прочитать кандидатов
var ErrRefresh = errors.New("statusrefresh: refresh failed")

// Result итог одного прохода
type Result struct {
	Updated int
	Skipped int
	Failed  int
}

// Refresher сдвигает статусы занятий и абонементов по часам
type Refresher struct {
	repo         Repository
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

func NewRefresher(repo Repository, metrics Metrics, logger Logger) *Refresher {
	return &Refresher{
		repo:         repo,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// RefreshLessons scheduled -> ongoing -> completed по времени слота
func (r *Refresher) RefreshLessons(ctx context.Context) (Result, error) {
	now := r.timeProvider.Now()

	lessons, err := r.repo.FindLessonsToRefresh(ctx, now)
	if err != nil {
		r.metrics.RecordOutcome(opRefreshLessons, "error")
		return Result{}, fmt.Errorf("%w: RefreshLessons - find: %v", ErrRefresh, err)
	}

	var res Result
	for _, lesson := range lessons {
		prev := lesson.Status()
		if !lesson.SyncWithClock(now) {
			continue
		}

		if err := r.repo.UpdateLessonStatus(ctx, lesson, prev); err != nil {
			// Статус уже поменял кто-то другой, догоним на следующем проходе
			if errors.Is(err, storage.ErrConcurrentUpdate) {
				res.Skipped++
				continue
			}
			r.logger.Error("RefreshLessons: failed to update lesson id=%d: %v", lesson.ID(), err)
			res.Failed++
			continue
		}

		r.logger.Info("RefreshLessons: lesson id=%d %s -> %s", lesson.ID(), prev, lesson.Status())
		res.Updated++
	}

	r.record(opRefreshLessons, res)
	return res, nil
}

// ExpireSubscriptions переводит просроченные по дате абонементы в expired
func (r *Refresher) ExpireSubscriptions(ctx context.Context) (Result, error) {
	now := r.timeProvider.Now()

	subs, err := r.repo.FindSubscriptionsToExpire(ctx, now)
	if err != nil {
		r.metrics.RecordOutcome(opExpireSubscriptions, "error")
		return Result{}, fmt.Errorf("%w: ExpireSubscriptions - find: %v", ErrRefresh, err)
	}

	var res Result
	for _, sub := range subs {
		prevStatus, prevVisits := sub.Status(), sub.RemainingVisits()
		if !sub.ExpireIfDue(now) {
			continue
		}

		if err := r.repo.UpdateSubscription(ctx, sub, prevVisits, prevStatus); err != nil {
			if errors.Is(err, storage.ErrConcurrentUpdate) {
				res.Skipped++
				continue
			}
			r.logger.Error("ExpireSubscriptions: failed to update subscription id=%d: %v", sub.ID(), err)
			res.Failed++
			continue
		}

		r.logger.Info("ExpireSubscriptions: subscription id=%d client=%d expired", sub.ID(), sub.ClientID())
		res.Updated++
	}

	r.record(opExpireSubscriptions, res)
	return res, nil
}

func (r *Refresher) record(op string, res Result) {
	switch {
	case res.Failed > 0:
		r.metrics.RecordOutcome(op, "error")
	case res.Skipped > 0:
		r.metrics.RecordOutcome(op, "contention")
	default:
		r.metrics.RecordOutcome(op, "ok")
	}
}
