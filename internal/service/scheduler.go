package service

import (
	"context"
	"fmt"
	"time"

	"practice-quest/internal/logger"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

const weeklyResetTimeout = 5 * time.Minute

// Scheduler runs the periodic maintenance jobs.
type Scheduler struct {
	sched   gocron.Scheduler
	streaks StreakService
}

// NewScheduler registers the weekly streak recovery reset, Mondays at 00:00 in loc.
func NewScheduler(streaks StreakService, loc *time.Location) (*Scheduler, error) {
	if loc == nil {
		loc = time.UTC
	}
	sched, err := gocron.NewScheduler(gocron.WithLocation(loc))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Scheduler{sched: sched, streaks: streaks}
	_, err = sched.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Monday), gocron.NewAtTimes(gocron.NewAtTime(0, 0, 0))),
		gocron.NewTask(s.resetWeeklyRecoveries),
		gocron.WithName("weekly-streak-recovery-reset"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register weekly reset job: %w", err)
	}
	return s, nil
}

func (s *Scheduler) resetWeeklyRecoveries() {
	ctx, cancel := context.WithTimeout(context.Background(), weeklyResetTimeout)
	defer cancel()
	if _, err := s.streaks.ResetWeeklyRecoveries(ctx); err != nil {
		logger.Get().Error("[Scheduler] weekly streak recovery reset failed", zap.Error(err))
	}
}

func (s *Scheduler) Start() {
	s.sched.Start()
	logger.Get().Info("[Scheduler] started", zap.Int("jobs", len(s.sched.Jobs())))
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
