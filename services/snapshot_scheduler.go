package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// snapshotRefresher is the part of TournamentService the scheduler needs.
type snapshotRefresher interface {
	RefreshSnapshots(ctx context.Context) (int, error)
}

// StartSnapshotScheduler republishes schedule snapshots every interval, so
// results recorded by the scoreboard show up in the published copies. A run
// still in progress when the next one is due delays it instead of
// overlapping. The caller owns the returned scheduler and must shut it down.
func StartSnapshotScheduler(svc snapshotRefresher, interval time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create snapshot scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()

			published, err := svc.RefreshSnapshots(ctx)
			if err != nil {
				logger.Error("scheduled snapshot refresh failed", slog.Any("error", err))
				return
			}
			logger.Info("scheduled snapshot refresh finished", slog.Int("published", published))
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, fmt.Errorf("failed to register snapshot job: %w", err)
	}

	sched.Start()
	logger.Info("snapshot scheduler started", slog.Duration("interval", interval))
	return sched, nil
}
