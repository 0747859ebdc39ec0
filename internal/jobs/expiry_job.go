package jobs

import (
	"context"
	"time"

	"github.com/driveport/service-rental/internal/domain/booking"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ExpiryJob periodically cancels pending bookings whose pickup date has
// passed without the owner confirming them.
type ExpiryJob struct {
	repo     booking.BookingRepository
	schedule string
	logger   *zap.Logger
	cron     *cron.Cron
}

// NewExpiryJob creates a new ExpiryJob with the given cron schedule.
func NewExpiryJob(repo booking.BookingRepository, schedule string, logger *zap.Logger) *ExpiryJob {
	return &ExpiryJob{
		repo:     repo,
		schedule: schedule,
		logger:   logger,
		cron:     cron.New(),
	}
}

// Start registers the sweep on the cron schedule and starts the scheduler.
func (j *ExpiryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}
	j.cron.Start()
	j.logger.Info("expiry job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *ExpiryJob) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *ExpiryJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.repo.ExpirePendingBefore(ctx, time.Now().UTC())
	if err != nil {
		j.logger.Error("failed to expire pending bookings", zap.Error(err))
		return
	}
	if n > 0 {
		j.logger.Info("expired pending bookings", zap.Int64("count", n))
	}
}
