// Package cron runs the server's periodic background jobs.
package cron

import (
	"context"
	"time"

	bookingRepo "detailing/database/repository/booking"

	"go.uber.org/zap"
)

// BookingCompleter moves confirmed bookings whose end has passed to completed.
type BookingCompleter struct {
	Repo   bookingRepo.BookingRepository
	Every  time.Duration
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

func (c *BookingCompleter) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// RunOnce performs a single sweep.
func (c *BookingCompleter) RunOnce(ctx context.Context) (int64, error) {
	n, err := c.Repo.CompleteEndedBefore(ctx, c.now().UTC())
	if err != nil {
		return 0, err
	}
	if n > 0 && c.Logger != nil {
		c.Logger.Info("[BookingCompleter] bookings completed", zap.Int64("count", n))
	}
	return n, nil
}

// Start sweeps immediately and then every c.Every until ctx is cancelled.
func (c *BookingCompleter) Start(ctx context.Context) {
	every := c.Every
	if every <= 0 {
		every = 10 * time.Minute
	}
	run := func() {
		if _, err := c.RunOnce(ctx); err != nil && c.Logger != nil {
			c.Logger.Warn("[BookingCompleter] sweep failed", zap.Error(err))
		}
	}

	go func() {
		run()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				run()
			}
		}
	}()
}
