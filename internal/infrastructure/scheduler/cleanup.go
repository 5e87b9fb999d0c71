package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger removes events whose start time has passed
type Purger interface {
	PurgePastEvents(ctx context.Context) (int, error)
}

// PastEventCleanup periodically purges events that have already happened
type PastEventCleanup struct {
	purger   Purger
	interval time.Duration
	logger   *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewPastEventCleanup creates the cleanup loop
func NewPastEventCleanup(purger Purger, interval time.Duration, logger *zap.Logger) *PastEventCleanup {
	return &PastEventCleanup{
		purger:   purger,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start runs the cleanup loop until Stop is called
func (c *PastEventCleanup) Start() {
	go c.run()
}

func (c *PastEventCleanup) run() {
	defer close(c.done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stop:
			return
		}
	}
}

func (c *PastEventCleanup) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	removed, err := c.purger.PurgePastEvents(ctx)
	if err != nil {
		c.logger.Error("past event cleanup failed", zap.Error(err))
		return
	}
	if removed > 0 {
		c.logger.Info("purged past events", zap.Int("removed", removed))
	}
}

// Stop halts the loop and waits for an in-flight sweep to finish
func (c *PastEventCleanup) Stop() {
	close(c.stop)
	<-c.done
}
