package controllers

import (
	"context"
	"time"

	"cryptoapp/src/scheduler"
	"cryptoapp/src/services"

	"github.com/sirupsen/logrus"
)

const (
	FullReplayTask         = "holdings-replay"
	scheduledReplayTimeout = 10 * time.Minute
)

// ReplayAll rebuilds every holding from its ledger.
func (c *Controller) ReplayAll(ctx context.Context) (*services.ReplayResult, error) {
	return c.HoldingService.ReplayAll(ctx)
}

// ReplayPortfolio rebuilds the holdings of a single portfolio.
func (c *Controller) ReplayPortfolio(ctx context.Context, portfolioID int64) (*services.ReplayResult, error) {
	return c.HoldingService.ReplayPortfolio(ctx, portfolioID)
}

// ScheduleReplay (re)schedules the full ledger replay. An empty cronSpec disables it.
func (c *Controller) ScheduleReplay(cronSpec string) error {
	c.SchedulerMutex.Lock()
	if existingTask, exists := c.Schedulers[FullReplayTask]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, FullReplayTask)
	}
	c.SchedulerMutex.Unlock()

	if cronSpec == "" {
		return nil
	}

	newTask, err := scheduler.NewScheduledTask(cronSpec, c.runScheduledReplay)
	if err != nil {
		return err
	}

	c.SchedulerMutex.Lock()
	c.Schedulers[FullReplayTask] = newTask
	c.SchedulerMutex.Unlock()
	return nil
}

func (c *Controller) runScheduledReplay() {
	ctx, cancel := context.WithTimeout(context.Background(), scheduledReplayTimeout)
	defer cancel()

	result, err := c.ReplayAll(ctx)
	if err != nil {
		c.Logger.WithError(err).Error("scheduled holdings replay failed")
		return
	}
	c.Logger.WithFields(logrus.Fields{
		"portfolios": result.Portfolios,
		"upserted":   result.Upserted,
		"deleted":    result.Deleted,
		"unchanged":  result.Unchanged,
	}).Info("scheduled holdings replay finished")
}
