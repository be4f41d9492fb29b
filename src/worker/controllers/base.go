package controllers

import (
	"sync"

	"cryptoapp/src/scheduler"
	"cryptoapp/src/services"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	HoldingService services.HoldingServiceI
	Logger         *logrus.Logger

	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(holdingService services.HoldingServiceI, logger *logrus.Logger) *Controller {
	return &Controller{
		HoldingService: holdingService,
		Logger:         logger,
		Schedulers:     map[string]*scheduler.ScheduledTask{},
	}
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	schedulers := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		schedulers[name] = task
	}
	return schedulers
}

// StopAll cancels every scheduled task.
func (c *Controller) StopAll() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
