package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// ScheduledTask runs a function on a cron schedule until cancelled. A run that is
// still in progress when the next one is due causes that next run to be skipped.
type ScheduledTask struct {
	spec   string
	cronID cron.EntryID
	cron   *cron.Cron
	cancel chan struct{}
	once   sync.Once
}

func NewScheduledTask(cronSpec string, taskFunc func()) (*ScheduledTask, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.DefaultLogger),
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))
	cancel := make(chan struct{})
	task := &ScheduledTask{
		spec:   cronSpec,
		cron:   c,
		cancel: cancel,
	}

	id, err := c.AddFunc(cronSpec, func() {
		select {
		case <-cancel:
			return
		default:
			taskFunc()
		}
	})
	if err != nil {
		return nil, err
	}

	task.cronID = id
	c.Start()
	return task, nil
}

func (s *ScheduledTask) Spec() string {
	return s.spec
}

// Next returns the time of the next run, or the zero time once cancelled.
func (s *ScheduledTask) Next() time.Time {
	return s.cron.Entry(s.cronID).Next
}

// Cancel stops the schedule. It does not wait for a running invocation and may be
// called more than once.
func (s *ScheduledTask) Cancel() {
	s.once.Do(func() {
		s.cron.Remove(s.cronID)
		close(s.cancel)
		s.cron.Stop()
	})
}
