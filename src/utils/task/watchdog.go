package task

import (
	"time"

	"github.com/dapplist/registry/src/utils/config"
)

// Restarts the watched task when the isOK callback reports a problem
type Watchdog struct {
	*Task

	// Creates the watched task, called again upon restart
	taskFunc func() *Task

	// Returns false when the watched task needs a restart
	isOK func() bool

	watched *Task
}

func NewWatchdog(config *config.Config) (self *Watchdog) {
	self = new(Watchdog)

	self.Task = NewTask(config, "watchdog").
		WithOnBeforeStart(self.startWatched).
		WithPeriodicSubtaskFunc(time.Minute, self.check).
		WithOnStop(self.stopWatched)

	return
}

func (self *Watchdog) WithTask(f func() *Task) *Watchdog {
	self.taskFunc = f
	return self
}

func (self *Watchdog) WithIsOK(f func() bool) *Watchdog {
	self.isOK = f
	return self
}

func (self *Watchdog) startWatched() (err error) {
	self.watched = self.taskFunc()
	return self.watched.Start()
}

func (self *Watchdog) stopWatched() {
	if self.watched != nil {
		self.watched.Stop()
	}
}

func (self *Watchdog) check() (err error) {
	if self.isOK == nil || self.isOK() {
		return
	}

	self.Log.Warn("Watched task is not OK, restarting")

	self.watched.StopWait()

	return self.startWatched()
}
