package monitor_registry

import (
	"net/http"
	"time"

	"github.com/dapplist/registry/src/utils/monitoring/report"
	"github.com/dapplist/registry/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int

	collector *Collector

	// History of store errors, used to detect a stuck pipeline
	StoreErrors *deque.Deque[uint64]
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:      &report.RunReport{},
		Registry: &report.RegistryReport{},
	}

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorUptime).
		WithPeriodicSubtaskFunc(time.Minute, self.monitorStoreErrors)
	return
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize

	self.StoreErrors = deque.New[uint64](self.historySize)

	return self
}

func (self *Monitor) Clear() {
	self.StoreErrors.Clear()
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func (self *Monitor) monitorUptime() (err error) {
	up := time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()
	self.Report.Run.State.UpForSeconds.Store(uint64(up))
	return
}

func (self *Monitor) monitorStoreErrors() (err error) {
	self.StoreErrors.PushBack(self.Report.Registry.Errors.DbStoreErrors.Load())
	if self.StoreErrors.Len() > self.historySize {
		self.StoreErrors.PopFront()
	}
	return
}

// IsOK reports false when every sample in the history window saw new
// database errors
func (self *Monitor) IsOK() bool {
	if self.StoreErrors == nil || self.StoreErrors.Len() < self.historySize {
		return true
	}
	return self.StoreErrors.Back() == self.StoreErrors.Front()
}

func (self *Monitor) OnGet(c *gin.Context) {
	c.JSON(http.StatusOK, &self.Report)
}
