package monitoring

import (
	"github.com/dapplist/registry/src/utils/monitoring/report"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Implemented by per-feature monitors, consumed by the REST server
// and the watchdog
type Monitor interface {
	GetReport() *report.Report
	GetPrometheusCollector() prometheus.Collector
	IsOK() bool
	OnGet(c *gin.Context)
	Clear()
}
