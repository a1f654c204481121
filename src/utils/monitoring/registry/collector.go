package monitor_registry

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	StartTimestamp *prometheus.Desc
	UpForSeconds   *prometheus.Desc

	ListingsCommitted *prometheus.Desc
	ListingsUpdated   *prometheus.Desc
	ListingsDisabled  *prometheus.Desc
	ListingsRefunded  *prometheus.Desc
	ListingsRejected  *prometheus.Desc
	CategoriesAdded   *prometheus.Desc

	ProbesSent            *prometheus.Desc
	ProbeRetries          *prometheus.Desc
	ProbeTransportErrors  *prometheus.Desc
	ProbeAnsweredFailures *prometheus.Desc

	NextListingId     *prometheus.Desc
	NextCategoryId    *prometheus.Desc
	DisabledCount     *prometheus.Desc
	MessagesStored    *prometheus.Desc
	MessagesPublished *prometheus.Desc
	AuditRuns         *prometheus.Desc
	NumWatchdogRestarts *prometheus.Desc

	CommitConflicts      *prometheus.Desc
	RefundTransferErrors *prometheus.Desc
	DbStoreErrors        *prometheus.Desc
	PublishErrors        *prometheus.Desc
	PublishGivenUp       *prometheus.Desc
	AuditViolations      *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "registry",
	}

	return &Collector{
		StartTimestamp: prometheus.NewDesc("start_timestamp", "", nil, labels),
		UpForSeconds:   prometheus.NewDesc("up_for_seconds", "", nil, labels),

		ListingsCommitted: prometheus.NewDesc("listings_committed", "", nil, labels),
		ListingsUpdated:   prometheus.NewDesc("listings_updated", "", nil, labels),
		ListingsDisabled:  prometheus.NewDesc("listings_disabled", "", nil, labels),
		ListingsRefunded:  prometheus.NewDesc("listings_refunded", "", nil, labels),
		ListingsRejected:  prometheus.NewDesc("listings_rejected", "", nil, labels),
		CategoriesAdded:   prometheus.NewDesc("categories_added", "", nil, labels),

		ProbesSent:            prometheus.NewDesc("probes_sent", "", nil, labels),
		ProbeRetries:          prometheus.NewDesc("probe_retries", "", nil, labels),
		ProbeTransportErrors:  prometheus.NewDesc("probe_transport_errors", "", nil, labels),
		ProbeAnsweredFailures: prometheus.NewDesc("probe_answered_failures", "", nil, labels),

		NextListingId:       prometheus.NewDesc("next_listing_id", "", nil, labels),
		NextCategoryId:      prometheus.NewDesc("next_category_id", "", nil, labels),
		DisabledCount:       prometheus.NewDesc("disabled_count", "", nil, labels),
		MessagesStored:      prometheus.NewDesc("messages_stored", "", nil, labels),
		MessagesPublished:   prometheus.NewDesc("messages_published", "", nil, labels),
		AuditRuns:           prometheus.NewDesc("audit_runs", "", nil, labels),
		NumWatchdogRestarts: prometheus.NewDesc("num_watchdog_restarts", "", nil, labels),

		// Errors
		CommitConflicts:      prometheus.NewDesc("error_commit_conflicts", "", nil, labels),
		RefundTransferErrors: prometheus.NewDesc("error_refund_transfer", "", nil, labels),
		DbStoreErrors:        prometheus.NewDesc("error_db_store", "", nil, labels),
		PublishErrors:        prometheus.NewDesc("error_publish", "", nil, labels),
		PublishGivenUp:       prometheus.NewDesc("error_publish_given_up", "", nil, labels),
		AuditViolations:      prometheus.NewDesc("error_audit_violations", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.StartTimestamp
	ch <- self.UpForSeconds

	ch <- self.ListingsCommitted
	ch <- self.ListingsUpdated
	ch <- self.ListingsDisabled
	ch <- self.ListingsRefunded
	ch <- self.ListingsRejected
	ch <- self.CategoriesAdded

	ch <- self.ProbesSent
	ch <- self.ProbeRetries
	ch <- self.ProbeTransportErrors
	ch <- self.ProbeAnsweredFailures

	ch <- self.NextListingId
	ch <- self.NextCategoryId
	ch <- self.DisabledCount
	ch <- self.MessagesStored
	ch <- self.MessagesPublished
	ch <- self.AuditRuns
	ch <- self.NumWatchdogRestarts

	// Errors
	ch <- self.CommitConflicts
	ch <- self.RefundTransferErrors
	ch <- self.DbStoreErrors
	ch <- self.PublishErrors
	ch <- self.PublishGivenUp
	ch <- self.AuditViolations
}

// Collect implements required collect function for all promehteus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(self.StartTimestamp, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.StartTimestamp.Load()))
	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(self.monitor.Report.Run.State.UpForSeconds.Load()))

	ch <- prometheus.MustNewConstMetric(self.ListingsCommitted, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ListingsCommitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.ListingsUpdated, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ListingsUpdated.Load()))
	ch <- prometheus.MustNewConstMetric(self.ListingsDisabled, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ListingsDisabled.Load()))
	ch <- prometheus.MustNewConstMetric(self.ListingsRefunded, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ListingsRefunded.Load()))
	ch <- prometheus.MustNewConstMetric(self.ListingsRejected, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ListingsRejected.Load()))
	ch <- prometheus.MustNewConstMetric(self.CategoriesAdded, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.CategoriesAdded.Load()))

	ch <- prometheus.MustNewConstMetric(self.ProbesSent, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ProbesSent.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProbeRetries, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ProbeRetries.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProbeTransportErrors, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ProbeTransportErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.ProbeAnsweredFailures, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.ProbeAnsweredFailures.Load()))

	ch <- prometheus.MustNewConstMetric(self.NextListingId, prometheus.GaugeValue, float64(self.monitor.Report.Registry.State.NextListingId.Load()))
	ch <- prometheus.MustNewConstMetric(self.NextCategoryId, prometheus.GaugeValue, float64(self.monitor.Report.Registry.State.NextCategoryId.Load()))
	ch <- prometheus.MustNewConstMetric(self.DisabledCount, prometheus.GaugeValue, float64(self.monitor.Report.Registry.State.DisabledCount.Load()))
	ch <- prometheus.MustNewConstMetric(self.MessagesStored, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.MessagesStored.Load()))
	ch <- prometheus.MustNewConstMetric(self.MessagesPublished, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.MessagesPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.AuditRuns, prometheus.CounterValue, float64(self.monitor.Report.Registry.State.AuditRuns.Load()))
	ch <- prometheus.MustNewConstMetric(self.NumWatchdogRestarts, prometheus.CounterValue, float64(self.monitor.Report.Run.Errors.NumWatchdogRestarts.Load()))

	// Errors
	ch <- prometheus.MustNewConstMetric(self.CommitConflicts, prometheus.CounterValue, float64(self.monitor.Report.Registry.Errors.CommitConflicts.Load()))
	ch <- prometheus.MustNewConstMetric(self.RefundTransferErrors, prometheus.CounterValue, float64(self.monitor.Report.Registry.Errors.RefundTransferErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.DbStoreErrors, prometheus.CounterValue, float64(self.monitor.Report.Registry.Errors.DbStoreErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishErrors, prometheus.CounterValue, float64(self.monitor.Report.Registry.Errors.PublishErrors.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishGivenUp, prometheus.CounterValue, float64(self.monitor.Report.Registry.Errors.PublishGivenUp.Load()))
	ch <- prometheus.MustNewConstMetric(self.AuditViolations, prometheus.CounterValue, float64(self.monitor.Report.Registry.Errors.AuditViolations.Load()))
}
