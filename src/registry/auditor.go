package registry

import (
	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/monitoring"
	"github.com/dapplist/registry/src/utils/task"

	"github.com/robfig/cron"
)

// Auditor periodically cross-checks the derived indices against the
// listing store. It only reports, repairs are a guardian's job.
type Auditor struct {
	*task.Task

	engine  *Engine
	monitor monitoring.Monitor

	cron *cron.Cron
}

func NewAuditor(config *config.Config) (self *Auditor) {
	self = new(Auditor)

	self.cron = cron.New()

	self.Task = task.NewTask(config, "auditor").
		WithOnBeforeStart(func() error {
			if config.Registry.AuditSchedule == "" {
				return nil
			}
			return self.cron.AddFunc(config.Registry.AuditSchedule, self.audit)
		}).
		WithSubtaskFunc(func() error {
			self.cron.Start()
			<-self.Ctx.Done()
			return nil
		}).
		WithOnAfterStop(func() {
			self.cron.Stop()
		})

	return
}

func (self *Auditor) WithEngine(engine *Engine) *Auditor {
	self.engine = engine
	return self
}

func (self *Auditor) WithMonitor(monitor monitoring.Monitor) *Auditor {
	self.monitor = monitor
	return self
}

func (self *Auditor) audit() {
	violations := self.engine.Audit()
	self.monitor.GetReport().Registry.State.AuditRuns.Inc()

	if len(violations) == 0 {
		self.Log.Debug("Audit passed")
		return
	}

	for _, violation := range violations {
		self.Log.WithField("violation", violation).Warn("Index audit violation")
	}
	self.monitor.GetReport().Registry.Errors.AuditViolations.Add(uint64(len(violations)))
}

// Audit verifies the mutual consistency of the four indices and the
// disabled counter. Returns a description of every violation found.
func (self *Engine) Audit() (violations []string) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	index := self.index

	if len(index.order) != len(index.listings) {
		violations = append(violations, "order length does not match listing count")
	}

	seen := make(map[ListingID]struct{}, len(index.order))
	for _, id := range index.order {
		if _, dup := seen[id]; dup {
			violations = append(violations, "duplicate id in order: "+formatID(id))
		}
		seen[id] = struct{}{}
		if _, ok := index.listings[id]; !ok {
			violations = append(violations, "ordered id has no listing: "+formatID(id))
		}
	}

	disabled := uint64(0)
	for id, listing := range index.listings {
		if got, ok := index.lookupBySlug(listing.Slug); !ok || got != id {
			violations = append(violations, "slug index mismatch for listing "+formatID(id))
		}
		if got, ok := index.lookupByAccount(listing.DappAccount); !ok || got != id {
			violations = append(violations, "account index mismatch for listing "+formatID(id))
		}
		for categoryID := range listing.Categories {
			if _, ok := self.categories[categoryID]; !ok {
				violations = append(violations, "listing "+formatID(id)+" references unknown category "+formatID(categoryID))
			}
		}
		if listing.IsDisabled() {
			disabled++
		}
	}

	for slug, id := range index.idBySlug {
		listing, ok := index.listings[id]
		if !ok || listing.Slug != slug {
			violations = append(violations, "stale slug index entry: "+slug)
		}
	}
	for account, id := range index.idByAccount {
		listing, ok := index.listings[id]
		if !ok || listing.DappAccount != account {
			violations = append(violations, "stale account index entry: "+account)
		}
	}

	for categoryID, members := range index.idsByCategory {
		if _, ok := self.categories[categoryID]; !ok {
			violations = append(violations, "membership entry for unknown category "+formatID(categoryID))
		}
		for id := range members {
			listing, ok := index.listings[id]
			if !ok {
				violations = append(violations, "category "+formatID(categoryID)+" references missing listing "+formatID(id))
				continue
			}
			if _, ok := listing.Categories[categoryID]; !ok {
				violations = append(violations, "category "+formatID(categoryID)+" references listing "+formatID(id)+" outside its set")
			}
		}
	}

	if disabled != self.disabledCount {
		violations = append(violations, "disabled counter drifted from scan")
	}

	return
}
