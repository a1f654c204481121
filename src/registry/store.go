package registry

import (
	"encoding/json"

	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/model"
	"github.com/dapplist/registry/src/utils/monitoring"
	"github.com/dapplist/registry/src/utils/task"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store persists listing notifications in batches. Each batch writes
// the outcome log and upserts listing snapshots in one transaction,
// successfully stored notifications are forwarded for publishing.
type Store struct {
	*task.SinkTask[*model.ListingNotification]

	db      *gorm.DB
	monitor monitoring.Monitor

	Output chan *model.ListingNotification
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)

	self.Output = make(chan *model.ListingNotification, 100)

	self.SinkTask = task.NewSinkTask[*model.ListingNotification](config, "store").
		WithBatchSize(config.Registry.StoreBatchSize).
		WithOnFlush(config.Registry.StoreInterval, self.flush)

	return
}

func (self *Store) WithDB(db *gorm.DB) *Store {
	self.db = db
	return self
}

func (self *Store) WithInputChannel(input chan *model.ListingNotification) *Store {
	self.SinkTask = self.SinkTask.WithInputChannel(input)
	return self
}

func (self *Store) WithMonitor(monitor monitoring.Monitor) *Store {
	self.monitor = monitor
	return self
}

func (self *Store) flush(notifications []*model.ListingNotification) error {
	if len(notifications) == 0 {
		return nil
	}

	outcomes := make([]*model.ListingOutcome, 0, len(notifications))
	snapshots := make([]*model.Listing, 0, len(notifications))
	for _, notification := range notifications {
		outcomes = append(outcomes, mapOutcome(notification))
		if len(notification.Listing) > 0 {
			snapshots = append(snapshots, mapSnapshot(notification))
		}
	}

	self.Log.WithField("len", len(notifications)).Debug("Saving listing notifications")
	err := self.db.Transaction(func(tx *gorm.DB) (err error) {
		err = tx.CreateInBatches(outcomes, len(outcomes)).Error
		if err != nil {
			return
		}

		if len(snapshots) > 0 {
			err = tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "listing_id"}},
				UpdateAll: true,
			}).
				CreateInBatches(snapshots, len(snapshots)).
				Error
		}
		return
	})

	if err != nil {
		self.Log.WithError(err).Error("Failed to save listing notifications")
		self.monitor.GetReport().Registry.Errors.DbStoreErrors.Inc()
		return err
	}

	self.monitor.GetReport().Registry.State.MessagesStored.Add(uint64(len(notifications)))

	for _, notification := range notifications {
		select {
		case self.Output <- notification:
		case <-self.Ctx.Done():
			return nil
		}
	}

	return nil
}

func mapOutcome(notification *model.ListingNotification) (out *model.ListingOutcome) {
	out = model.NewListingOutcome()
	out.Token = notification.Token
	out.Kind = notification.Kind
	out.CreatedAt = notification.Timestamp

	if notification.Submitter != "" {
		_ = out.Submitter.Set(notification.Submitter)
	}
	if notification.DappAccount != "" {
		_ = out.DappAccount.Set(notification.DappAccount)
	}
	if notification.Deposit != "" {
		_ = out.Deposit.Set(notification.Deposit)
	}
	if notification.Reason != "" {
		_ = out.Reason.Set(notification.Reason)
	}
	if len(notification.Listing) > 0 {
		_ = out.Payload.Set([]byte(notification.Listing))
	}
	return
}

func mapSnapshot(notification *model.ListingNotification) (out *model.Listing) {
	out = model.NewListing()
	out.ListingId = notification.ListingId
	out.UpdatedAt = notification.Timestamp

	_ = out.Slug.Set(notification.Slug)
	_ = out.DappAccount.Set(notification.DappAccount)
	_ = out.Payload.Set([]byte(notification.Listing))

	var snapshot struct {
		AddedBy    string   `json:"added_by_account_id"`
		Title      string   `json:"title"`
		Categories []string `json:"categories"`
		Active     *bool    `json:"active"`
	}
	err := json.Unmarshal(notification.Listing, &snapshot)
	if err != nil {
		return
	}

	_ = out.AddedBy.Set(snapshot.AddedBy)
	_ = out.Title.Set(snapshot.Title)
	_ = out.Categories.Set(snapshot.Categories)
	if snapshot.Active != nil {
		_ = out.Active.Set(*snapshot.Active)
	}
	return
}
