package model

import (
	"github.com/jackc/pgtype"
)

const (
	TableListingOutcome = "listing_outcomes"

	OutcomeKindCommitted = "committed"
	OutcomeKindUpdated   = "updated"
	OutcomeKindDisabled  = "disabled"
	OutcomeKindRefunded  = "refunded"
	OutcomeKindRejected  = "rejected"
)

// Observable log of create-protocol outcomes and moderation events
type ListingOutcome struct {
	Token       string // NOT NULL
	Kind        string // NOT NULL
	Submitter   pgtype.Varchar
	DappAccount pgtype.Varchar
	Deposit     pgtype.Varchar
	Reason      pgtype.Varchar
	Payload     pgtype.JSONB
	CreatedAt   int64 // NOT NULL, unix millis
}

func NewListingOutcome() (self *ListingOutcome) {
	self = new(ListingOutcome)

	_ = self.Submitter.Set(nil)
	_ = self.DappAccount.Set(nil)
	_ = self.Deposit.Set(nil)
	_ = self.Reason.Set(nil)
	_ = self.Payload.Set(nil)

	return
}

func (ListingOutcome) TableName() string {
	return TableListingOutcome
}
