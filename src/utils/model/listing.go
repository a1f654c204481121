package model

import (
	"github.com/jackc/pgtype"
)

const (
	TableListing = "listings"
)

// Snapshot of a committed listing, mirrors the in-memory registry state
type Listing struct {
	ListingId   uint64 // NOT NULL
	Slug        pgtype.Varchar
	DappAccount pgtype.Varchar
	AddedBy     pgtype.Varchar
	Title       pgtype.Varchar
	Categories  pgtype.JSONB
	Payload     pgtype.JSONB
	Active      pgtype.Bool
	UpdatedAt   int64 // NOT NULL, unix millis
}

func NewListing() (self *Listing) {
	self = new(Listing)

	// Defaults
	_ = self.Slug.Set(nil)
	_ = self.DappAccount.Set(nil)
	_ = self.AddedBy.Set(nil)
	_ = self.Title.Set(nil)
	_ = self.Categories.Set(nil)
	_ = self.Payload.Set(nil)
	_ = self.Active.Set(nil)

	return
}

func (Listing) TableName() string {
	return TableListing
}
