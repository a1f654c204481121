package registry

import (
	"strconv"
)

// GetListing returns a snapshot of one listing
func (self *Engine) GetListing(id ListingID) (listing *Listing, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	stored, ok := self.index.get(id)
	if !ok {
		err = &NotFoundError{Kind: "listing", Key: strconv.FormatUint(id, 10)}
		return
	}
	return stored.clone(), nil
}

func (self *Engine) GetListingBySlug(slug Slug) (listing *Listing, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	id, ok := self.index.lookupBySlug(slug)
	if !ok {
		err = &NotFoundError{Kind: "listing", Key: slug}
		return
	}
	return self.index.listings[id].clone(), nil
}

func (self *Engine) GetListingByAccount(account AccountID) (listing *Listing, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	id, ok := self.index.lookupByAccount(account)
	if !ok {
		err = &NotFoundError{Kind: "listing", Key: account}
		return
	}
	return self.index.listings[id].clone(), nil
}

// Listings returns a page of listings in commit order. Offsets past the
// end yield an empty page, limit <= 0 means to the end.
func (self *Engine) Listings(offset, limit int) (out []*Listing) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out = make([]*Listing, 0)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(self.index.order) {
		return
	}

	ids := self.index.order[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	for _, id := range ids {
		out = append(out, self.index.listings[id].clone())
	}
	return
}

// CategoryListings returns the visible members of a category sorted by id
func (self *Engine) CategoryListings(id CategoryID) (out []*Listing, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.categories[id]; !ok {
		err = &NotFoundError{Kind: "category", Key: strconv.FormatUint(id, 10)}
		return
	}

	members, _ := self.index.membersOfCategory(id)
	ids := make([]ListingID, 0, len(members))
	for memberID := range members {
		ids = append(ids, memberID)
	}
	sortIDs(ids)

	out = make([]*Listing, 0, len(ids))
	for _, memberID := range ids {
		out = append(out, self.index.listings[memberID].clone())
	}
	return
}

// NumListings returns the number of committed listings
func (self *Engine) NumListings() int {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	return len(self.index.order)
}
