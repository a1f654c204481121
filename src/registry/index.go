package registry

// indexStore keeps the derived lookup structures in sync with the listing
// store. All four mappings are mutated together under the engine mutex, a
// caller never observes a partial update.
type indexStore struct {
	listings map[ListingID]*Listing

	// Insertion order of committed listings, ids are dense so this only grows
	order []ListingID

	idBySlug    map[Slug]ListingID
	idByAccount map[AccountID]ListingID
	idsByCategory map[CategoryID]map[ListingID]struct{}

	// Reports whether a category id exists in the category registry
	known func(CategoryID) bool
}

func newIndexStore(known func(CategoryID) bool) (self *indexStore) {
	self = new(indexStore)
	self.listings = make(map[ListingID]*Listing)
	self.idBySlug = make(map[Slug]ListingID)
	self.idByAccount = make(map[AccountID]ListingID)
	self.idsByCategory = make(map[CategoryID]map[ListingID]struct{})
	self.known = known
	return
}

// addCategory installs an empty membership entry for a new category
func (self *indexStore) addCategory(id CategoryID) {
	self.idsByCategory[id] = make(map[ListingID]struct{})
}

// upsert removes the old listing's index entries and installs the new ones.
// old is nil for listings committed for the first time. Category ids missing
// from the category registry are silently dropped from the new state.
func (self *indexStore) upsert(id ListingID, old, new *Listing) {
	if old != nil {
		delete(self.idBySlug, old.Slug)
		delete(self.idByAccount, old.DappAccount)
		self.removeFromCategories(id, old)
	} else {
		self.order = append(self.order, id)
	}

	for categoryID := range new.Categories {
		if !self.known(categoryID) {
			delete(new.Categories, categoryID)
			continue
		}
		self.idsByCategory[categoryID][id] = struct{}{}
	}

	self.idBySlug[new.Slug] = id
	self.idByAccount[new.DappAccount] = id
	self.listings[id] = new
}

// removeFromCategories clears the listing from every membership entry it is
// currently part of, the listing's own category set is left untouched
func (self *indexStore) removeFromCategories(id ListingID, listing *Listing) {
	for categoryID := range listing.Categories {
		members, ok := self.idsByCategory[categoryID]
		if !ok {
			continue
		}
		delete(members, id)
	}
}

func (self *indexStore) get(id ListingID) (listing *Listing, ok bool) {
	listing, ok = self.listings[id]
	return
}

func (self *indexStore) lookupBySlug(slug Slug) (id ListingID, ok bool) {
	id, ok = self.idBySlug[slug]
	return
}

func (self *indexStore) lookupByAccount(account AccountID) (id ListingID, ok bool) {
	id, ok = self.idByAccount[account]
	return
}

func (self *indexStore) membersOfCategory(id CategoryID) (members map[ListingID]struct{}, ok bool) {
	members, ok = self.idsByCategory[id]
	return
}
