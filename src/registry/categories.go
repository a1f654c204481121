package registry

import (
	"strconv"
)

// AddCategory registers a new category under the next dense id.
// Guardian only. Category slugs and titles are unique and categories
// are never removed, so ids stay contiguous.
func (self *Engine) AddCategory(slug, title string, requester AccountID) (category *Category, err error) {
	slug = FilterSlug(slug)
	title = FilterText(title)

	if slug == "" {
		err = &ValidationError{Field: "slug", Reason: "empty"}
		return
	}

	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.guardians[requester]; !ok {
		err = &AccessDeniedError{Caller: requester}
		return
	}

	for _, existing := range self.categories {
		if existing.Slug == slug {
			err = &ConflictError{Field: "slug", Value: slug}
			return
		}
		if existing.Title == title {
			err = &ConflictError{Field: "title", Value: title}
			return
		}
	}

	category = &Category{
		ID:    self.nextCategoryID,
		Slug:  slug,
		Title: title,
	}

	self.categories[category.ID] = category
	self.index.addCategory(category.ID)
	self.nextCategoryID++

	self.report().State.CategoriesAdded.Inc()
	self.report().State.NextCategoryId.Store(self.nextCategoryID)

	self.log.WithField("id", category.ID).WithField("slug", slug).Info("Category added")

	return
}

func (self *Engine) GetCategory(id CategoryID) (category *Category, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	category, ok := self.categories[id]
	if !ok {
		err = &NotFoundError{Kind: "category", Key: strconv.FormatUint(id, 10)}
	}
	return
}

// Categories returns a page of categories in id order
func (self *Engine) Categories(offset, limit int) (out []*Category) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	out = make([]*Category, 0)
	if offset < 0 {
		offset = 0
	}
	for id := CategoryID(offset); id < self.nextCategoryID; id++ {
		if limit > 0 && len(out) >= limit {
			break
		}
		out = append(out, self.categories[id])
	}
	return
}

// CategoryCount returns the number of visible listings in a category
func (self *Engine) CategoryCount(id CategoryID) (count int, err error) {
	self.mtx.Lock()
	defer self.mtx.Unlock()

	if _, ok := self.categories[id]; !ok {
		err = &NotFoundError{Kind: "category", Key: strconv.FormatUint(id, 10)}
		return
	}

	members, _ := self.index.membersOfCategory(id)
	count = len(members)
	return
}
