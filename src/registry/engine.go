package registry

import (
	"encoding/json"
	"math/big"
	"strconv"
	"sync"
	"time"

	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/logger"
	"github.com/dapplist/registry/src/utils/model"
	"github.com/dapplist/registry/src/utils/monitoring"
	"github.com/dapplist/registry/src/utils/monitoring/report"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
)

// Engine owns the listing store, its derived indices, the category
// registry and the guardian set. Every mutating entry point serializes
// on one mutex, so an index update is atomic from the outside.
//
// Create is the only two-step operation: it validates and hands a
// PendingCreate to the verification coordinator through the Pending
// channel, the coordinator later resumes by calling CommitVerified or
// RecordRefund. Between the two steps no lock is held.
type Engine struct {
	Config *config.Config

	log     *logrus.Entry
	monitor monitoring.Monitor

	mtx sync.Mutex

	guardians  map[AccountID]struct{}
	categories map[CategoryID]*Category
	index      *indexStore

	nextListingID  ListingID
	nextCategoryID CategoryID
	disabledCount  uint64

	listingFee *big.Int

	// Validated create requests awaiting verification
	Pending chan *PendingCreate

	// Observable listing transitions, consumed by the store pipeline
	Notifications chan *model.ListingNotification
}

func NewEngine(config *config.Config) (self *Engine, err error) {
	self = new(Engine)
	self.Config = config
	self.log = logger.NewSublogger("engine")

	self.guardians = make(map[AccountID]struct{})
	for _, account := range config.Registry.BootstrapGuardians {
		self.guardians[account] = struct{}{}
	}

	self.categories = make(map[CategoryID]*Category)
	self.index = newIndexStore(func(id CategoryID) bool {
		_, ok := self.categories[id]
		return ok
	})

	self.listingFee, err = parseAmount(config.Registry.ListingFee)
	if err != nil {
		return
	}

	self.Pending = make(chan *PendingCreate, config.Verifier.WorkerQueueSize)
	self.Notifications = make(chan *model.ListingNotification, 100)

	return
}

func (self *Engine) WithMonitor(monitor monitoring.Monitor) *Engine {
	self.monitor = monitor
	return self
}

func parseAmount(s string) (out *big.Int, err error) {
	if s == "" {
		return big.NewInt(0), nil
	}
	out, ok := new(big.Int).SetString(s, 10)
	if !ok {
		err = &ValidationError{Field: "amount", Reason: "not a decimal number"}
	}
	return
}

// ListingFee returns the fee required from non-guardian submitters
func (self *Engine) ListingFee() *big.Int {
	return new(big.Int).Set(self.listingFee)
}

func (self *Engine) IsGuardian(account AccountID) bool {
	self.mtx.Lock()
	defer self.mtx.Unlock()
	_, ok := self.guardians[account]
	return ok
}

// Create validates the input and hands it over for verification.
// The call returns as soon as the request is accepted, the listing only
// becomes visible once the verification round trip commits it.
func (self *Engine) Create(input *ListingInput, submitter AccountID, deposit *big.Int) (token string, err error) {
	if deposit == nil {
		deposit = big.NewInt(0)
	}

	input.sanitize()

	err = self.validate(input)
	if err != nil {
		return
	}

	categoryIDs, err := parseCategoryIDs(input.Categories)
	if err != nil {
		return
	}

	self.mtx.Lock()
	if _, ok := self.index.lookupBySlug(input.Slug); ok {
		self.mtx.Unlock()
		err = &ConflictError{Field: "slug", Value: input.Slug}
		return
	}
	if _, ok := self.index.lookupByAccount(input.DappAccount); ok {
		self.mtx.Unlock()
		err = &ConflictError{Field: "dapp_account_id", Value: input.DappAccount}
		return
	}
	_, isGuardian := self.guardians[submitter]
	self.mtx.Unlock()

	if !isGuardian && deposit.Cmp(self.listingFee) < 0 {
		err = &PaymentRequiredError{Required: self.ListingFee(), Attached: deposit}
		return
	}

	token = xid.New().String()

	self.log.WithField("token", token).
		WithField("slug", input.Slug).
		WithField("account", input.DappAccount).
		Debug("Create accepted, awaiting verification")

	self.Pending <- &PendingCreate{
		Token:       token,
		Input:       input,
		CategoryIDs: categoryIDs,
		Deposit:     deposit,
		Submitter:   submitter,
	}

	return
}

// CommitVerified installs a verified pending listing into all indices.
// Uniqueness is re-checked: a create that lost the race between
// validation and verification is rejected instead of overwriting the
// earlier winner.
func (self *Engine) CommitVerified(pending *PendingCreate) (listing *Listing, err error) {
	self.mtx.Lock()

	if _, ok := self.index.lookupBySlug(pending.Input.Slug); ok {
		self.mtx.Unlock()
		self.report().Errors.CommitConflicts.Inc()
		err = &ConflictError{Field: "slug", Value: pending.Input.Slug}
		return
	}
	if _, ok := self.index.lookupByAccount(pending.Input.DappAccount); ok {
		self.mtx.Unlock()
		self.report().Errors.CommitConflicts.Inc()
		err = &ConflictError{Field: "dapp_account_id", Value: pending.Input.DappAccount}
		return
	}

	id := self.nextListingID

	active := true
	listing = buildListing(id, pending.Input, pending.CategoryIDs)
	listing.Active = &active
	if listing.AddedBy == "" {
		listing.AddedBy = pending.Submitter
	}

	self.index.upsert(id, nil, listing)
	self.nextListingID++

	self.report().State.ListingsCommitted.Inc()
	self.report().State.NextListingId.Store(self.nextListingID)

	snapshot := listing.clone()
	self.mtx.Unlock()

	self.log.WithField("token", pending.Token).
		WithField("id", id).
		WithField("slug", snapshot.Slug).
		Info("Listing committed")

	self.notify(&model.ListingNotification{
		Token:       pending.Token,
		Kind:        model.OutcomeKindCommitted,
		ListingId:   snapshot.ID,
		Slug:        snapshot.Slug,
		DappAccount: snapshot.DappAccount,
		Submitter:   pending.Submitter,
		Deposit:     pending.Deposit.String(),
		Listing:     marshalListing(snapshot),
	})

	return snapshot, nil
}

// RecordRefund emits the terminal event for a create request that was
// not committed. The deposit transfer itself is the coordinator's job.
func (self *Engine) RecordRefund(pending *PendingCreate, kind, reason string) {
	switch kind {
	case model.OutcomeKindRefunded:
		self.report().State.ListingsRefunded.Inc()
	case model.OutcomeKindRejected:
		self.report().State.ListingsRejected.Inc()
	}

	self.notify(&model.ListingNotification{
		Token:       pending.Token,
		Kind:        kind,
		DappAccount: pending.Input.DappAccount,
		Slug:        pending.Input.Slug,
		Submitter:   pending.Submitter,
		Deposit:     pending.Deposit.String(),
		Reason:      reason,
	})
}

// Update replaces a listing's mutable fields wholesale. Permitted for
// guardians and for the recorded owner. Owners pay the listing fee
// again and cannot touch the active flag.
func (self *Engine) Update(id ListingID, input *ListingInput, requester AccountID, deposit *big.Int) (listing *Listing, err error) {
	if deposit == nil {
		deposit = big.NewInt(0)
	}

	input.sanitize()

	err = self.validate(input)
	if err != nil {
		return
	}

	categoryIDs, err := parseCategoryIDs(input.Categories)
	if err != nil {
		return
	}

	self.mtx.Lock()

	old, ok := self.index.get(id)
	if !ok {
		self.mtx.Unlock()
		err = &NotFoundError{Kind: "listing", Key: strconv.FormatUint(id, 10)}
		return
	}

	_, isGuardian := self.guardians[requester]
	isOwner := old.AddedBy == requester
	if !isGuardian && !isOwner {
		self.mtx.Unlock()
		err = &AccessDeniedError{Caller: requester}
		return
	}

	if !isGuardian {
		if deposit.Cmp(self.listingFee) < 0 {
			self.mtx.Unlock()
			err = &PaymentRequiredError{Required: self.ListingFee(), Attached: deposit}
			return
		}
		// Owners keep whatever moderation state the listing is in
		input.Active = old.Active
	}

	if input.DappAccount != old.DappAccount {
		self.mtx.Unlock()
		err = &ImmutableFieldError{Field: "dapp_account_id"}
		return
	}

	if input.Slug != old.Slug {
		if _, taken := self.index.lookupBySlug(input.Slug); taken {
			self.mtx.Unlock()
			err = &ConflictError{Field: "slug", Value: input.Slug}
			return
		}
	}

	listing = buildListing(id, input, categoryIDs)
	if listing.AddedBy == "" {
		listing.AddedBy = old.AddedBy
	}

	self.adjustDisabled(old.Active, listing.Active)
	self.index.upsert(id, old, listing)

	self.report().State.ListingsUpdated.Inc()

	snapshot := listing.clone()
	self.mtx.Unlock()

	self.notify(&model.ListingNotification{
		Kind:        model.OutcomeKindUpdated,
		ListingId:   snapshot.ID,
		Slug:        snapshot.Slug,
		DappAccount: snapshot.DappAccount,
		Submitter:   requester,
		Listing:     marshalListing(snapshot),
	})

	return snapshot, nil
}

// Disable hides a listing from the directory. Guardian only. The
// listing keeps its category set but is removed from every category
// membership entry, so category browsing reflects visible listings.
// Repeated disables are no-ops for the counter and the indices.
func (self *Engine) Disable(id ListingID, requester AccountID) (listing *Listing, err error) {
	self.mtx.Lock()

	if _, ok := self.guardians[requester]; !ok {
		self.mtx.Unlock()
		err = &AccessDeniedError{Caller: requester}
		return
	}

	old, ok := self.index.get(id)
	if !ok {
		self.mtx.Unlock()
		err = &NotFoundError{Kind: "listing", Key: strconv.FormatUint(id, 10)}
		return
	}

	listing = old.clone()
	active := false
	listing.Active = &active

	self.adjustDisabled(old.Active, listing.Active)

	self.index.removeFromCategories(id, listing)
	self.index.listings[id] = listing

	self.report().State.ListingsDisabled.Inc()

	snapshot := listing.clone()
	self.mtx.Unlock()

	self.notify(&model.ListingNotification{
		Kind:        model.OutcomeKindDisabled,
		ListingId:   snapshot.ID,
		Slug:        snapshot.Slug,
		DappAccount: snapshot.DappAccount,
		Submitter:   requester,
		Listing:     marshalListing(snapshot),
	})

	return snapshot, nil
}

// adjustDisabled is the single place the disabled counter changes on an
// active-flag transition. Called with the engine mutex held.
func (self *Engine) adjustDisabled(old, new *bool) {
	wasDisabled := old != nil && !*old
	isDisabled := new != nil && !*new

	switch {
	case !wasDisabled && isDisabled:
		self.disabledCount++
	case wasDisabled && !isDisabled:
		if self.disabledCount > 0 {
			self.disabledCount--
		}
	}

	self.report().State.DisabledCount.Store(self.disabledCount)
}

func (self *Engine) validate(input *ListingInput) error {
	limits := &self.Config.Registry
	switch {
	case len(input.Slug) > limits.MaxSlugLen:
		return &ValidationError{Field: "slug", Reason: "too long"}
	case len(input.Title) > limits.MaxTitleLen:
		return &ValidationError{Field: "title", Reason: "too long"}
	case len(input.Oneliner) > limits.MaxOnelinerLen:
		return &ValidationError{Field: "oneliner", Reason: "too long"}
	case len(input.Description) > limits.MaxDescriptionLen:
		return &ValidationError{Field: "description", Reason: "too long"}
	}
	return nil
}

func parseCategoryIDs(categories []string) (out []CategoryID, err error) {
	out = make([]CategoryID, 0, len(categories))
	for _, s := range categories {
		id, parseErr := strconv.ParseUint(s, 10, 64)
		if parseErr != nil {
			err = &ValidationError{Field: "categories", Reason: "not a category id: " + s}
			return nil, err
		}
		out = append(out, id)
	}
	return
}

func buildListing(id ListingID, input *ListingInput, categoryIDs []CategoryID) (listing *Listing) {
	listing = &Listing{
		ID:           id,
		AddedBy:      input.AddedBy,
		DappAccount:  input.DappAccount,
		Slug:         input.Slug,
		Title:        input.Title,
		Categories:   make(map[CategoryID]struct{}, len(categoryIDs)),
		Oneliner:     input.Oneliner,
		Description:  input.Description,
		LogoURL:      input.LogoURL,
		Twitter:      input.Twitter,
		Facebook:     input.Facebook,
		Medium:       input.Medium,
		Telegram:     input.Telegram,
		Github:       input.Github,
		Discord:      input.Discord,
		Symbol:       input.Symbol,
		Contracts:    make(map[AccountID]struct{}, len(input.Contracts)),
		TokenAddress: input.TokenAddress,
		Active:       input.Active,
	}

	for _, categoryID := range categoryIDs {
		listing.Categories[categoryID] = struct{}{}
	}
	for _, contract := range input.Contracts {
		listing.Contracts[contract] = struct{}{}
	}

	return
}

func marshalListing(listing *Listing) json.RawMessage {
	data, err := json.Marshal(listing)
	if err != nil {
		return nil
	}
	return data
}

func (self *Engine) notify(n *model.ListingNotification) {
	n.Timestamp = time.Now().UnixMilli()
	self.Notifications <- n
}

func (self *Engine) report() *report.RegistryReport {
	return self.monitor.GetReport().Registry
}
