package registry

import (
	"encoding/json"
	"math/big"
	"strconv"

	"golang.org/x/exp/slices"
)

func sortIDs(v []uint64)     { slices.Sort(v) }
func sortStrings(v []string) { slices.Sort(v) }

func formatID(id uint64) string { return strconv.FormatUint(id, 10) }

type (
	ListingID  = uint64
	CategoryID = uint64
	AccountID  = string
	Slug       = string
)

// Durable directory entry for one external application
type Listing struct {
	ID ListingID `json:"id"`

	// Account that registered the listing and may edit it
	AddedBy AccountID `json:"added_by_account_id"`

	// Account the listing points to, fixed after creation
	DappAccount AccountID `json:"dapp_account_id"`

	Slug  Slug   `json:"slug"`
	Title string `json:"title"`

	Categories map[CategoryID]struct{} `json:"-"`

	Oneliner    string `json:"oneliner,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`

	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Github   string `json:"github,omitempty"`
	Discord  string `json:"discord,omitempty"`

	Symbol       string                  `json:"symbol,omitempty"`
	Contracts    map[AccountID]struct{}  `json:"-"`
	TokenAddress AccountID               `json:"token_address,omitempty"`

	// nil means never moderated and treated as visible
	Active *bool `json:"active,omitempty"`
}

// IsDisabled reports whether the listing was moderator-disabled.
// An unset flag counts as visible.
func (self *Listing) IsDisabled() bool {
	return self.Active != nil && !*self.Active
}

func (self *Listing) clone() (out *Listing) {
	out = new(Listing)
	*out = *self

	out.Categories = make(map[CategoryID]struct{}, len(self.Categories))
	for id := range self.Categories {
		out.Categories[id] = struct{}{}
	}

	out.Contracts = make(map[AccountID]struct{}, len(self.Contracts))
	for id := range self.Contracts {
		out.Contracts[id] = struct{}{}
	}

	if self.Active != nil {
		active := *self.Active
		out.Active = &active
	}

	return
}

// CategoryIDs returns the category set as a sorted slice
func (self *Listing) CategoryIDs() (out []CategoryID) {
	out = make([]CategoryID, 0, len(self.Categories))
	for id := range self.Categories {
		out = append(out, id)
	}
	sortIDs(out)
	return
}

// ContractIDs returns the contract set as a sorted slice
func (self *Listing) ContractIDs() (out []AccountID) {
	out = make([]AccountID, 0, len(self.Contracts))
	for id := range self.Contracts {
		out = append(out, id)
	}
	sortStrings(out)
	return
}

// MarshalJSON renders the category set as decimal id strings, matching
// the format clients submit them in
func (self *Listing) MarshalJSON() ([]byte, error) {
	type alias Listing

	categories := make([]string, 0, len(self.Categories))
	for _, id := range self.CategoryIDs() {
		categories = append(categories, strconv.FormatUint(id, 10))
	}

	return json.Marshal(struct {
		*alias
		Categories []string    `json:"categories"`
		Contracts  []AccountID `json:"contracts,omitempty"`
	}{(*alias)(self), categories, self.ContractIDs()})
}

// Incoming create/update payload, fields are sanitized before validation
type ListingInput struct {
	// Optional owner-of-record override, empty keeps the previous owner
	AddedBy AccountID `json:"added_by_account_id,omitempty"`

	DappAccount AccountID `json:"dapp_account_id"`

	Slug  Slug   `json:"slug"`
	Title string `json:"title"`

	// Category ids as decimal strings, unknown ids are dropped
	Categories []string `json:"categories"`

	Oneliner    string `json:"oneliner,omitempty"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`

	Twitter  string `json:"twitter,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	Medium   string `json:"medium,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Github   string `json:"github,omitempty"`
	Discord  string `json:"discord,omitempty"`

	Symbol       string      `json:"symbol,omitempty"`
	Contracts    []AccountID `json:"contracts,omitempty"`
	TokenAddress AccountID   `json:"token_address,omitempty"`

	Active *bool `json:"active,omitempty"`
}

// Named tag, immutable once created
type Category struct {
	ID    CategoryID `json:"id"`
	Slug  string     `json:"slug"`
	Title string     `json:"title"`
}

// Create request travelling through the verification round trip.
// Carries everything needed to resume: payload, escrow, submitter
// and whether the probe was already retried.
type PendingCreate struct {
	// Token identifying this create request in logs and events
	Token string

	Input       *ListingInput
	CategoryIDs []CategoryID

	Deposit   *big.Int
	Submitter AccountID

	// True once the probe was re-sent after a transport failure
	Retried bool
}
