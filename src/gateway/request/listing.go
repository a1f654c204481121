package request

import (
	"github.com/dapplist/registry/src/registry"
)

type SubmitListing struct {
	Listing registry.ListingInput `json:"listing"`

	// Attached deposit in base units, decimal string
	Deposit string `json:"deposit,omitempty"`
}

type AddCategory struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type SetGuardian struct {
	Account string `json:"account"`
}

type SetDisabledCount struct {
	Count uint64 `json:"count"`
}
