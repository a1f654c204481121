package response

import (
	"github.com/dapplist/registry/src/registry"
)

type SubmitListing struct {
	// Token identifying the create request in outcome notifications
	Token string `json:"token"`
}

type Listings struct {
	Listings []*registry.Listing `json:"listings"`
	Offset   int                 `json:"offset"`
	Limit    int                 `json:"limit"`
}

type Categories struct {
	Categories []*registry.Category `json:"categories"`
	Offset     int                  `json:"offset"`
	Limit      int                  `json:"limit"`
}

type Category struct {
	*registry.Category
	NumListings int `json:"num_listings"`
}

type Guardians struct {
	Guardians []string `json:"guardians"`
}

type Stats struct {
	NumListings   int    `json:"num_listings"`
	DisabledCount uint64 `json:"disabled_count"`
	ListingFee    string `json:"listing_fee"`
}
