package model

import (
	"encoding/json"
)

// Event emitted by the registry engine for every observable listing
// transition. Persisted to the outcome log and published to Redis.
type ListingNotification struct {
	// Create-request token, empty for update/disable events
	Token string `json:"token,omitempty"`

	Kind string `json:"kind"`

	ListingId   uint64 `json:"listing_id,omitempty"`
	Slug        string `json:"slug,omitempty"`
	DappAccount string `json:"dapp_account_id"`
	Submitter   string `json:"submitter,omitempty"`

	// Deposit in base units, decimal string
	Deposit string `json:"deposit,omitempty"`

	// Why the listing was refunded or rejected
	Reason string `json:"reason,omitempty"`

	// Full listing state for committed/updated/disabled events
	Listing json.RawMessage `json:"listing,omitempty"`

	Timestamp int64 `json:"timestamp"`
}

func (self *ListingNotification) MarshalBinary() (data []byte, err error) {
	return json.Marshal(self)
}
