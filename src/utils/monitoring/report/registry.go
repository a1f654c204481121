package report

import (
	"go.uber.org/atomic"
)

type RegistryErrors struct {
	CommitConflicts      atomic.Uint64 `json:"commit_conflicts"`
	RefundTransferErrors atomic.Uint64 `json:"refund_transfer_errors"`
	DbStoreErrors        atomic.Uint64 `json:"db_store_errors"`
	PublishErrors        atomic.Uint64 `json:"publish_errors"`
	PublishGivenUp       atomic.Uint64 `json:"publish_given_up"`
	AuditViolations      atomic.Uint64 `json:"audit_violations"`
}

type RegistryState struct {
	ListingsCommitted atomic.Uint64 `json:"listings_committed"`
	ListingsUpdated   atomic.Uint64 `json:"listings_updated"`
	ListingsDisabled  atomic.Uint64 `json:"listings_disabled"`
	ListingsRefunded  atomic.Uint64 `json:"listings_refunded"`
	ListingsRejected  atomic.Uint64 `json:"listings_rejected"`
	CategoriesAdded   atomic.Uint64 `json:"categories_added"`

	ProbesSent            atomic.Uint64 `json:"probes_sent"`
	ProbeRetries          atomic.Uint64 `json:"probe_retries"`
	ProbeTransportErrors  atomic.Uint64 `json:"probe_transport_errors"`
	ProbeAnsweredFailures atomic.Uint64 `json:"probe_answered_failures"`

	NextListingId   atomic.Uint64 `json:"next_listing_id"`
	NextCategoryId  atomic.Uint64 `json:"next_category_id"`
	DisabledCount   atomic.Uint64 `json:"disabled_count"`
	MessagesStored  atomic.Uint64 `json:"messages_stored"`
	MessagesPublished atomic.Uint64 `json:"messages_published"`
	AuditRuns       atomic.Uint64 `json:"audit_runs"`
}

type RegistryReport struct {
	State  RegistryState  `json:"state"`
	Errors RegistryErrors `json:"errors"`
}
