package registry

import (
	"encoding/json"
	"testing"

	"github.com/dapplist/registry/src/utils/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapOutcome(t *testing.T) {
	notification := &model.ListingNotification{
		Token:       "tok-1",
		Kind:        model.OutcomeKindRefunded,
		Slug:        "app",
		DappAccount: "app.near",
		Submitter:   "alice.near",
		Deposit:     "100",
		Reason:      "endpoint unreachable",
		Timestamp:   1700000000000,
	}

	out := mapOutcome(notification)
	assert.Equal(t, "tok-1", out.Token)
	assert.Equal(t, model.OutcomeKindRefunded, out.Kind)
	assert.Equal(t, int64(1700000000000), out.CreatedAt)
	assert.Equal(t, "alice.near", out.Submitter.String)
	assert.Equal(t, "100", out.Deposit.String)
	assert.Equal(t, "endpoint unreachable", out.Reason.String)
}

func TestMapSnapshot(t *testing.T) {
	active := true
	listing := &Listing{
		ID:          3,
		AddedBy:     "alice.near",
		DappAccount: "app.near",
		Slug:        "app",
		Title:       "Test App",
		Categories:  map[CategoryID]struct{}{1: {}},
		Active:      &active,
	}
	payload, err := json.Marshal(listing)
	require.Nil(t, err)

	out := mapSnapshot(&model.ListingNotification{
		Kind:      model.OutcomeKindCommitted,
		ListingId: 3,
		Slug:      "app",
		DappAccount: "app.near",
		Listing:   payload,
		Timestamp: 1700000000000,
	})

	assert.Equal(t, uint64(3), out.ListingId)
	assert.Equal(t, "app", out.Slug.String)
	assert.Equal(t, "app.near", out.DappAccount.String)
	assert.Equal(t, "alice.near", out.AddedBy.String)
	assert.Equal(t, "Test App", out.Title.String)
	assert.True(t, out.Active.Bool)
}
