package verify

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dapplist/registry/src/utils/config"

	"github.com/stretchr/testify/require"
)

func TestEscrowRefund(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/transfers", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]string
		require.Nil(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice.near", body["recipient"])
		require.Equal(t, "100", body["amount"])
		require.Equal(t, "tok-1", body["memo"])

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	conf := config.Default()
	conf.Escrow.BaseURL = server.URL
	conf.Escrow.APIToken = "test-token"

	client := NewEscrowClient(conf)
	err := client.Refund(context.Background(), "alice.near", big.NewInt(100), "tok-1")
	require.Nil(t, err)
}

func TestEscrowRefundRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	conf := config.Default()
	conf.Escrow.BaseURL = server.URL

	client := NewEscrowClient(conf)
	err := client.Refund(context.Background(), "alice.near", big.NewInt(100), "tok-1")
	require.NotNil(t, err)
}
