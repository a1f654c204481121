package verify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dapplist/registry/src/utils/config"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

type ClientTestSuite struct {
	suite.Suite
	ctx    context.Context
	cancel context.CancelFunc
	config *config.Config
}

func (s *ClientTestSuite) SetupTest() {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.config = config.Default()
}

func (s *ClientTestSuite) TearDownTest() {
	s.cancel()
}

func (s *ClientTestSuite) client(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	s.config.Verifier.GatewayBaseURL = server.URL
	return NewClient(s.config), server
}

func (s *ClientTestSuite) TestSuccessfulProbe() {
	client, server := s.client(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(s.T(), "/account/app.near/view/web4_get", r.URL.Path)

		var request ProbeRequest
		require.Nil(s.T(), json.NewDecoder(r.Body).Decode(&request))
		require.Equal(s.T(), "/", request.Path)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&ProbeResponse{Status: 200, Body: "PGh0bWw+"})
	})
	defer server.Close()

	out, err := client.Probe(s.ctx, &ProbeRequest{AccountID: "app.near", Path: "/"})
	require.Nil(s.T(), err)
	require.Equal(s.T(), "PGh0bWw+", out.Body)
}

func (s *ClientTestSuite) TestHttpErrorIsAnswered() {
	client, server := s.client(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	defer server.Close()

	_, err := client.Probe(s.ctx, &ProbeRequest{AccountID: "app.near", Path: "/"})

	var answered *AnsweredError
	require.ErrorAs(s.T(), err, &answered)
	require.Equal(s.T(), http.StatusBadGateway, answered.Status)
}

func (s *ClientTestSuite) TestFailureStatusInBodyStillAnswers() {
	client, server := s.client(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&ProbeResponse{Status: 404})
	})
	defer server.Close()

	// The bare status variant is a valid answer like any other, only the
	// completed exchange matters
	out, err := client.Probe(s.ctx, &ProbeRequest{AccountID: "app.near", Path: "/"})
	require.Nil(s.T(), err)
	require.Equal(s.T(), 404, out.Status)
}

func (s *ClientTestSuite) TestAccountIsEscapedInPath() {
	client, server := s.client(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(s.T(), "/account/evil%2F..%2Fadmin/view/web4_get", r.URL.EscapedPath())

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(&ProbeResponse{Status: 200})
	})
	defer server.Close()

	_, err := client.Probe(s.ctx, &ProbeRequest{AccountID: "evil/../admin", Path: "/"})
	require.Nil(s.T(), err)
}

func (s *ClientTestSuite) TestUnreachableEndpointIsTransport() {
	client, server := s.client(func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.Probe(s.ctx, &ProbeRequest{AccountID: "app.near", Path: "/"})

	var transport *TransportError
	require.ErrorAs(s.T(), err, &transport)
}
