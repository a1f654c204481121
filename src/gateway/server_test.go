package gateway

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dapplist/registry/src/gateway/request"
	"github.com/dapplist/registry/src/gateway/response"
	"github.com/dapplist/registry/src/registry"
	"github.com/dapplist/registry/src/utils/config"
	monitor_registry "github.com/dapplist/registry/src/utils/monitoring/registry"

	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	tokenSecret = "test-secret"
	guardian    = "guardian.near"
	submitter   = "alice.near"
)

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

type ServerTestSuite struct {
	suite.Suite
	config *config.Config
	engine *registry.Engine
	server *Server
}

func (s *ServerTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.Gateway.TokenSecret = tokenSecret
	s.config.Registry.BootstrapGuardians = []string{guardian}

	var err error
	s.engine, err = registry.NewEngine(s.config)
	require.Nil(s.T(), err)
	s.engine = s.engine.WithMonitor(monitor_registry.NewMonitor())

	s.server = NewServer(s.config).
		WithEngine(s.engine).
		WithMonitor(monitor_registry.NewMonitor())
}

func (s *ServerTestSuite) bearer(account string) string {
	token := jwt.New()
	require.Nil(s.T(), token.Set(jwt.SubjectKey, account))

	signed, err := jwt.Sign(token, jwa.HS256, []byte(tokenSecret))
	require.Nil(s.T(), err)
	return "Bearer " + string(signed)
}

func (s *ServerTestSuite) do(method, path string, body any, account string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.Nil(s.T(), json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if account != "" {
		req.Header.Set("Authorization", s.bearer(account))
	}

	w := httptest.NewRecorder()
	s.server.Router.ServeHTTP(w, req)
	return w
}

// Runs the create flow to completion, skipping verification
func (s *ServerTestSuite) commit(slug, account string) {
	in := &request.SubmitListing{
		Listing: registry.ListingInput{
			DappAccount: account,
			Slug:        slug,
			Title:       "Test App",
		},
	}

	w := s.do(http.MethodPost, "/v1/listings", in, guardian)
	require.Equal(s.T(), http.StatusAccepted, w.Code)

	var out response.SubmitListing
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(s.T(), out.Token)

	pending := <-s.engine.Pending
	_, err := s.engine.CommitVerified(pending)
	require.Nil(s.T(), err)
}

func (s *ServerTestSuite) TestSubmitRequiresAuth() {
	w := s.do(http.MethodPost, "/v1/listings", &request.SubmitListing{}, "")
	require.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *ServerTestSuite) TestBadTokenRejected() {
	req := httptest.NewRequest(http.MethodPost, "/v1/listings", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	w := httptest.NewRecorder()
	s.server.Router.ServeHTTP(w, req)
	require.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *ServerTestSuite) TestSubmitAndRead() {
	s.commit("app", "app.near")

	w := s.do(http.MethodGet, "/v1/listings/slug/app", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var listing registry.Listing
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &listing))
	require.Equal(s.T(), "app", listing.Slug)
	require.Equal(s.T(), "app.near", listing.DappAccount)

	w = s.do(http.MethodGet, "/v1/listings/0", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/v1/listings/account/app.near", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *ServerTestSuite) TestListingNotFound() {
	w := s.do(http.MethodGet, "/v1/listings/17", nil, "")
	require.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *ServerTestSuite) TestPaymentRequired() {
	in := &request.SubmitListing{
		Listing: registry.ListingInput{
			DappAccount: "app.near",
			Slug:        "app",
			Title:       "Test App",
		},
	}

	w := s.do(http.MethodPost, "/v1/listings", in, submitter)
	require.Equal(s.T(), http.StatusPaymentRequired, w.Code)
}

func (s *ServerTestSuite) TestConflictMapsTo409() {
	s.commit("app", "app.near")

	in := &request.SubmitListing{
		Listing: registry.ListingInput{
			DappAccount: "other.near",
			Slug:        "app",
			Title:       "Test App",
		},
	}

	w := s.do(http.MethodPost, "/v1/listings", in, guardian)
	require.Equal(s.T(), http.StatusConflict, w.Code)
}

func (s *ServerTestSuite) TestValidationMapsTo400() {
	in := &request.SubmitListing{
		Listing: registry.ListingInput{
			DappAccount: "app.near",
			Slug:        "app",
			Title:       "Test App",
			Categories:  []string{"not-a-number"},
		},
	}

	w := s.do(http.MethodPost, "/v1/listings", in, guardian)
	require.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *ServerTestSuite) TestDisableGuardianOnly() {
	s.commit("app", "app.near")

	w := s.do(http.MethodPost, "/v1/listings/0/disable", nil, submitter)
	require.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.do(http.MethodPost, "/v1/listings/0/disable", nil, guardian)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var stats response.Stats
	w = s.do(http.MethodGet, "/v1/stats", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(s.T(), uint64(1), stats.DisabledCount)
}

func (s *ServerTestSuite) TestCategoriesAndGuardians() {
	w := s.do(http.MethodPost, "/v1/categories", &request.AddCategory{Slug: "defi", Title: "DeFi"}, guardian)
	require.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.do(http.MethodGet, "/v1/categories/0", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var category response.Category
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &category))
	require.Equal(s.T(), "defi", category.Slug)
	require.Equal(s.T(), 0, category.NumListings)

	w = s.do(http.MethodPost, "/v1/guardians", &request.SetGuardian{Account: "bob.near"}, guardian)
	require.Equal(s.T(), http.StatusNoContent, w.Code)

	var guardians response.Guardians
	w = s.do(http.MethodGet, "/v1/guardians", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &guardians))
	require.Contains(s.T(), guardians.Guardians, "bob.near")

	w = s.do(http.MethodDelete, "/v1/guardians/bob.near", nil, guardian)
	require.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *ServerTestSuite) TestListingsPagination() {
	s.commit("a", "a.near")
	s.commit("b", "b.near")

	w := s.do(http.MethodGet, "/v1/listings?offset=1&limit=1", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var out response.Listings
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(s.T(), out.Listings, 1)
	require.Equal(s.T(), "b", out.Listings[0].Slug)
}

func (s *ServerTestSuite) TestExplicitZeroLimitReadsToTheEnd() {
	s.config.Gateway.DefaultLimit = 1
	s.commit("a", "a.near")
	s.commit("b", "b.near")
	s.commit("c", "c.near")

	w := s.do(http.MethodGet, "/v1/listings", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var capped response.Listings
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &capped))
	require.Len(s.T(), capped.Listings, 1)

	w = s.do(http.MethodGet, "/v1/listings?limit=0", nil, "")
	require.Equal(s.T(), http.StatusOK, w.Code)

	var all response.Listings
	require.Nil(s.T(), json.Unmarshal(w.Body.Bytes(), &all))
	require.Len(s.T(), all.Listings, 3)
}
