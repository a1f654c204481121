package verify

import (
	"context"
	"math/big"
	"testing"

	"github.com/dapplist/registry/src/registry"
	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/model"
	monitor_registry "github.com/dapplist/registry/src/utils/monitoring/registry"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const guardian = "guardian.near"

// Answers probes from a scripted list of outcomes, one per attempt
type fakeProber struct {
	outcomes []error
	requests []*ProbeRequest
}

func (self *fakeProber) Probe(ctx context.Context, request *ProbeRequest) (*ProbeResponse, error) {
	self.requests = append(self.requests, request)
	outcome := self.outcomes[len(self.requests)-1]
	if outcome != nil {
		return nil, outcome
	}
	return &ProbeResponse{Status: 200, Body: "ok"}, nil
}

type refund struct {
	recipient string
	amount    *big.Int
}

type fakeEscrow struct {
	refunds []refund
	err     error
}

func (self *fakeEscrow) Refund(ctx context.Context, recipient string, amount *big.Int, memo string) error {
	if self.err != nil {
		return self.err
	}
	self.refunds = append(self.refunds, refund{recipient: recipient, amount: amount})
	return nil
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}

type CoordinatorTestSuite struct {
	suite.Suite
	config      *config.Config
	engine      *registry.Engine
	prober      *fakeProber
	escrow      *fakeEscrow
	coordinator *Coordinator
	fee         *big.Int
}

func (s *CoordinatorTestSuite) SetupTest() {
	s.config = config.Default()
	s.config.Registry.BootstrapGuardians = []string{guardian}

	var err error
	s.engine, err = registry.NewEngine(s.config)
	require.Nil(s.T(), err)
	s.engine = s.engine.WithMonitor(monitor_registry.NewMonitor())
	s.fee = s.engine.ListingFee()

	s.prober = new(fakeProber)
	s.escrow = new(fakeEscrow)

	s.coordinator = NewCoordinator(s.config).
		WithEngine(s.engine).
		WithProber(s.prober).
		WithEscrow(s.escrow).
		WithMonitor(monitor_registry.NewMonitor())
}

// Submits a create and returns the pending request awaiting verification
func (s *CoordinatorTestSuite) pending(slug, account string) *registry.PendingCreate {
	input := &registry.ListingInput{
		DappAccount: account,
		Slug:        slug,
		Title:       "Test App",
	}

	_, err := s.engine.Create(input, "alice.near", s.fee)
	require.Nil(s.T(), err)

	return <-s.engine.Pending
}

func (s *CoordinatorTestSuite) outcome(kind string) *model.ListingNotification {
	for {
		select {
		case notification := <-s.engine.Notifications:
			if notification.Kind == kind {
				return notification
			}
		default:
			s.T().Fatalf("no %s notification", kind)
			return nil
		}
	}
}

func (s *CoordinatorTestSuite) TestSuccessfulProbeCommits() {
	s.prober.outcomes = []error{nil}

	s.coordinator.Process(s.pending("app", "app.near"))

	require.Len(s.T(), s.prober.requests, 1)
	require.Nil(s.T(), s.prober.requests[0].Params)
	require.Nil(s.T(), s.prober.requests[0].Query)
	require.Nil(s.T(), s.prober.requests[0].Preloads)

	listing, err := s.engine.GetListingBySlug("app")
	require.Nil(s.T(), err)
	require.True(s.T(), *listing.Active)

	// Deposit is kept, nothing to return
	require.Empty(s.T(), s.escrow.refunds)
	s.outcome(model.OutcomeKindCommitted)
}

func (s *CoordinatorTestSuite) TestAnsweredFailureRefunds() {
	s.prober.outcomes = []error{&AnsweredError{Status: 500}}

	s.coordinator.Process(s.pending("app", "app.near"))

	require.Len(s.T(), s.prober.requests, 1)

	_, err := s.engine.GetListingBySlug("app")
	var notFound *registry.NotFoundError
	require.ErrorAs(s.T(), err, &notFound)

	// The whole deposit flows back, exactly once
	require.Len(s.T(), s.escrow.refunds, 1)
	require.Equal(s.T(), "alice.near", s.escrow.refunds[0].recipient)
	require.Equal(s.T(), s.fee, s.escrow.refunds[0].amount)

	notification := s.outcome(model.OutcomeKindRefunded)
	require.Equal(s.T(), s.fee.String(), notification.Deposit)
}

func (s *CoordinatorTestSuite) TestTransportFailureRetriesOnce() {
	s.prober.outcomes = []error{&TransportError{Err: context.DeadlineExceeded}, nil}

	s.coordinator.Process(s.pending("app", "app.near"))

	require.Len(s.T(), s.prober.requests, 2)

	// The retry marks the collections present but empty
	retry := s.prober.requests[1]
	require.NotNil(s.T(), retry.Params)
	require.Empty(s.T(), retry.Params)
	require.NotNil(s.T(), retry.Query)
	require.NotNil(s.T(), retry.Preloads)

	_, err := s.engine.GetListingBySlug("app")
	require.Nil(s.T(), err)
	require.Empty(s.T(), s.escrow.refunds)
}

func (s *CoordinatorTestSuite) TestRetryCommitsEvenOnAnsweredFailure() {
	s.prober.outcomes = []error{
		&TransportError{Err: context.DeadlineExceeded},
		&AnsweredError{Status: 500},
	}

	s.coordinator.Process(s.pending("app", "app.near"))

	// The first attempt may have gone through on the endpoint's side,
	// so a completed retry counts as verified
	require.Len(s.T(), s.prober.requests, 2)
	_, err := s.engine.GetListingBySlug("app")
	require.Nil(s.T(), err)
	require.Empty(s.T(), s.escrow.refunds)
	s.outcome(model.OutcomeKindCommitted)
}

func (s *CoordinatorTestSuite) TestSecondTransportFailureRefunds() {
	s.prober.outcomes = []error{
		&TransportError{Err: context.DeadlineExceeded},
		&TransportError{Err: context.DeadlineExceeded},
	}

	s.coordinator.Process(s.pending("app", "app.near"))

	// Probing is bounded to two attempts per request
	require.Len(s.T(), s.prober.requests, 2)

	_, err := s.engine.GetListingBySlug("app")
	var notFound *registry.NotFoundError
	require.ErrorAs(s.T(), err, &notFound)

	require.Len(s.T(), s.escrow.refunds, 1)
	s.outcome(model.OutcomeKindRefunded)
}

func (s *CoordinatorTestSuite) TestLostUniquenessRaceRejects() {
	pendingA := s.pending("app", "a.near")
	pendingB := s.pending("app2", "b.near")
	pendingB.Input.Slug = pendingA.Input.Slug

	s.prober.outcomes = []error{nil, nil}

	s.coordinator.Process(pendingA)
	s.coordinator.Process(pendingB)

	listing, err := s.engine.GetListingBySlug("app")
	require.Nil(s.T(), err)
	require.Equal(s.T(), "a.near", listing.DappAccount)

	// The loser gets its deposit back
	require.Len(s.T(), s.escrow.refunds, 1)
	require.Equal(s.T(), "alice.near", s.escrow.refunds[0].recipient)
	s.outcome(model.OutcomeKindRejected)
}

func (s *CoordinatorTestSuite) TestZeroDepositSkipsEscrow() {
	input := &registry.ListingInput{
		DappAccount: "app.near",
		Slug:        "app",
		Title:       "Test App",
	}
	_, err := s.engine.Create(input, guardian, nil)
	require.Nil(s.T(), err)
	pending := <-s.engine.Pending

	s.prober.outcomes = []error{&AnsweredError{Status: 500}}
	s.coordinator.Process(pending)

	require.Empty(s.T(), s.escrow.refunds)
	s.outcome(model.OutcomeKindRefunded)
}

func (s *CoordinatorTestSuite) TestFailedTransferStillRecordsOutcome() {
	s.escrow.err = context.DeadlineExceeded
	s.prober.outcomes = []error{&AnsweredError{Status: 500}}

	s.coordinator.Process(s.pending("app", "app.near"))

	// The outcome is recorded even when the transfer fails
	s.outcome(model.OutcomeKindRefunded)
	require.Equal(s.T(), uint64(1),
		s.coordinator.monitor.GetReport().Registry.Errors.RefundTransferErrors.Load())
}
