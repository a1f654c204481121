package verify

import (
	"errors"

	"github.com/dapplist/registry/src/registry"
	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/model"
	"github.com/dapplist/registry/src/utils/monitoring"
	"github.com/dapplist/registry/src/utils/task"
)

// Coordinator resumes create requests after probing the listed
// endpoint. The protocol is bounded: at most two probes per request.
//
//   - first probe succeeds: the listing is committed
//   - first probe is answered with a failure: the deposit is refunded
//   - first probe fails in transport: one retry is sent, nothing is
//     known about the endpoint's state so the retry asks the endpoint
//     to ignore the call's result
//   - the retry completing at all commits the listing, only another
//     transport failure refunds
//
// The deposit is therefore released exactly once per request, either
// kept on commit or returned on refund.
type Coordinator struct {
	*task.Task

	engine  *registry.Engine
	prober  Prober
	escrow  Escrow
	monitor monitoring.Monitor

	input chan *registry.PendingCreate
}

func NewCoordinator(config *config.Config) (self *Coordinator) {
	self = new(Coordinator)

	self.Task = task.NewTask(config, "coordinator").
		WithSubtaskFunc(self.run).
		WithWorkerPool(config.Verifier.NumWorkers, config.Verifier.WorkerQueueSize)

	return
}

func (self *Coordinator) WithEngine(engine *registry.Engine) *Coordinator {
	self.engine = engine
	self.input = engine.Pending
	return self
}

func (self *Coordinator) WithProber(prober Prober) *Coordinator {
	self.prober = prober
	return self
}

func (self *Coordinator) WithEscrow(escrow Escrow) *Coordinator {
	self.escrow = escrow
	return self
}

func (self *Coordinator) WithMonitor(monitor monitoring.Monitor) *Coordinator {
	self.monitor = monitor
	return self
}

func (self *Coordinator) run() (err error) {
	for pending := range self.input {
		pending := pending
		self.SubmitToWorker(func() {
			self.Process(pending)
		})
	}
	return nil
}

// Process runs the verification round trip for one pending create
func (self *Coordinator) Process(pending *registry.PendingCreate) {
	self.monitor.GetReport().Registry.State.ProbesSent.Inc()

	_, err := self.prober.Probe(self.Ctx, self.probeRequest(pending))
	if err == nil {
		self.commit(pending)
		return
	}

	var answered *AnsweredError
	if errors.As(err, &answered) {
		self.monitor.GetReport().Registry.State.ProbeAnsweredFailures.Inc()

		if pending.Retried {
			// The endpoint was told to ignore the call's result, any
			// completed exchange counts as verified
			self.commit(pending)
			return
		}

		self.Log.WithField("token", pending.Token).
			WithField("status", answered.Status).
			Info("Endpoint answered with failure, refunding")
		self.refund(pending, model.OutcomeKindRefunded, err.Error())
		return
	}

	// Transport failure, the endpoint's state is unknown
	self.monitor.GetReport().Registry.State.ProbeTransportErrors.Inc()

	if !pending.Retried {
		pending.Retried = true
		self.monitor.GetReport().Registry.State.ProbeRetries.Inc()
		self.Log.WithField("token", pending.Token).Info("Probe transport failed, retrying once")
		self.Process(pending)
		return
	}

	self.Log.WithField("token", pending.Token).
		WithError(err).
		Warn("Retry transport failed, refunding")
	self.refund(pending, model.OutcomeKindRefunded, "endpoint unreachable")
}

// probeRequest builds the payload for the current attempt. The retry
// request carries the optional collections present but empty, that is
// the endpoint's signal to ignore the call's result.
func (self *Coordinator) probeRequest(pending *registry.PendingCreate) (out *ProbeRequest) {
	out = &ProbeRequest{
		AccountID: pending.Input.DappAccount,
		Path:      "/",
	}

	if pending.Retried {
		out.Params = map[string]string{}
		out.Query = map[string]string{}
		out.Preloads = []string{}
	}

	return
}

func (self *Coordinator) commit(pending *registry.PendingCreate) {
	listing, err := self.engine.CommitVerified(pending)
	if err != nil {
		// Lost the uniqueness race between validation and verification
		self.Log.WithField("token", pending.Token).
			WithError(err).
			Warn("Verified listing no longer unique, rejecting")
		self.refund(pending, model.OutcomeKindRejected, err.Error())
		return
	}

	self.Log.WithField("token", pending.Token).
		WithField("id", listing.ID).
		Debug("Pending create committed")
}

// refund returns the deposit and records the terminal outcome. A failed
// transfer is reported but does not block the outcome, the deposit stays
// recoverable through the escrow service's own ledger.
func (self *Coordinator) refund(pending *registry.PendingCreate, kind, reason string) {
	if pending.Deposit.Sign() > 0 {
		err := self.escrow.Refund(self.Ctx, pending.Submitter, pending.Deposit, pending.Token)
		if err != nil {
			self.Log.WithField("token", pending.Token).
				WithError(err).
				Error("Failed to return deposit")
			self.monitor.GetReport().Registry.Errors.RefundTransferErrors.Inc()
		}
	}

	self.engine.RecordRefund(pending, kind, reason)
}
