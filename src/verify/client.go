package verify

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/logger"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Prober sends one verification request to a listing's endpoint.
// A nil error means the endpoint answered successfully, a
// TransportError means the exchange never completed and an
// AnsweredError means the endpoint responded with a failure.
type Prober interface {
	Probe(ctx context.Context, request *ProbeRequest) (*ProbeResponse, error)
}

// Client probes endpoints through the web gateway
type Client struct {
	config *config.Verifier
	log    *logrus.Entry

	client  *resty.Client
	limiter *rate.Limiter
}

func NewClient(config *config.Config) (self *Client) {
	self = new(Client)
	self.log = logger.NewSublogger("verify-client")
	self.config = &config.Verifier

	self.limiter = rate.NewLimiter(rate.Limit(self.config.RateLimit), self.config.RateLimitBurst)

	self.client = resty.New().
		SetBaseURL(self.config.GatewayBaseURL).
		SetTimeout(self.config.RequestTimeout).
		SetHeader("User-Agent", "dapplist/registry").
		SetRetryCount(0).
		SetTransport(self.createTransport())

	return
}

func (self *Client) createTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	return &http.Transport{
		ForceAttemptHTTP2: true,

		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		IdleConnTimeout:     90 * time.Second,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
	}
}

func (self *Client) Probe(ctx context.Context, request *ProbeRequest) (out *ProbeResponse, err error) {
	err = self.limiter.Wait(ctx)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	resp, err := self.client.R().
		SetContext(ctx).
		SetResult(ProbeResponse{}).
		ForceContentType("application/json").
		SetHeader("Accept", "application/json").
		SetBody(request).
		Post(fmt.Sprintf("/account/%s/view/web4_get", url.PathEscape(request.AccountID)))
	if err != nil {
		// Request never completed, the endpoint's answer is unknown
		return nil, &TransportError{Err: err}
	}

	if !resp.IsSuccess() {
		return nil, &AnsweredError{Status: resp.StatusCode()}
	}

	out, ok := resp.Result().(*ProbeResponse)
	if !ok {
		return nil, &AnsweredError{Status: resp.StatusCode()}
	}

	// Any decoded response variant counts as an answer, including a bare
	// status code. Reachability is all that is verified here.
	return
}
