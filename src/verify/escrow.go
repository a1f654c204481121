package verify

import (
	"context"
	"errors"
	"math/big"

	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/logger"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Escrow returns held deposits to their submitters
type Escrow interface {
	Refund(ctx context.Context, recipient string, amount *big.Int, memo string) error
}

// EscrowClient talks to the payment service holding listing deposits
type EscrowClient struct {
	config *config.Escrow
	log    *logrus.Entry

	client *resty.Client
}

func NewEscrowClient(config *config.Config) (self *EscrowClient) {
	self = new(EscrowClient)
	self.log = logger.NewSublogger("escrow-client")
	self.config = &config.Escrow

	self.client = resty.New().
		SetBaseURL(self.config.BaseURL).
		SetTimeout(self.config.RequestTimeout).
		SetHeader("User-Agent", "dapplist/registry").
		SetAuthToken(self.config.APIToken).
		SetRetryCount(0)

	return
}

// Refund transfers the amount back to the recipient. Transfer failures
// are not retried here, the caller decides what to do with them.
func (self *EscrowClient) Refund(ctx context.Context, recipient string, amount *big.Int, memo string) (err error) {
	resp, err := self.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetBody(map[string]string{
			"recipient": recipient,
			"amount":    amount.String(),
			"memo":      memo,
		}).
		Post("/v1/transfers")
	if err != nil {
		return
	}

	if !resp.IsSuccess() {
		self.log.WithField("status", resp.StatusCode()).
			WithField("recipient", recipient).
			Debug("Transfer rejected")
		return errors.New("transfer rejected: " + resp.Status())
	}

	return nil
}
