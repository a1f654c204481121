package verify

import (
	"fmt"
)

// ProbeRequest is the payload sent to the listed account's web
// endpoint. The first attempt leaves the optional collections nil, the
// retry sends them present but empty to signal the endpoint that the
// response result is to be ignored.
type ProbeRequest struct {
	AccountID string `json:"account_id"`
	Path      string `json:"path"`

	Params   map[string]string `json:"params,omitempty"`
	Query    map[string]string `json:"query,omitempty"`
	Preloads []string          `json:"preloads,omitempty"`
}

// ProbeResponse is the endpoint's answer. Exactly one of Body and
// BodyURL is expected to be set.
type ProbeResponse struct {
	Status      int               `json:"status,omitempty"`
	ContentType string            `json:"contentType,omitempty"`
	Body        string            `json:"body,omitempty"`
	BodyURL     string            `json:"bodyUrl,omitempty"`
	PreloadURLs map[string]string `json:"preloadUrls,omitempty"`
}

// TransportError means the probe never completed, nothing is known
// about the endpoint's answer
type TransportError struct {
	Err error
}

func (self *TransportError) Error() string {
	return fmt.Sprintf("probe transport failed: %s", self.Err)
}

func (self *TransportError) Unwrap() error {
	return self.Err
}

// AnsweredError means the endpoint completed the exchange but reported
// a failure
type AnsweredError struct {
	Status int
}

func (self *AnsweredError) Error() string {
	return fmt.Sprintf("endpoint answered with failure status %d", self.Status)
}
