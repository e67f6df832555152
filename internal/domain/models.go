// Package domain defines the request and response shapes that cross the
// gateway boundary. Nothing here is persisted: every value lives for exactly
// one request/response cycle.
package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

// Defaults substituted for absent client parameters.
const (
	DefaultLocation     = "Suisse Romande"
	DefaultContractType = "Tous"
	UnknownRIASECCode   = "Inconnu"
	DefaultCheckoutMode = "payment"
)

// ErrNotObject is returned when a job offer is not a JSON object.
var ErrNotObject = errors.New("job offer must be a JSON object")

// SearchRequest is the JSON payload of POST /search.
type SearchRequest struct {
	Query    string `json:"query" example:"Coach"`
	Location string `json:"location,omitempty" example:"Genève"`
	Type     string `json:"type,omitempty" example:"CDI"`
}

// JobOffer is a single offer as produced by the language model, usually
// carrying id, title, company, location, salary, type, url, postedAt and
// description. The gateway only checks that each offer is a JSON object and
// otherwise passes it through verbatim.
type JobOffer json.RawMessage

// MarshalJSON emits the offer unchanged.
func (o JobOffer) MarshalJSON() ([]byte, error) {
	if len(o) == 0 {
		return []byte("null"), nil
	}
	return o, nil
}

// UnmarshalJSON accepts JSON objects only.
func (o *JobOffer) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ErrNotObject
	}
	*o = append((*o)[:0], trimmed...)
	return nil
}

// SearchResponse wraps the offers returned by POST /search.
type SearchResponse struct {
	Jobs []JobOffer `json:"jobs"`
}

// AnalyzeRequest is the JSON payload of POST /analyze.
type AnalyzeRequest struct {
	URL string `json:"url" example:"https://www.jobup.ch/fr/emplois/detail/123"`
}

// AnalysisResult is the model's reading of one job offer. MatchScore is
// always serialised, as null when the model gave none.
type AnalysisResult struct {
	Summary    string   `json:"summary"`
	Insights   string   `json:"insights"`
	Pros       []string `json:"pros"`
	Cons       []string `json:"cons"`
	MatchScore *float64 `json:"matchScore" extensions:"x-nullable"`
}

// SuggestionsRequest is the JSON payload of POST /suggestions. TestResults is
// the front-end's psychometric state; only riasec.result.code is read.
type SuggestionsRequest struct {
	TestResults json.RawMessage `json:"testResults,omitempty" swaggertype:"object"`
}

// RIASECCode extracts testResults.riasec.result.code, falling back to
// UnknownRIASECCode when any level is missing, blank or not a string.
func (r SuggestionsRequest) RIASECCode() string {
	if len(r.TestResults) == 0 {
		return UnknownRIASECCode
	}
	var probe struct {
		RIASEC struct {
			Result struct {
				Code json.RawMessage `json:"code"`
			} `json:"result"`
		} `json:"riasec"`
	}
	if err := json.Unmarshal(r.TestResults, &probe); err != nil {
		return UnknownRIASECCode
	}
	var code string
	if err := json.Unmarshal(probe.RIASEC.Result.Code, &code); err != nil {
		return UnknownRIASECCode
	}
	if code = strings.TrimSpace(code); code == "" {
		return UnknownRIASECCode
	}
	return code
}

// CheckoutRequest is the JSON payload of POST /create-checkout.
type CheckoutRequest struct {
	PriceID    string `json:"priceId" example:"price_1PExample"`
	SuccessURL string `json:"successUrl" example:"https://www.jobseed.online/dashboard?payment=success"`
	CancelURL  string `json:"cancelUrl" example:"https://www.jobseed.online/dashboard?payment=cancelled"`
	Mode       string `json:"mode,omitempty" example:"payment"`
}

// CheckoutResult carries the hosted checkout page the client redirects to.
type CheckoutResult struct {
	URL string `json:"url"`
}

// Health is the body of GET /health.
type Health struct {
	Status string `json:"status" example:"ok"`
	Worker string `json:"worker" example:"jobseed-api"`
}
