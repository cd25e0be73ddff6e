package model

import (
	"encoding/json"
	"fmt"
)

// Result is the payload of a successful discovery document.
//
// Design decision: We keep the decoded wire data and the computed summary in
// one struct rather than passing them around separately. Writers and the
// history store always want both, and serializing them together gives tools
// a single self-contained report object.
type Result struct {
	// Entities are the discovered companies, in document order.
	Entities []Entity `json:"entities"`

	// DataQuality is the provenance metadata reported by the enrichment API.
	DataQuality DataQuality `json:"dataQuality"` //nolint:tagliatelle // enrichment API wire format

	// Summary is computed from the entities, not decoded from the document.
	// Use EnsureSummary to populate it.
	Summary *Summary `json:"summary,omitempty"`
}

// DataQuality describes how the discovery data was gathered.
type DataQuality struct {
	// SourcesUsed lists the data sources the API consulted.
	SourcesUsed []string `json:"sourcesUsed"` //nolint:tagliatelle // enrichment API wire format

	// SignalCount is the total signal count as reported by the API.
	// It is a trusted pass-through: the report prints it verbatim and it
	// may legitimately disagree with the signals present on the entities.
	SignalCount int `json:"signalCount"` //nolint:tagliatelle // enrichment API wire format
}

// DecodeResult decodes the data payload of a successful envelope.
// Callers are expected to have validated the payload against the input
// schema first; decode errors here indicate a document the schema does
// not cover.
func DecodeResult(data []byte) (*Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode discovery result: %w", err)
	}
	return &result, nil
}

// CompanyCount returns the number of discovered companies.
func (r *Result) CompanyCount() int {
	return len(r.Entities)
}

// ReportedSignalCount returns the signal total the enrichment API reported.
func (r *Result) ReportedSignalCount() int {
	return r.DataQuality.SignalCount
}

// DetectedSignalCount returns the number of signals actually attached to
// the entities. Compare with ReportedSignalCount to spot drift.
func (r *Result) DetectedSignalCount() int {
	count := 0
	for i := range r.Entities {
		count += len(r.Entities[i].Signals)
	}
	return count
}

// TopScore returns the highest entity score, or 0 for an empty result.
func (r *Result) TopScore() float64 {
	top := 0.0
	for i := range r.Entities {
		if score := r.Entities[i].GetScore(); score > top {
			top = score
		}
	}
	return top
}

// EnsureSummary computes and attaches the summary if it is not present yet,
// and returns it.
func (r *Result) EnsureSummary() *Summary {
	if r.Summary == nil {
		r.Summary = NewSummary(r)
	}
	return r.Summary
}
