package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DefaultErrorMessage is reported when a failed envelope carries no error field.
const DefaultErrorMessage = "Unknown error"

// Envelope is the outer wrapper of a discovery document as produced by the
// enrichment API. Every response carries a success flag; failed responses
// carry an error message, successful ones carry the result payload.
//
// Design decision: Data stays a raw message at this level. When success is
// false the payload is never decoded or validated, so a malformed payload
// cannot mask the failure the API reported. This mirrors the API contract:
// a failed envelope has exactly one meaningful field, the error message.
type Envelope struct {
	// Success reports whether discovery completed. An absent field counts
	// as a failure.
	Success bool `json:"success"`

	// Error is the failure message. Only meaningful when Success is false.
	// A nil pointer means the field was absent from the document.
	Error *string `json:"error"`

	// Data is the undecoded result payload.
	Data json.RawMessage `json:"data"`
}

// ParseEnvelope decodes the envelope of a discovery document. The data
// payload is kept raw for later validation and decoding.
func ParseEnvelope(doc []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(doc, &env); err != nil {
		return nil, fmt.Errorf("failed to parse discovery document: %w", err)
	}
	return &env, nil
}

// Failed reports whether the enrichment API reported a failed discovery.
func (e *Envelope) Failed() bool {
	return !e.Success
}

// ErrorMessage returns the failure message from the envelope. An absent
// error field yields DefaultErrorMessage; a present but empty one is
// returned as-is.
func (e *Envelope) ErrorMessage() string {
	if e.Error == nil {
		return DefaultErrorMessage
	}
	return *e.Error
}

// HasData reports whether the envelope carries a result payload.
// A JSON null payload counts as absent.
func (e *Envelope) HasData() bool {
	data := bytes.TrimSpace(e.Data)
	return len(data) > 0 && !bytes.Equal(data, []byte("null"))
}

// DiscoveryError is the failure reported by an envelope whose success flag
// is false. It is distinct from decode and validation errors: callers print
// the message on stdout as the report body and exit non-zero without any
// further diagnostics.
type DiscoveryError struct {
	// Message is the failure message from the envelope.
	Message string
}

// Error implements the error interface.
func (e *DiscoveryError) Error() string {
	return e.Message
}
