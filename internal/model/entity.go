package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NotAvailable is the display fallback for absent optional text fields.
const NotAvailable = "N/A"

// Entity is one company discovered by the enrichment API.
//
// Design decision: Optional fields are pointers so an absent field can be
// told apart from a present-but-empty one. A present empty string renders
// as-is; only absence falls back to the documented display defaults. The
// Get accessors own that fallback, so rendering code never touches nil.
// JSON null is treated the same as an absent field.
type Entity struct {
	// Name is the company name. It is the only required entity field.
	Name string `json:"name"`

	// Industry is the industry label, if the API resolved one.
	Industry *string `json:"industry"`

	// Headcount is the employee count.
	Headcount *int `json:"headcount"`

	// Size is the company size bracket label (for example "51-200").
	Size *string `json:"size"`

	// City is the primary city of operations.
	City *string `json:"city"`

	// Score is the prospect score on a 0-100 scale. The raw JSON number
	// is kept so reports print the score the way the document wrote it:
	// 87 and 87.0 are the same value but different texts.
	Score *json.Number `json:"score"`

	// ScoreBreakdown itemizes the score by factor, in document order.
	ScoreBreakdown ScoreBreakdown `json:"scoreBreakdown"` //nolint:tagliatelle // enrichment API wire format

	// Signals are the discovery signals attached to this company,
	// in document order.
	Signals []Signal `json:"signals"`
}

// GetIndustry returns the industry, or NotAvailable if absent.
func (e *Entity) GetIndustry() string {
	return stringOr(e.Industry, NotAvailable)
}

// GetHeadcount returns the headcount, or 0 if absent.
func (e *Entity) GetHeadcount() int {
	if e.Headcount == nil {
		return 0
	}
	return *e.Headcount
}

// GetSize returns the size bracket, or NotAvailable if absent.
func (e *Entity) GetSize() string {
	return stringOr(e.Size, NotAvailable)
}

// GetCity returns the city, or NotAvailable if absent.
func (e *Entity) GetCity() string {
	return stringOr(e.City, NotAvailable)
}

// GetScore returns the score as a number, or 0 if absent.
func (e *Entity) GetScore() float64 {
	if e.Score == nil {
		return 0
	}
	value, err := e.Score.Float64()
	if err != nil {
		return 0
	}
	return value
}

// ScoreNumber returns the score exactly as the document wrote it, or "0"
// if absent.
func (e *Entity) ScoreNumber() json.Number {
	if e.Score == nil {
		return "0"
	}
	return *e.Score
}

// CountSignals returns how many signals of the given type the entity
// carries. Counting covers the full signal list, not only the signals
// shown in the report.
func (e *Entity) CountSignals(signalType string) int {
	count := 0
	for i := range e.Signals {
		if e.Signals[i].Type == signalType {
			count++
		}
	}
	return count
}

// HasSignal reports whether the entity carries at least one signal of the
// given type.
func (e *Entity) HasSignal(signalType string) bool {
	return e.CountSignals(signalType) > 0
}

// Signal is one discovery signal observed for a company, such as a hiring
// push or a funding round.
type Signal struct {
	// Type is the signal type identifier. It is the only required
	// signal field.
	Type string `json:"type"`

	// Confidence is the API's confidence in the signal on a 0-1 scale.
	// Out-of-range values are passed through untouched.
	Confidence *float64 `json:"confidence"`

	// Description is the human-readable signal text.
	Description *string `json:"description"`

	// Source names where the signal was observed.
	Source *string `json:"source"`
}

// GetConfidence returns the confidence, or 0 if absent.
func (s *Signal) GetConfidence() float64 {
	if s.Confidence == nil {
		return 0
	}
	return *s.Confidence
}

// ConfidencePercent returns the confidence scaled to a percentage.
func (s *Signal) ConfidencePercent() float64 {
	return s.GetConfidence() * 100
}

// GetDescription returns the description, or the empty string if absent.
func (s *Signal) GetDescription() string {
	return stringOr(s.Description, "")
}

// GetSource returns the source, or NotAvailable if absent.
func (s *Signal) GetSource() string {
	return stringOr(s.Source, NotAvailable)
}

// ScoreFactor is one named component of an entity score. The score keeps
// the document's own number text, like Entity.Score.
type ScoreFactor struct {
	Name  string      `json:"name"`
	Score json.Number `json:"score"`
}

// ScoreBreakdown is the ordered list of score factors for one entity.
//
// Design decision: The wire format is a JSON object, but Go maps do not
// preserve key order and the report must list factors exactly as the API
// sent them. We decode the object token by token into a slice instead of
// using a map, and marshal it back as an object in the same order.
type ScoreBreakdown []ScoreFactor

// UnmarshalJSON decodes a JSON object into factors in document order.
// JSON null decodes as an absent breakdown.
func (b *ScoreBreakdown) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to decode score breakdown: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("score breakdown must be a JSON object, got %v", tok)
	}

	factors := make(ScoreBreakdown, 0)
	positions := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to decode score breakdown key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("score breakdown key must be a string, got %v", keyTok)
		}

		var value json.Number
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("failed to decode score breakdown value for %q: %w", key, err)
		}
		// A repeated key keeps its first position and takes the last
		// value, the usual JSON object semantics.
		if at, exists := positions[key]; exists {
			factors[at].Score = value
			continue
		}
		positions[key] = len(factors)
		factors = append(factors, ScoreFactor{Name: key, Score: value})
	}

	*b = factors
	return nil
}

// MarshalJSON encodes the breakdown as a JSON object with factors in
// preserved order.
func (b ScoreBreakdown) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, factor := range b {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(factor.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to encode score breakdown key %q: %w", factor.Name, err)
		}
		buf.Write(name)
		buf.WriteByte(':')
		value, err := json.Marshal(factor.Score)
		if err != nil {
			return nil, fmt.Errorf("failed to encode score breakdown value for %q: %w", factor.Name, err)
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// stringOr returns the pointed-to string, or fallback if the pointer is nil.
func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
