package schema

import (
	"errors"
	"strings"
	"testing"
)

// TestValidateResult tests result payload validation.
func TestValidateResult(t *testing.T) {
	t.Parallel()

	t.Run("accepts a complete payload", func(t *testing.T) {
		t.Parallel()

		doc := `{
			"entities": [
				{
					"name": "Gulf Freight LLC",
					"industry": "Logistics",
					"headcount": 1200,
					"size": "1001-5000",
					"city": "Dubai",
					"score": 92,
					"scoreBreakdown": {"signals": 50, "scale": 42},
					"signals": [
						{"type": "hiring-expansion", "confidence": 0.9, "description": "Hiring drivers", "source": "job-board"}
					]
				}
			],
			"dataQuality": {"sourcesUsed": ["news"], "signalCount": 1}
		}`
		if err := ValidateResult([]byte(doc)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts an empty payload", func(t *testing.T) {
		t.Parallel()

		if err := ValidateResult([]byte(`{}`)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts unknown keys", func(t *testing.T) {
		t.Parallel()

		doc := `{"entities": [{"name": "Acme", "founded": 1999}], "vendorExtra": true}`
		if err := ValidateResult([]byte(doc)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts null optional fields", func(t *testing.T) {
		t.Parallel()

		doc := `{"entities": [{"name": "Acme", "industry": null, "headcount": null, "signals": null}]}`
		if err := ValidateResult([]byte(doc)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("accepts out of range confidence", func(t *testing.T) {
		t.Parallel()

		doc := `{"entities": [{"name": "Acme", "signals": [{"type": "funding-round", "confidence": 1.8}]}]}`
		if err := ValidateResult([]byte(doc)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("rejects entity without name", func(t *testing.T) {
		t.Parallel()

		doc := `{"entities": [{"industry": "Retail"}]}`
		err := ValidateResult([]byte(doc))
		if err == nil {
			t.Fatal("expected error for missing entity name")
		}

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if !strings.Contains(err.Error(), "name") {
			t.Errorf("expected violation to name the missing field, got %q", err.Error())
		}
	})

	t.Run("rejects signal without type", func(t *testing.T) {
		t.Parallel()

		doc := `{"entities": [{"name": "Acme", "signals": [{"confidence": 0.5}]}]}`
		err := ValidateResult([]byte(doc))
		if err == nil {
			t.Fatal("expected error for missing signal type")
		}
		if !strings.Contains(err.Error(), "type") {
			t.Errorf("expected violation to name the missing field, got %q", err.Error())
		}
	})

	t.Run("rejects mistyped fields", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			doc  string
		}{
			{name: "numeric name", doc: `{"entities": [{"name": 42}]}`},
			{name: "string headcount", doc: `{"entities": [{"name": "Acme", "headcount": "many"}]}`},
			{name: "string breakdown value", doc: `{"entities": [{"name": "Acme", "scoreBreakdown": {"x": "high"}}]}`},
			{name: "non-array entities", doc: `{"entities": {"name": "Acme"}}`},
			{name: "non-object data quality", doc: `{"dataQuality": [1]}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				if err := ValidateResult([]byte(tt.doc)); err == nil {
					t.Error("expected validation error")
				}
			})
		}
	})

	t.Run("collects every violation", func(t *testing.T) {
		t.Parallel()

		doc := `{"entities": [{"industry": "Retail"}, {"name": "Acme", "signals": [{}]}]}`
		err := ValidateResult([]byte(doc))
		if err == nil {
			t.Fatal("expected validation error")
		}

		var vErr *ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("expected *ValidationError, got %T", err)
		}
		if len(vErr.Violations) < 2 {
			t.Errorf("expected at least 2 violations, got %v", vErr.Violations)
		}
	})
}
