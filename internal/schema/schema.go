package schema

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed result_schema.json
var resultSchema []byte

// ValidationError reports every schema violation found in a discovery
// result payload. Violations carry the offending path, for example
// "entities.2: name is required".
type ValidationError struct {
	// Violations lists one message per schema violation.
	Violations []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid discovery result: %s", strings.Join(e.Violations, "; "))
}

// ValidateResult checks a raw result payload against the enrichment API
// schema. It returns a *ValidationError listing all violations, or a plain
// error if validation itself could not run.
func ValidateResult(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(resultSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to run schema validation: %w", err)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			violations = append(violations, desc.String())
		}
		return &ValidationError{Violations: violations}
	}
	return nil
}
