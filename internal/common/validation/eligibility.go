// Package validation checks stored eligibility documents against a JSON
// schema before the engine scores them.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// eligibilitySchema encodes the posting invariant: the three set fields are
// present and non-empty, minGpa (when set) is a sane decimal.
const eligibilitySchema = `{
	"type": "object",
	"properties": {
		"qualifications": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 1
		},
		"streams": {
			"type": "array",
			"items": {"type": "string"},
			"minItems": 1
		},
		"graduationYears": {
			"type": "array",
			"items": {"type": "integer", "minimum": 1950, "maximum": 2100},
			"minItems": 1
		},
		"minGpa": {"type": "number", "minimum": 0, "maximum": 100}
	},
	"required": ["qualifications", "streams", "graduationYears"],
	"additionalProperties": true
}`

var schemaLoader = gojsonschema.NewStringLoader(eligibilitySchema)

// ValidateEligibilityJSON validates a raw eligibility document. A non-nil
// error lists every schema violation.
func ValidateEligibilityJSON(raw []byte) error {
	documentLoader := gojsonschema.NewBytesLoader(raw)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return fmt.Errorf("eligibility validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
