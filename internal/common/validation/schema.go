// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"pathway-workers/internal/common/errors"
	"pathway-workers/pkg/registry"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks raw job variables against the input schema registered for
// each task type. Task types without a schema pass unchecked.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

func NewValidator(reg *registry.ActivityRegistry) (*Validator, error) {
	v := &Validator{schemas: map[string]*gojsonschema.Schema{}}
	if reg == nil {
		return v, nil
	}
	for _, a := range reg.Activities {
		if len(a.InputSchema) == 0 {
			continue
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(a.InputSchema))
		if err != nil {
			return nil, fmt.Errorf("compile input schema for %s: %w", a.TaskType, err)
		}
		v.schemas[a.TaskType] = schema
	}
	return v, nil
}

// Validate returns an INPUT_VALIDATION_FAILED error listing every violation.
// A nil Validator accepts everything.
func (v *Validator) Validate(taskType string, variables []byte) error {
	if v == nil {
		return nil
	}
	schema, ok := v.schemas[taskType]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(variables))
	if err != nil {
		return errors.NewInputValidationError(fmt.Sprintf("unreadable variables: %v", err))
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		msgs[i] = desc.String()
	}
	return errors.NewInputValidationError(strings.Join(msgs, "; "))
}

// Has reports whether a schema is registered for taskType.
func (v *Validator) Has(taskType string) bool {
	if v == nil {
		return false
	}
	_, ok := v.schemas[taskType]
	return ok
}
