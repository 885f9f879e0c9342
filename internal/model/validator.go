package model

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema/data-model-v1.json
var dataModelSchemaJSON string

// Validator checks a decoded declaration document against the embedded
// data model schema.
type Validator struct {
	schema *jsonschema.Schema
}

func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()

	if err := compiler.AddResource("data-model-v1.json",
		strings.NewReader(dataModelSchemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile("data-model-v1.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate reports schema violations as ErrMalformedInput.
func (v *Validator) Validate(doc any) error {
	if err := v.schema.Validate(jsonValue(doc)); err != nil {
		return fmt.Errorf("%w: schema validation failed: %w", ErrMalformedInput, err)
	}
	return nil
}

// jsonValue converts a YAML-decoded value into the plain JSON value shapes
// the schema validator accepts.
func jsonValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[k] = jsonValue(x)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, x := range t {
			out[fmt.Sprint(k)] = jsonValue(x)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, x := range t {
			out[i] = jsonValue(x)
		}
		return out
	case nil, bool, string, int, int64, uint64, float64:
		return t
	default:
		return fmt.Sprint(t)
	}
}
