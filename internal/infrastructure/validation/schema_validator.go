// Package validation validates YAML documents against JSON Schemas.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaValidator validates documents against one compiled schema.
type SchemaValidator struct {
	name   string
	schema *jsonschema.Schema
}

// NewSchemaValidator compiles schema. name is used as the resource URL
// and in error messages.
func NewSchemaValidator(name string, schema []byte) (*SchemaValidator, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	if err := compiler.AddResource(name, bytes.NewReader(schema)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}

	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}

	return &SchemaValidator{name: name, schema: compiled}, nil
}

// MustNewSchemaValidator compiles schema or panics. For embedded schemas.
func MustNewSchemaValidator(name string, schema []byte) *SchemaValidator {
	v, err := NewSchemaValidator(name, schema)
	if err != nil {
		panic(err)
	}
	return v
}

// ValidateYAML converts a YAML document to JSON and validates it.
func (v *SchemaValidator) ValidateYAML(data []byte) error {
	jsonData, err := yaml.YAMLToJSON(data)
	if err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(jsonData))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}

	return v.Validate(doc)
}

// Validate validates an already decoded JSON value.
func (v *SchemaValidator) Validate(doc any) error {
	if err := v.schema.Validate(doc); err != nil {
		var validationErr *jsonschema.ValidationError
		if errors.As(err, &validationErr) {
			return formatSchemaValidationError(v.name, validationErr)
		}
		return fmt.Errorf("%s validation failed: %w", v.name, err)
	}
	return nil
}

// formatSchemaValidationError formats a JSON Schema validation error into a readable message.
func formatSchemaValidationError(name string, err *jsonschema.ValidationError) error {
	var messages []string

	var collectErrors func(*jsonschema.ValidationError)
	collectErrors = func(e *jsonschema.ValidationError) {
		if e.Message != "" && len(e.Causes) == 0 {
			location := e.InstanceLocation
			if location == "" {
				location = "(root)"
			}
			messages = append(messages, fmt.Sprintf("%s: %s", location, e.Message))
		}
		for _, cause := range e.Causes {
			collectErrors(cause)
		}
	}

	collectErrors(err)

	if len(messages) == 0 {
		return fmt.Errorf("%s validation failed", name)
	}

	return fmt.Errorf("%s validation failed:\n    - %s", name, strings.Join(messages, "\n    - "))
}
