package scenario

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema/scenario.schema.json
var schemaJSON []byte

const schemaURL = "scenario.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles the embedded schema once.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft7
		if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("scenario: loading schema: %w", err)
			return
		}
		schema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("scenario: compiling schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// SchemaJSON returns the embedded scenario JSON Schema.
func SchemaJSON() []byte {
	return schemaJSON
}

// validateSchema checks a YAML document against the scenario schema.
// The document is normalised through JSON so that the validator sees the
// same value types a JSON decoder would produce.
func validateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("yaml unmarshal: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return ValidationError{Code: "SCHEMA", Message: fmt.Sprintf("document is not JSON-compatible: %v", err)}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("json normalise: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return ValidationError{Code: "SCHEMA", Message: err.Error()}
	}
	return nil
}
