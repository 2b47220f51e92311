package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/genba-labs/shashin-cli/internal/core/domain"
)

// ResultSchema is the JSON Schema a single analysis record must
// satisfy before it is accepted into a batch.
func ResultSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"fileName":      map[string]any{"type": "string", "minLength": 1},
			"workType":      map[string]any{"type": "string"},
			"variety":       map[string]any{"type": "string"},
			"detail":        map[string]any{"type": "string"},
			"station":       map[string]any{"type": "string"},
			"remarks":       map[string]any{"type": "string"},
			"description":   map[string]any{"type": "string"},
			"hasBoard":      map[string]any{"type": "boolean"},
			"detectedText":  map[string]any{"type": "string"},
			"measurements":  map[string]any{"type": "string"},
			"photoCategory": map[string]any{"type": "string"},
			"reasoning":     map[string]any{"type": "string"},
		},
		"required":             []string{"fileName"},
		"additionalProperties": false,
	}
}

// ValidateResult checks one record against ResultSchema. A violation
// wraps domain.ErrSchemaViolation so callers can count rejects.
func ValidateResult(result *domain.AnalysisResult) error {
	schema, err := compileSchema(ResultSchema())
	if err != nil {
		return err
	}

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaViolation, err)
	}
	return nil
}

// compileSchema compiles a schema map into a validator.
func compileSchema(schemaMap map[string]any) (*jsonschema.Schema, error) {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("result.json", bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("result.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
}
