package schemas

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSON_ValidJSON(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")
	jsonPath := filepath.Join("testdata", "valid_json.json")

	err := ValidateJSON(schemaPath, jsonPath)
	assert.NoError(t, err)
}

func TestValidateJSON_InvalidJSON(t *testing.T) {
	tests := []struct {
		name     string
		jsonFile string
	}{
		{name: "missing field", jsonFile: "invalid_json.json"},
		{name: "wrong type", jsonFile: "type_mismatch.json"},
	}

	schemaPath := filepath.Join("testdata", "valid_schema.json")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(schemaPath, filepath.Join("testdata", tt.jsonFile))
			require.Error(t, err)

			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError type")
			assert.Greater(t, len(validationErr.Errors), 0)
		})
	}
}

func TestValidateJSON_MissingFiles(t *testing.T) {
	err := ValidateJSON("testdata/nonexistent_schema.json", filepath.Join("testdata", "valid_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema file not found")

	err = ValidateJSON(filepath.Join("testdata", "valid_schema.json"), "testdata/nonexistent_json.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON file not found")
}

func TestValidateJSON_MalformedJSON(t *testing.T) {
	malformedJSON := filepath.Join(t.TempDir(), "malformed.json")
	require.NoError(t, os.WriteFile(malformedJSON, []byte("{ invalid json }"), 0644))

	err := ValidateJSON(filepath.Join("testdata", "valid_schema.json"), malformedJSON)
	require.Error(t, err)
}

func TestValidateBytes(t *testing.T) {
	schemaPath := filepath.Join("testdata", "valid_schema.json")

	assert.NoError(t, ValidateBytes(schemaPath, []byte(`{"topic_id": "a", "estimated_space": 0}`)))

	err := ValidateBytes(schemaPath, []byte(`{"topic_id": "a", "estimated_space": -3}`))
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Equal(t, "estimated_space", validationErr.Errors[0].Field)

	err = ValidateBytes("testdata/missing.json", []byte(`{}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["topic"],
		"properties": {
			"topic": {
				"type": "object",
				"required": ["id"],
				"properties": {"id": {"type": "string"}}
			}
		}
	}`

	assert.NoError(t, ValidateJSONString(schemaContent, `{"topic": {"id": "limits"}}`))

	err := ValidateJSONString(schemaContent, `{"topic": {}}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field == "topic" {
			found = true
		}
	}
	assert.True(t, found, "nested error should point at the topic object")
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)
	require.Error(t, err)
	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "expected SchemaLoadError, got %T", err)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "topic_id", Message: "is required"},
			{Field: "estimated_space", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. topic_id")
	assert.Contains(t, errorMsg, "2. estimated_space")
}

func TestResolveSchemaPath(t *testing.T) {
	resolved := ResolveSchemaPath(TopicPoolSchema)
	require.NotEmpty(t, resolved, "schema should resolve from the package directory")
	assert.True(t, filepath.IsAbs(resolved))

	assert.Empty(t, ResolveSchemaPath("schemas/does_not_exist.schema.json"))
}
