// Package ingestion reads topic pools, selections, and reference analyses from disk.
package ingestion

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cheatsheet-packer/internal/schemas"
	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// LoadTopicPool reads a JSON topic pool, validating it against the topic pool
// schema when the schema can be found.
func LoadTopicPool(path string) (*types.TopicPool, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return decodeTopicPool(path, data)
}

// LoadSelection reads a JSON selection set
func LoadSelection(path string) (*types.SelectionSet, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateAgainst(schemas.SelectionSchema, data); err != nil {
		return nil, fmt.Errorf("selection %s failed schema validation: %w", path, err)
	}

	var set types.SelectionSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to parse selection JSON: %w", err)
	}
	return &set, nil
}

// LoadReference reads a JSON reference format analysis
func LoadReference(path string) (*types.ReferenceFormatAnalysis, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateAgainst(schemas.ReferenceSchema, data); err != nil {
		return nil, fmt.Errorf("reference %s failed schema validation: %w", path, err)
	}

	var ref types.ReferenceFormatAnalysis
	if err := json.Unmarshal(data, &ref); err != nil {
		return nil, fmt.Errorf("failed to parse reference JSON: %w", err)
	}
	return &ref, nil
}

// IngestFile reads a topic source by extension: .md and .markdown files are
// parsed as outlines, anything else as a JSON topic pool.
func IngestFile(path string) (*types.TopicPool, *Metadata, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		topics, err := ParseOutline(data)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse outline %s: %w", path, err)
		}
		pool := &types.TopicPool{Topics: topics}
		return pool, NewMetadata(path, FormatMarkdown, data, pool), nil
	default:
		pool, err := decodeTopicPool(path, data)
		if err != nil {
			return nil, nil, err
		}
		return pool, NewMetadata(path, FormatJSON, data, pool), nil
	}
}

func decodeTopicPool(path string, data []byte) (*types.TopicPool, error) {
	if err := validateAgainst(schemas.TopicPoolSchema, data); err != nil {
		return nil, fmt.Errorf("topic pool %s failed schema validation: %w", path, err)
	}

	var pool types.TopicPool
	if err := json.Unmarshal(data, &pool); err != nil {
		return nil, fmt.Errorf("failed to parse topic pool JSON: %w", err)
	}
	if err := pool.Validate(); err != nil {
		return nil, fmt.Errorf("invalid topic pool %s: %w", path, err)
	}
	return &pool, nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("file not found: %w", err)
		}
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// validateAgainst checks data against a schema, skipping with a warning when
// the schema file is not reachable from the working directory
func validateAgainst(schemaRelPath string, data []byte) error {
	schemaPath := schemas.ResolveSchemaPath(schemaRelPath)
	if schemaPath == "" {
		log.Printf("Warning: schema %s not found, skipping validation", schemaRelPath)
		return nil
	}
	return schemas.ValidateBytes(schemaPath, data)
}
