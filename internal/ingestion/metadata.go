package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/cheatsheet-packer/internal/types"
)

// Source formats understood by IngestFile
const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Metadata describes an ingested topic source
type Metadata struct {
	Path          string `json:"path"`
	Format        string `json:"format"`
	Timestamp     string `json:"timestamp"` // RFC3339 format
	Hash          string `json:"hash"`      // SHA256 hex digest of the raw file
	TopicCount    int    `json:"topic_count"`
	SubtopicCount int    `json:"subtopic_count"`
	ExampleCount  int    `json:"example_count"`
}

// NewMetadata creates Metadata for a source file and the pool read from it
func NewMetadata(path, format string, raw []byte, pool *types.TopicPool) *Metadata {
	m := &Metadata{
		Path:      path,
		Format:    format,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(raw),
	}
	if pool != nil {
		m.TopicCount = len(pool.Topics)
		for _, topic := range pool.Topics {
			m.SubtopicCount += len(topic.Subtopics)
			m.ExampleCount += len(topic.Examples)
		}
	}
	return m
}

func computeHash(raw []byte) string {
	hash := sha256.Sum256(raw)
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
