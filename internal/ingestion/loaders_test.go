package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/cheatsheet-packer/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const poolJSON = `{
	"topics": [
		{
			"id": "limits",
			"title": "Limits",
			"content": "lim x->a f(x)",
			"confidence": 0.9,
			"subtopics": [{"id": "squeeze", "title": "Squeeze theorem", "confidence": 0.4}]
		},
		{"id": "series", "title": "Series", "priority": "low"}
	],
	"reference": {"content_density": 2400, "topic_count": 6}
}`

func TestLoadTopicPool(t *testing.T) {
	pool, err := LoadTopicPool(writeFile(t, "pool.json", poolJSON))
	require.NoError(t, err)

	require.Len(t, pool.Topics, 2)
	assert.Equal(t, "limits", pool.Topics[0].ID)
	assert.Equal(t, types.PriorityHigh, pool.Topics[0].EffectivePriority())
	assert.Equal(t, "squeeze", pool.Topics[0].Subtopics[0].ID)
	require.NotNil(t, pool.Reference)
	assert.Equal(t, 2400.0, pool.Reference.ContentDensity)
}

func TestLoadTopicPool_Errors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{name: "schema violation", content: `{"topics": [{"id": "x"}]}`, contains: "failed schema validation"},
		{name: "malformed JSON", content: `{"topics": [`, contains: "topic pool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, err := LoadTopicPool(writeFile(t, "pool.json", tt.content))
			require.Error(t, err)
			assert.Nil(t, pool)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTopicPool(filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "file not found")
	})
}

func TestLoadSelection(t *testing.T) {
	path := writeFile(t, "selection.json", `{"selections": [{"topic_id": "limits", "subtopic_ids": ["squeeze"], "estimated_space": 320}]}`)

	set, err := LoadSelection(path)
	require.NoError(t, err)
	require.Len(t, set.Selections, 1)
	assert.Equal(t, "limits", set.Selections[0].TopicID)
	assert.Equal(t, []string{"squeeze"}, set.Selections[0].SubtopicIDs)
	assert.Equal(t, 320.0, set.Selections[0].EstimatedSpace)

	_, err = LoadSelection(writeFile(t, "bad.json", `{"selections": [{"estimated_space": 1}]}`))
	assert.Error(t, err)
}

func TestLoadReference(t *testing.T) {
	path := writeFile(t, "reference.json", `{"content_density": 2600, "topic_count": 9, "layout_pattern": "multi-column", "organization_style": "flat"}`)

	ref, err := LoadReference(path)
	require.NoError(t, err)
	assert.Equal(t, 2600.0, ref.ContentDensity)
	assert.Equal(t, 9, ref.TopicCount)
	assert.Equal(t, types.LayoutMultiColumn, ref.LayoutPattern)
	assert.Equal(t, types.OrganizationFlat, ref.OrganizationStyle)

	_, err = LoadReference(writeFile(t, "bad.json", `{"content_density": "dense"}`))
	assert.Error(t, err)
}

func TestIngestFile(t *testing.T) {
	t.Run("markdown outline", func(t *testing.T) {
		pool, meta, err := IngestFile(writeFile(t, "notes.md", calculusOutline))
		require.NoError(t, err)
		assert.Len(t, pool.Topics, 2)
		assert.Equal(t, FormatMarkdown, meta.Format)
		assert.Equal(t, 2, meta.TopicCount)
		assert.Equal(t, 2, meta.SubtopicCount)
		assert.Equal(t, 2, meta.ExampleCount)
		assert.Len(t, meta.Hash, 64)
	})

	t.Run("json pool", func(t *testing.T) {
		pool, meta, err := IngestFile(writeFile(t, "pool.json", poolJSON))
		require.NoError(t, err)
		assert.Len(t, pool.Topics, 2)
		assert.Equal(t, FormatJSON, meta.Format)
		assert.Equal(t, 1, meta.SubtopicCount)
	})

	t.Run("empty outline", func(t *testing.T) {
		_, _, err := IngestFile(writeFile(t, "empty.md", "no headings here"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse outline")
	})
}

func TestMetadata_ToJSON(t *testing.T) {
	meta := NewMetadata("pool.json", FormatJSON, []byte("{}"), nil)

	data, err := meta.ToJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"format": "json"`)
	assert.Contains(t, string(data), `"hash": "44136fa355b3678a1146ad16f7e8649e94fb4fc21fe77e8310c060f61caaff8a"`)
	assert.Equal(t, 0, meta.TopicCount)
}
