package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonDataset = `[
  {"id": 1, "name": "Ada", "title": "Engineer", "summary": "Programs.", "skills": ["Go", "SQL"]},
  {"id": 2, "name": "Grace", "title": "Admiral", "summary": "Compilers.", "skills": []}
]`

const yamlDataset = `- id: 1
  name: Ada
  title: Engineer
  summary: Programs.
  skills: [Go, SQL]
- id: 2
  name: Grace
  title: Admiral
  summary: Compilers.
  skills: []
`

func TestParseJSON(t *testing.T) {
	entries, err := ParseJSON([]byte(jsonDataset))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, int64(1), entries[0].ID())
	assert.Equal(t, "Ada", entries[0].Name())
	assert.Equal(t, "Engineer", entries[0].Title())
	assert.Equal(t, "Programs.", entries[0].Summary())
	assert.Equal(t, []string{"Go", "SQL"}, entries[0].Skills())

	assert.Equal(t, int64(2), entries[1].ID())
	assert.Empty(t, entries[1].Skills())
}

func TestParseYAML(t *testing.T) {
	entries, err := ParseYAML([]byte(yamlDataset))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Ada", entries[0].Name())
	assert.Equal(t, []string{"Go", "SQL"}, entries[0].Skills())
}

func TestParseJSON_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{
			name:  "missing id",
			body:  `[{"name": "Ada", "title": "Engineer", "summary": "s", "skills": []}]`,
			field: "id",
		},
		{
			name:  "missing name",
			body:  `[{"id": 1, "title": "Engineer", "summary": "s", "skills": []}]`,
			field: "name",
		},
		{
			name:  "missing title",
			body:  `[{"id": 1, "name": "Ada", "summary": "s", "skills": []}]`,
			field: "title",
		},
		{
			name:  "missing summary",
			body:  `[{"id": 1, "name": "Ada", "title": "Engineer", "skills": []}]`,
			field: "summary",
		},
		{
			name:  "missing skills",
			body:  `[{"id": 1, "name": "Ada", "title": "Engineer", "summary": "s"}]`,
			field: "skills",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.body))
			require.Error(t, err)
			assert.ErrorContains(t, err, "missing required field")
			assert.ErrorContains(t, err, tt.field)
		})
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	_, err := ParseJSON([]byte(`{"not": "an array"}`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "parse json")
}

func TestLoad_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "entries.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(jsonDataset), 0o644))
	yamlPath := filepath.Join(dir, "entries.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(yamlDataset), 0o644))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)

	require.Len(t, fromJSON, 2)
	require.Len(t, fromYAML, 2)
	assert.Equal(t, fromJSON[0].EmbeddingText(), fromYAML[0].EmbeddingText())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
