package lspsvc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kson-lang/kson/lspsvc"
)

const testSchema = `{
	"type": "object",
	"title": "Pet",
	"properties": {
		"name": {"type": "string", "description": "the pet's name"},
		"species": {"type": "string", "enum": ["cat", "dog", "bird"]}
	}
}`

func TestGetSchemaInfoAtLocation(t *testing.T) {
	t.Parallel()

	doc := `{"name": "Biscuit", "species": "cat"}`

	info, ok := lspsvc.GetSchemaInfoAtLocation(doc, testSchema, 0, 10)

	require.True(t, ok)
	assert.Contains(t, info, "the pet's name")
}

func TestGetCompletionsAtLocation(t *testing.T) {
	t.Parallel()

	doc := `{"name": "Biscuit", "species": "cat"}`

	items, ok := lspsvc.GetCompletionsAtLocation(doc, testSchema, 0, 0)

	require.True(t, ok)
	require.NotEmpty(t, items)

	var sawName, sawSpecies bool

	for _, item := range items {
		if item.Label == "name" {
			sawName = true
		}

		if item.Label == "species" {
			sawSpecies = true
		}
	}

	assert.True(t, sawName)
	assert.True(t, sawSpecies)
}

func TestGetSchemaLocationAtLocation(t *testing.T) {
	t.Parallel()

	doc := `{"name": "Biscuit", "species": "cat"}`

	locs, ok := lspsvc.GetSchemaLocationAtLocation(doc, testSchema, 0, 10)

	require.True(t, ok)
	assert.NotEmpty(t, locs)
}

func TestResolveRefAtLocation(t *testing.T) {
	t.Parallel()

	schemaText := `{
		"definitions": {"name": {"type": "string"}},
		"type": "object",
		"properties": {"label": {"$ref": "#/definitions/name"}}
	}`

	// Column 40 falls inside the quoted "#/definitions/name" ref string
	// on line 3 (both 0-indexed).
	locs, ok := lspsvc.ResolveRefAtLocation(schemaText, 3, 40)

	require.True(t, ok)
	assert.NotEmpty(t, locs)
}

func TestGetSchemaInfoAtLocationUnparseableDoc(t *testing.T) {
	t.Parallel()

	_, ok := lspsvc.GetSchemaInfoAtLocation("", testSchema, 0, 0)

	assert.False(t, ok)
}
