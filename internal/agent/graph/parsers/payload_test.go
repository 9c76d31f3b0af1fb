package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunescout-poc/server/internal/agent/model"
)

func TestNormalizeToolPayloadList(t *testing.T) {
	result := NormalizeToolPayload(`[{"song":"X","artist":"Y"},{"song":"A","artist":"B"}]`)

	assert.Equal(t, model.ToolResultList, result.Kind)
	require.Len(t, result.Items, 2)
	first, ok := result.Items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "X", first["song"])
	assert.Equal(t, "Y", first["artist"])
}

func TestNormalizeToolPayloadSingleObjectWrapped(t *testing.T) {
	result := NormalizeToolPayload(`{"song":"X","artist":"Y"}`)

	assert.Equal(t, model.ToolResultSingle, result.Kind)
	require.Len(t, result.Items, 1)
	item, ok := result.Items[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "X", item["song"])
}

func TestNormalizeToolPayloadMalformedDegradesToEmpty(t *testing.T) {
	result := NormalizeToolPayload("oops, not json")

	assert.Equal(t, model.ToolResultMalformed, result.Kind)
	assert.NotNil(t, result.Items)
	assert.Empty(t, result.Items)
	assert.Equal(t, "oops, not json", result.Raw)
}

func TestNormalizeToolPayloadEmptyVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty array", raw: "[]"},
		{name: "empty string", raw: ""},
		{name: "whitespace", raw: "   "},
		{name: "json null", raw: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NormalizeToolPayload(tt.raw)
			assert.Equal(t, model.ToolResultEmpty, result.Kind)
			assert.NotNil(t, result.Items)
			assert.Empty(t, result.Items)
		})
	}
}

func TestNormalizeToolPayloadScalarWrapped(t *testing.T) {
	result := NormalizeToolPayload(`"just a string"`)

	assert.Equal(t, model.ToolResultSingle, result.Kind)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "just a string", result.Items[0])
}

func TestParsePerception(t *testing.T) {
	m, err := ParsePerception("```json\n{\"primary_emotion\":\"joy\",\"energy_level\":\"high\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, "joy", m["primary_emotion"])
	assert.Equal(t, "high", m["energy_level"])

	_, err = ParsePerception("no json here")
	assert.Error(t, err)
}
