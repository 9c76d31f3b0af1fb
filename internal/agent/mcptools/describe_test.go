package mcptools

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tunescout-poc/server/internal/agent/model"
)

func TestDescribe(t *testing.T) {
	tools := []model.ToolDescriptor{
		{
			Name:        "play_song",
			Description: "Plays a song matching the request",
			InputSchema: map[string]string{"genre": "string", "count": "number"},
		},
		{
			Name:        "lookup_lyrics",
			Description: "Finds lyrics",
			InputSchema: nil,
		},
	}

	got := Describe(tools)
	assert.Equal(t,
		"1. play_song(count: number, genre: string) - Plays a song matching the request\n"+
			"2. lookup_lyrics(no parameters) - Finds lyrics",
		got)
}

func TestDescribeMissingFields(t *testing.T) {
	tools := []model.ToolDescriptor{
		{InputSchema: map[string]string{"q": "string"}},
	}

	got := Describe(tools)
	assert.Equal(t, "1. tool_0(q: string) - No description available", got)
}

func TestDescribeEmptyCatalog(t *testing.T) {
	assert.Equal(t, "", Describe(nil))
}

func TestNames(t *testing.T) {
	tools := []model.ToolDescriptor{
		{Name: "play_song"},
		{},
		{Name: "lookup_lyrics"},
	}

	assert.Equal(t, []string{"play_song", "tool_1", "lookup_lyrics"}, Names(tools))
}

func TestSchemaParams(t *testing.T) {
	props := map[string]any{
		"genre": map[string]any{"type": "string", "description": "music genre"},
		"count": map[string]any{"type": "number"},
		"weird": "not an object",
	}

	params := schemaParams(props)
	assert.Equal(t, map[string]string{
		"genre": "string",
		"count": "number",
		"weird": "unknown",
	}, params)
}
