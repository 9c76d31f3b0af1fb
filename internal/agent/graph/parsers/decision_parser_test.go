package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tunescout-poc/server/internal/agent/model"
)

func TestParseDecisionEnvelope(t *testing.T) {
	content := `{"decision": {"tool_name": "play_song", "arguments": {"genre": "pop"}, "reasoning": "matches the mood"}}`

	d, err := ParseDecision(content)
	require.NoError(t, err)
	assert.Equal(t, "play_song", d.ToolName)
	assert.Equal(t, "pop", d.Arguments["genre"])
	assert.Equal(t, "matches the mood", d.Reasoning)
}

func TestParseDecisionFencedOutput(t *testing.T) {
	content := "Here is my selection:\n```json\n{\"decision\": {\"tool_name\": \"play_song\", \"arguments\": {}, \"reasoning\": \"ok\"}}\n```"

	d, err := ParseDecision(content)
	require.NoError(t, err)
	assert.Equal(t, "play_song", d.ToolName)
}

func TestParseDecisionBareObject(t *testing.T) {
	content := `{"tool_name": "play_song", "arguments": {"tempo": "fast"}, "reasoning": "r"}`

	d, err := ParseDecision(content)
	require.NoError(t, err)
	assert.Equal(t, "play_song", d.ToolName)
	assert.Equal(t, "fast", d.Arguments["tempo"])
}

func TestParseDecisionNilArgumentsNormalized(t *testing.T) {
	content := `{"decision": {"tool_name": "play_song", "reasoning": "r"}}`

	d, err := ParseDecision(content)
	require.NoError(t, err)
	require.NotNil(t, d.Arguments)
	assert.Empty(t, d.Arguments)
}

func TestParseDecisionErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "no json object", content: "I would pick the song tool."},
		{name: "invalid json", content: "{not valid json}"},
		{name: "missing tool name", content: `{"decision": {"arguments": {}, "reasoning": "r"}}`},
		{name: "empty content", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDecision(tt.content)
			assert.Error(t, err)
		})
	}
}

func TestEnsureKnownTool(t *testing.T) {
	available := []string{"play_song", "lookup_lyrics"}

	err := EnsureKnownTool(&model.Decision{ToolName: "play_song"}, available)
	assert.NoError(t, err)

	err = EnsureKnownTool(&model.Decision{ToolName: "delete_library"}, available)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool selected")
	assert.Contains(t, err.Error(), "delete_library")
}
