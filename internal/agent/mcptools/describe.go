package mcptools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tunescout-poc/server/internal/agent/model"
)

const noDescription = "No description available"

// Names returns the tool names in catalog order.
func Names(tools []model.ToolDescriptor) []string {
	names := make([]string, 0, len(tools))
	for i, t := range tools {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("tool_%d", i)
		}
		names = append(names, name)
	}
	return names
}

// Describe renders a numbered, human-readable catalog for the decision
// prompt, one line per tool:
//
//	1. play_song(song: string, artist: string) - Plays a song
func Describe(tools []model.ToolDescriptor) string {
	lines := make([]string, 0, len(tools))
	for i, t := range tools {
		name := t.Name
		if name == "" {
			name = fmt.Sprintf("tool_%d", i)
		}
		desc := t.Description
		if desc == "" {
			desc = noDescription
		}
		lines = append(lines, fmt.Sprintf("%d. %s(%s) - %s", i+1, name, paramList(t.InputSchema), desc))
	}
	return strings.Join(lines, "\n")
}

func paramList(schema map[string]string) string {
	if len(schema) == 0 {
		return "no parameters"
	}
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, schema[name]))
	}
	return strings.Join(parts, ", ")
}
