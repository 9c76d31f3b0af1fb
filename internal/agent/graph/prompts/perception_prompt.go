package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/tunescout-poc/server/internal/agent/model"
)

//go:embed template/perception_prompt.txt
var perceptionSystemPrompt string

// RenderPerceptionMessages builds the message pair for the perception model
// via the Eino prompt component (which also emits prompt callbacks).
func RenderPerceptionMessages(ctx context.Context, in model.UserInput) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(perceptionSystemPrompt),
		schema.UserMessage(
			"Mood: {{.Mood}}\nActivity: {{.Activity}}\nTags: {{.Tags}}\nLocation: {{.Location}}",
		),
	)

	location := in.Location
	if location == "" {
		location = "not provided"
	}
	tags := "none"
	if len(in.Tags) > 0 {
		tags = strings.Join(in.Tags, ", ")
	}

	msgs, err := tpl.Format(ctx, map[string]any{
		"Mood":     in.Mood,
		"Activity": in.Activity,
		"Tags":     tags,
		"Location": location,
	})
	if err != nil {
		return nil, fmt.Errorf("perception prompt render: %w", err)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("perception prompt render: empty result")
	}
	return msgs, nil
}
