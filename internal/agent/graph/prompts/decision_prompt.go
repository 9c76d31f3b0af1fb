package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/decision_prompt.txt
var decisionSystemPrompt string

// RenderDecisionMessages renders the decision system prompt with the
// serialized user input and the freshly discovered tool catalog.
func RenderDecisionMessages(ctx context.Context, serializedInput string, toolNames []string, toolsDescription string) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(decisionSystemPrompt),
		schema.UserMessage("Select the tool for this request."),
	)

	msgs, err := tpl.Format(ctx, map[string]any{
		"UserInput":        serializedInput,
		"ToolNames":        strings.Join(toolNames, ", "),
		"ToolsDescription": toolsDescription,
	})
	if err != nil {
		return nil, fmt.Errorf("decision prompt render: %w", err)
	}
	if len(msgs) == 0 {
		return nil, fmt.Errorf("decision prompt render: empty result")
	}
	return msgs, nil
}
