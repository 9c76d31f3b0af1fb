package parsers

import (
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tunescout-poc/server/internal/agent/model"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// NormalizeToolPayload decodes a tool's textual result into the tagged
// ToolResult shape. Malformed JSON degrades to an empty list rather than
// failing the request; a single object is wrapped into a one-element list.
func NormalizeToolPayload(raw string) model.ToolResult {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.ToolResult{Kind: model.ToolResultEmpty, Items: []any{}, Raw: raw}
	}

	var decoded any
	if err := sonic.Unmarshal([]byte(trimmed), &decoded); err != nil {
		logx.Warn().
			Str("component", "payload_parser").
			Str("payload", safeSnippet(trimmed)).
			Msg("failed to parse tool payload as JSON")
		return model.ToolResult{Kind: model.ToolResultMalformed, Items: []any{}, Raw: raw}
	}

	switch v := decoded.(type) {
	case nil:
		return model.ToolResult{Kind: model.ToolResultEmpty, Items: []any{}, Raw: raw}
	case []any:
		if len(v) == 0 {
			return model.ToolResult{Kind: model.ToolResultEmpty, Items: []any{}, Raw: raw}
		}
		return model.ToolResult{Kind: model.ToolResultList, Items: v, Raw: raw}
	default:
		// object or scalar: coerce to a one-element list
		return model.ToolResult{Kind: model.ToolResultSingle, Items: []any{v}, Raw: raw}
	}
}
