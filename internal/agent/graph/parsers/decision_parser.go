package parsers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/tunescout-poc/server/internal/agent/model"
	errx "github.com/tunescout-poc/server/internal/core/error"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// basic safety limits to avoid pathological inputs
const (
	maxContentLen = 64 * 1024 // 64KB of model output
	maxErrSnippet = 200       // limit error snippet size
)

// ParseDecision extracts the tool selection from the decision model output.
// The prompt asks for a single JSON object; code fences and surrounding prose
// are tolerated, anything else is an error.
func ParseDecision(content string) (decision *model.Decision, err error) {
	// panic safety
	defer func() {
		if r := recover(); r != nil {
			logx.Error().Str("component", "decision_parser").Msgf("panic recovered: %v", r)
			err = errx.New(fmt.Errorf("decision parser panic"), http.StatusInternalServerError, errx.SystemErrorMessage)
			decision = nil
		}
	}()

	if len(content) > maxContentLen {
		logx.Warn().
			Str("component", "decision_parser").
			Int("max_len", maxContentLen).
			Int("orig_len", len(content)).
			Msg("content truncated due to size limit")
		content = content[:maxContentLen]
	}

	body := extractJSONObject(content)
	if body == "" {
		return nil, fmt.Errorf("decision output contains no JSON object: %s", safeSnippet(content))
	}

	var envelope model.DecisionEnvelope
	if uerr := sonic.Unmarshal([]byte(body), &envelope); uerr != nil {
		return nil, fmt.Errorf("decode decision: %w", uerr)
	}

	d := envelope.Decision
	if d.ToolName == "" {
		// tolerate a bare decision object without the envelope
		if uerr := sonic.Unmarshal([]byte(body), &d); uerr != nil {
			return nil, fmt.Errorf("decode decision: %w", uerr)
		}
	}
	if strings.TrimSpace(d.ToolName) == "" {
		return nil, fmt.Errorf("decision is missing tool_name: %s", safeSnippet(body))
	}
	if d.Arguments == nil {
		d.Arguments = map[string]any{}
	}
	return &d, nil
}

// EnsureKnownTool rejects a decision whose tool is absent from the discovered
// catalog, instead of trusting the model output blindly.
func EnsureKnownTool(decision *model.Decision, available []string) error {
	for _, name := range available {
		if name == decision.ToolName {
			return nil
		}
	}
	return fmt.Errorf("unknown tool selected: %q (available: %s)",
		decision.ToolName, strings.Join(available, ", "))
}

// extractJSONObject returns the outermost {...} span of s, stripping markdown
// code fences and leading/trailing prose the model may add.
func extractJSONObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func safeSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= maxErrSnippet {
		return s
	}
	return s[:maxErrSnippet]
}
