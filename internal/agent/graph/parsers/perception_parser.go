package parsers

import (
	"fmt"

	"github.com/bytedance/sonic"
)

// ParsePerception decodes the perception model output into an opaque mapping.
// The pipeline never inspects individual keys; the mapping is carried through
// to the HTTP response as-is.
func ParsePerception(content string) (map[string]any, error) {
	body := extractJSONObject(content)
	if body == "" {
		return nil, fmt.Errorf("perception output contains no JSON object: %s", safeSnippet(content))
	}

	var m map[string]any
	if err := sonic.Unmarshal([]byte(body), &m); err != nil {
		return nil, fmt.Errorf("decode perception: %w", err)
	}
	return m, nil
}
