package model

// ToolDescriptor describes one tool advertised by the tool-provider process.
// The catalog is fetched fresh on every request and never cached.
type ToolDescriptor struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	InputSchema map[string]string `json:"input_schema"`
}

// ToolResultKind classifies the shape of a tool's textual payload after JSON
// decoding.
type ToolResultKind int

const (
	// ToolResultEmpty means the tool returned no items.
	ToolResultEmpty ToolResultKind = iota
	// ToolResultSingle means the tool returned one object, wrapped into a
	// one-element list.
	ToolResultSingle
	// ToolResultList means the tool returned an array of items.
	ToolResultList
	// ToolResultMalformed means the payload was not valid JSON; it degrades
	// to an empty list without failing the request.
	ToolResultMalformed
)

func (k ToolResultKind) String() string {
	switch k {
	case ToolResultEmpty:
		return "empty"
	case ToolResultSingle:
		return "single"
	case ToolResultList:
		return "list"
	case ToolResultMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ToolResult is the normalized outcome of a tool invocation. Items is always
// non-nil so the HTTP response serializes recommendations as a JSON array.
type ToolResult struct {
	Kind  ToolResultKind
	Items []any
	// Raw keeps the original payload text for diagnostics on malformed input.
	Raw string
}
