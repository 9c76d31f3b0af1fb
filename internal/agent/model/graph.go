package model

// RecommendState stores per-invocation state for the recommendation graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//   - Eino serializes access to state within these handlers, so no additional
//     mutex/atomic is required as long as you never touch it outside handlers.
type RecommendState struct {
	Input      UserInput
	MemoryID   string
	Perception map[string]any

	Catalog     []ToolDescriptor
	ToolNames   []string
	CatalogText string

	Decision *Decision
}

// Recommendation is the final payload of a successful pipeline run.
type Recommendation struct {
	Recommendations []any          `json:"recommendations"`
	Reasoning       string         `json:"reasoning"`
	MemoryID        string         `json:"memory_id"`
	Perception      map[string]any `json:"perception"`
}
