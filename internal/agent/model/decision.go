package model

// Decision is the tool selection produced by the decision model.
type Decision struct {
	ToolName  string         `json:"tool_name"`
	Arguments map[string]any `json:"arguments"`
	Reasoning string         `json:"reasoning"`
}

// DecisionEnvelope matches the JSON shape the decision prompt asks the model
// to emit.
type DecisionEnvelope struct {
	Decision Decision `json:"decision"`
}
