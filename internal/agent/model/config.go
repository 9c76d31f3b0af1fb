package model

// ================ Config ================

type ServerConfig struct {
	Host string `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `envconfig:"SERVER_PORT" default:"5001"`
}

type PerceptionModelConfig struct {
	Model       string  `envconfig:"PERCEPTION_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"PERCEPTION_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"PERCEPTION_TEMPERATURE" default:"0.2"`
}

type DecisionModelConfig struct {
	Model       string  `envconfig:"DECISION_MODEL" default:"gemini-2.0-flash"`
	MaxTokens   int     `envconfig:"DECISION_MAX_TOKENS" default:"1024"`
	Temperature float32 `envconfig:"DECISION_TEMPERATURE" default:"0.1"`
}

type MemoryConfig struct {
	// Retention caps how many records are kept per memory type in Redis.
	Retention int `envconfig:"MEMORY_RETENTION" default:"1000"`
	// TTL extends the memory key lifetime on every write; zero disables expiry.
	TTL string `envconfig:"MEMORY_TTL" default:"0"`
}

// ToolServerConfig describes how to spawn the external tool-provider process.
// A fresh subprocess is started for every tool listing and every invocation.
type ToolServerConfig struct {
	Command string   `envconfig:"TOOL_SERVER_COMMAND" default:"python"`
	Args    []string `envconfig:"TOOL_SERVER_ARGS" default:"actions.py"`
}
