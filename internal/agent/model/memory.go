package model

import (
	"context"
	"time"
)

// MemoryType tags a stored record by its origin.
type MemoryType string

const (
	MemoryTypeConversation MemoryType = "conversation"
)

// MemoryRecord is one persisted user interaction.
type MemoryRecord struct {
	ID         string         `json:"id"`
	Content    string         `json:"content"`
	Type       MemoryType     `json:"type"`
	Importance float64        `json:"importance"`
	Tags       []string       `json:"tags"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}

// MemoryRepository is the persistence interface consumed by the pipeline and
// the HTTP layer.
type MemoryRepository interface {
	// AddMemory persists the record and returns its assigned identifier.
	AddMemory(ctx context.Context, record MemoryRecord) (string, error)

	// GetMemories returns up to limit records of the given type, most recent
	// first.
	GetMemories(ctx context.Context, memoryType MemoryType, limit int) ([]MemoryRecord, error)
}
