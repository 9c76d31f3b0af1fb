package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tunescout-poc/server/internal/agent/model"
	errx "github.com/tunescout-poc/server/internal/core/error"
	"github.com/tunescout-poc/server/pkg/logring"
)

const validationMessage = "Mood and activity are required."

const (
	defaultMemoryLimit = 5
	defaultLogLimit    = 100
)

// HealthResponse reports service liveness and LLM configuration state.
type HealthResponse struct {
	Status    string `json:"status"`
	APIKeySet bool   `json:"api_key_set"`
}

// RecommendResponse is the success payload of POST /recommend.
type RecommendResponse struct {
	Success         bool           `json:"success"`
	Recommendations []any          `json:"recommendations"`
	Reasoning       string         `json:"reasoning"`
	MemoryID        string         `json:"memory_id"`
	Perception      map[string]any `json:"perception"`
}

// MemoriesResponse wraps the recent-memory listing.
type MemoriesResponse struct {
	Memories []model.MemoryRecord `json:"memories"`
}

// LogsResponse wraps the recent-log listing.
type LogsResponse struct {
	Logs  []logring.Entry `json:"logs"`
	Count int             `json:"count"`
}

// ClearLogsResponse acknowledges a log clear.
type ClearLogsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}

// GET /health
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "healthy", APIKeySet: s.apiKeySet})
}

// POST /recommend
func (s *Server) handleRecommend(c echo.Context) error {
	s.ring.Append(logring.LevelInfo, "New recommendation request received", nil)

	var req model.RecommendRequest
	if err := c.Bind(&req); err != nil {
		s.ring.Append(logring.LevelError, "Failed to decode request body", map[string]any{"error": err.Error()})
		return errorJSON(c, http.StatusBadRequest, "invalid request body")
	}

	mood := strings.TrimSpace(req.Mood)
	activity := strings.TrimSpace(req.Activity)
	location := strings.TrimSpace(req.Location)
	tagsRaw := strings.TrimSpace(req.Tags)

	s.ring.Append(logring.LevelInfo,
		fmt.Sprintf("User input - Mood: %s, Activity: %s, Location: %s, Tags: %s", mood, activity, location, tagsRaw),
		map[string]any{"mood": mood, "activity": activity, "location": location, "tags": tagsRaw})

	if mood == "" || activity == "" {
		s.ring.Append(logring.LevelError, "Validation failed: "+validationMessage, nil)
		return errorJSON(c, http.StatusBadRequest, validationMessage)
	}

	if s.runner == nil {
		s.ring.Append(logring.LevelError, "Recommendation pipeline unavailable: GEMINI_API_KEY is not set", nil)
		return errorJSON(c, http.StatusInternalServerError, "GEMINI_API_KEY is not configured")
	}

	in := model.NewUserInput(mood, activity, location, model.ParseTags(tagsRaw))

	out, err := s.runner.Recommend(c.Request().Context(), in)
	if err != nil {
		s.ring.Append(logring.LevelError, "Exception occurred: "+err.Error(), nil)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	s.ring.Append(logring.LevelSuccess, "Recommendation request completed successfully", nil)
	return c.JSON(http.StatusOK, RecommendResponse{
		Success:         true,
		Recommendations: out.Recommendations,
		Reasoning:       out.Reasoning,
		MemoryID:        out.MemoryID,
		Perception:      out.Perception,
	})
}

// GET /memory/recent?limit=N
func (s *Server) handleMemoryRecent(c echo.Context) error {
	limit := queryInt(c, "limit", defaultMemoryLimit)

	memories, err := s.memories.GetMemories(c.Request().Context(), model.MemoryTypeConversation, limit)
	if err != nil {
		return errorJSON(c, errx.Status(err, http.StatusInternalServerError), err.Error())
	}
	return c.JSON(http.StatusOK, MemoriesResponse{Memories: memories})
}

// GET /logs?limit=N
func (s *Server) handleLogs(c echo.Context) error {
	limit := queryInt(c, "limit", defaultLogLimit)

	entries := s.ring.Recent(limit)
	return c.JSON(http.StatusOK, LogsResponse{Logs: entries, Count: len(entries)})
}

// POST /logs/clear
func (s *Server) handleLogsClear(c echo.Context) error {
	s.ring.Clear()
	s.ring.Append(logring.LevelInfo, "Logs cleared", nil)
	return c.JSON(http.StatusOK, ClearLogsResponse{Success: true, Message: "Logs cleared"})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
