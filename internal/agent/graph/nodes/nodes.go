package nodes

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/tunescout-poc/server/internal/agent/graph/parsers"
	"github.com/tunescout-poc/server/internal/agent/graph/prompts"
	"github.com/tunescout-poc/server/internal/agent/mcptools"
	"github.com/tunescout-poc/server/internal/agent/model"
	errx "github.com/tunescout-poc/server/internal/core/error"
	"github.com/tunescout-poc/server/pkg/logring"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// Node names of the recommendation graph, in execution order.
const (
	NodeMemoryWriter      = "MemoryWriter"
	NodePerceiver         = "Perceiver"
	NodeToolDiscovery     = "ToolDiscovery"
	NodeDecisionAssembler = "DecisionAssembler"
	NodeDecisionModel     = "DecisionChatModel"
	NodeDecisionParser    = "DecisionParser"
	NodeToolExecutor      = "ToolExecutor"
)

const memoryImportance = 2.0

// NewMemoryWriterPreHandler seeds the graph state with the validated input.
func NewMemoryWriterPreHandler() func(context.Context, model.UserInput, *model.RecommendState) (model.UserInput, error) {
	return func(ctx context.Context, in model.UserInput, s *model.RecommendState) (model.UserInput, error) {
		s.Input = in
		return in, nil
	}
}

// NewMemoryWriterNode persists the raw input as a conversation memory record.
func NewMemoryWriterNode(repo model.MemoryRepository, ring *logring.Ring) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.UserInput) (model.UserInput, error) {
		ring.Append(logring.LevelInfo, "Storing input in memory", nil)

		record := model.MemoryRecord{
			Content:    memoryContent(in),
			Type:       model.MemoryTypeConversation,
			Importance: memoryImportance,
			Tags:       in.Tags,
			Metadata:   map[string]any{"source": "web"},
		}
		memID, err := repo.AddMemory(ctx, record)
		if err != nil {
			ring.Append(logring.LevelError, "Failed to store input in memory", map[string]any{"error": err.Error()})
			return model.UserInput{}, err
		}

		ring.Append(logring.LevelSuccess, fmt.Sprintf("Stored to short-term memory: %s", memID), map[string]any{"memory_id": memID})

		if perr := compose.ProcessState(ctx, func(_ context.Context, s *model.RecommendState) error {
			s.MemoryID = memID
			return nil
		}); perr != nil {
			return model.UserInput{}, fmt.Errorf("failed to access state: %w", perr)
		}
		return in, nil
	})
}

func memoryContent(in model.UserInput) string {
	return fmt.Sprintf("Mood: %s; Activity: %s; Tags: %s",
		in.Mood, in.Activity, strings.Join(in.Tags, ", "))
}

// NewPerceiverNode calls the Gemini perception model and stores the opaque
// perception mapping in state.
func NewPerceiverNode(cm *ChatModels, ring *logring.Ring) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.UserInput) (model.UserInput, error) {
		ring.Append(logring.LevelInfo, "Building perception layer", nil)

		msgs, err := prompts.RenderPerceptionMessages(ctx, in)
		if err != nil {
			return model.UserInput{}, err
		}

		ring.Append(logring.LevelInfo, "Calling Gemini perception layer", nil)
		out, err := cm.Perception.Generate(ctx, msgs)
		if err != nil {
			ring.Append(logring.LevelError, "Gemini perception call failed", map[string]any{"error": err.Error()})
			return model.UserInput{}, errx.WrapLLM(err)
		}

		perception, err := parsers.ParsePerception(out.Content)
		if err != nil {
			ring.Append(logring.LevelError, "Failed to parse perception output", map[string]any{"error": err.Error()})
			return model.UserInput{}, err
		}

		ring.Append(logring.LevelSuccess, "Gemini perception completed", map[string]any{"perception": perception})

		if perr := compose.ProcessState(ctx, func(_ context.Context, s *model.RecommendState) error {
			s.Perception = perception
			return nil
		}); perr != nil {
			return model.UserInput{}, fmt.Errorf("failed to access state: %w", perr)
		}
		return in, nil
	})
}

// NewToolDiscoveryNode fetches a fresh tool catalog from the tool server and
// stores the catalog, its names, and its prompt description in state.
func NewToolDiscoveryNode(session *mcptools.StdioSession, ring *logring.Ring) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.UserInput) (model.UserInput, error) {
		ring.Append(logring.LevelInfo, "Getting tool catalog from tool server", nil)

		catalog, err := session.ListTools(ctx)
		if err != nil {
			ring.Append(logring.LevelError, "Tool discovery failed", map[string]any{"error": err.Error()})
			return model.UserInput{}, err
		}

		names := mcptools.Names(catalog)
		ring.Append(logring.LevelSuccess, fmt.Sprintf("Found %d available tools", len(catalog)), nil)
		ring.Append(logring.LevelInfo, fmt.Sprintf("Available tools: %s", strings.Join(names, ", ")), nil)

		if perr := compose.ProcessState(ctx, func(_ context.Context, s *model.RecommendState) error {
			s.Catalog = catalog
			s.ToolNames = names
			s.CatalogText = mcptools.Describe(catalog)
			return nil
		}); perr != nil {
			return model.UserInput{}, fmt.Errorf("failed to access state: %w", perr)
		}
		return in, nil
	})
}

// NewDecisionAssemblerNode builds the decision model messages from the
// serialized user input and the discovered catalog.
func NewDecisionAssemblerNode(ring *logring.Ring) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.UserInput) ([]*schema.Message, error) {
		ring.Append(logring.LevelInfo, "Calling decision maker", nil)

		var toolNames []string
		var catalogText string
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.RecommendState) error {
			toolNames = s.ToolNames
			catalogText = s.CatalogText
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		serialized, err := sonic.MarshalString(in)
		if err != nil {
			return nil, fmt.Errorf("serialize user input: %w", err)
		}

		return prompts.RenderDecisionMessages(ctx, serialized, toolNames, catalogText)
	})
}

// NewDecisionModelPostHandler logs token usage for the decision model call.
func NewDecisionModelPostHandler(modelName string) func(context.Context, *schema.Message, *model.RecommendState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, state *model.RecommendState) (*schema.Message, error) {
		if out != nil && out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
			logx.Debug().
				Str("node", NodeDecisionModel).
				Str("model", modelName).
				Int("prompt_tokens", out.ResponseMeta.Usage.PromptTokens).
				Int("completion_tokens", out.ResponseMeta.Usage.CompletionTokens).
				Int("total_tokens", out.ResponseMeta.Usage.TotalTokens).
				Msg("LLM usage")
		}
		return out, nil
	}
}

// NewDecisionParserNode parses the decision output and rejects tools that are
// not part of the discovered catalog.
func NewDecisionParserNode(ring *logring.Ring) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, resp *schema.Message) (model.Decision, error) {
		decision, err := parsers.ParseDecision(resp.Content)
		if err != nil {
			logx.Error().Err(err).Msg("Error parsing decision response")
			ring.Append(logring.LevelError, "Failed to parse decision", map[string]any{"error": err.Error()})
			return model.Decision{}, err
		}

		var toolNames []string
		if perr := compose.ProcessState(ctx, func(_ context.Context, s *model.RecommendState) error {
			toolNames = s.ToolNames
			s.Decision = decision
			return nil
		}); perr != nil {
			return model.Decision{}, fmt.Errorf("failed to access state: %w", perr)
		}

		if err := parsers.EnsureKnownTool(decision, toolNames); err != nil {
			ring.Append(logring.LevelError, "Decision selected an unknown tool", map[string]any{"tool_name": decision.ToolName})
			return model.Decision{}, err
		}

		ring.Append(logring.LevelSuccess,
			fmt.Sprintf("Decision made: Tool=%s, Reasoning=%s", decision.ToolName, decision.Reasoning),
			map[string]any{"tool_name": decision.ToolName})
		return *decision, nil
	})
}

// NewToolExecutorNode invokes the selected tool, normalizes its payload, and
// assembles the final recommendation from graph state.
func NewToolExecutorNode(session *mcptools.StdioSession, ring *logring.Ring) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, decision model.Decision) (*model.Recommendation, error) {
		args, _ := sonic.MarshalString(decision.Arguments)
		ring.Append(logring.LevelInfo,
			fmt.Sprintf("Calling tool: %s with arguments: %s", decision.ToolName, args), nil)

		payload, err := session.CallTool(ctx, decision.ToolName, decision.Arguments)
		if err != nil {
			ring.Append(logring.LevelError, "Tool execution failed", map[string]any{"error": err.Error()})
			return nil, err
		}
		ring.Append(logring.LevelSuccess, "Tool execution completed", nil)

		result := parsers.NormalizeToolPayload(payload)
		switch {
		case result.Kind == model.ToolResultMalformed:
			ring.Append(logring.LevelWarning,
				fmt.Sprintf("Failed to parse payload as JSON: %s", result.Raw), nil)
		case len(result.Items) > 0:
			ring.Append(logring.LevelSuccess,
				fmt.Sprintf("Received %d recommendation(s)", len(result.Items)), nil)
			logTopRecommendation(ring, result.Items[0])
		default:
			ring.Append(logring.LevelWarning, "No recommendations received", nil)
		}

		rec := &model.Recommendation{
			Recommendations: result.Items,
			Reasoning:       decision.Reasoning,
		}
		if perr := compose.ProcessState(ctx, func(_ context.Context, s *model.RecommendState) error {
			rec.MemoryID = s.MemoryID
			rec.Perception = s.Perception
			return nil
		}); perr != nil {
			return nil, fmt.Errorf("failed to access state: %w", perr)
		}
		return rec, nil
	})
}

func logTopRecommendation(ring *logring.Ring, top any) {
	item, ok := top.(map[string]any)
	if !ok {
		return
	}
	song, _ := item["song"].(string)
	artist, _ := item["artist"].(string)
	if song == "" {
		song = "Unknown"
	}
	if artist == "" {
		artist = "Unknown"
	}
	ring.Append(logring.LevelInfo, fmt.Sprintf("Top recommendation: %s by %s", song, artist), nil)
}
