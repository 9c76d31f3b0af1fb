package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"

	"github.com/tunescout-poc/server/internal/agent/model"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// ChatModelConfig holds the configuration for chat model creation
type ChatModelConfig struct {
	APIKey           string
	BaseURL          string
	PerceptionConfig *model.PerceptionModelConfig
	DecisionConfig   *model.DecisionModelConfig
}

// ChatModels holds the Perception and Decision chat models
type ChatModels struct {
	Perception          *gemini.ChatModel
	Decision            *gemini.ChatModel
	PerceptionModelName string
	DecisionModelName   string
}

// NewChatModels creates both chat models against a shared Gemini client
func NewChatModels(ctx context.Context, config ChatModelConfig) (*ChatModels, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = config.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	perceptionModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.PerceptionConfig.Model,
		Temperature: &config.PerceptionConfig.Temperature,
		MaxTokens:   &config.PerceptionConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating perception model")
		return nil, fmt.Errorf("error creating perception model: %w", err)
	}

	decisionModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       config.DecisionConfig.Model,
		Temperature: &config.DecisionConfig.Temperature,
		MaxTokens:   &config.DecisionConfig.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating decision model")
		return nil, fmt.Errorf("error creating decision model: %w", err)
	}

	return &ChatModels{
		Perception:          perceptionModel,
		Decision:            decisionModel,
		PerceptionModelName: config.PerceptionConfig.Model,
		DecisionModelName:   config.DecisionConfig.Model,
	}, nil
}
