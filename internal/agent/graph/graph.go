package graph

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/tunescout-poc/server/internal/agent/graph/nodes"
	"github.com/tunescout-poc/server/internal/agent/graph/observers"
	"github.com/tunescout-poc/server/internal/agent/mcptools"
	"github.com/tunescout-poc/server/internal/agent/model"
	"github.com/tunescout-poc/server/pkg/logring"
	logx "github.com/tunescout-poc/server/pkg/logger"
)

// Runner is a thin wrapper to execute the compiled graph with the validated input.
type Runner interface {
	Recommend(ctx context.Context, in model.UserInput) (*model.Recommendation, error)
}

// Config holds everything needed to compose the full recommendation graph
// end-to-end. This is a convenience layer over GraphConfig that also
// constructs the ChatModels.
type Config struct {
	APIKey          string
	BaseURL         string
	PerceptionModel model.PerceptionModelConfig
	DecisionModel   model.DecisionModelConfig
	MemoryRepo      model.MemoryRepository
	ToolSession     *mcptools.StdioSession
	Ring            *logring.Ring
}

// GraphConfig holds all dependencies needed to build the graph
type GraphConfig struct {
	ChatModels  *nodes.ChatModels
	MemoryRepo  model.MemoryRepository
	ToolSession *mcptools.StdioSession
	Ring        *logring.Ring
}

// GraphBuilder handles the construction of the recommendation graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.UserInput, *model.Recommendation]
}

type graphRunner struct {
	runnable compose.Runnable[model.UserInput, *model.Recommendation]
}

func (r *graphRunner) Recommend(ctx context.Context, in model.UserInput) (*model.Recommendation, error) {
	return r.runnable.Invoke(ctx, in, compose.WithCallbacks(observers.NewAllCallbacks()))
}

// BuildRecommendGraph composes the chat models, builds the graph, and returns a Runner.
func BuildRecommendGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.MemoryRepo == nil {
		return nil, fmt.Errorf("memory repo is nil")
	}
	if cfg.ToolSession == nil {
		return nil, fmt.Errorf("tool session is nil")
	}
	if cfg.Ring == nil {
		return nil, fmt.Errorf("log ring is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		PerceptionConfig: &cfg.PerceptionModel,
		DecisionConfig:   &cfg.DecisionModel,
	})
	if err != nil {
		return nil, err
	}

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:  cms,
		MemoryRepo:  cfg.MemoryRepo,
		ToolSession: cfg.ToolSession,
		Ring:        cfg.Ring,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Recommendation graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled recommendation graph. The
// flow is strictly linear; a failure at any node aborts the whole run.
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.UserInput, *model.Recommendation], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Perception == nil || config.ChatModels.Decision == nil {
		return nil, fmt.Errorf("chat models are not properly initialized")
	}
	if config.MemoryRepo == nil || config.ToolSession == nil || config.Ring == nil {
		return nil, fmt.Errorf("graph dependencies are not properly initialized")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.UserInput, *model.Recommendation](
			compose.WithGenLocalState(func(ctx context.Context) *model.RecommendState {
				return &model.RecommendState{}
			}),
		),
	}

	builder.addNodes()
	builder.addEdges()

	return builder.compile(ctx)
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeMemoryWriter,
		nodes.NewMemoryWriterNode(b.config.MemoryRepo, b.config.Ring),
		compose.WithStatePreHandler(nodes.NewMemoryWriterPreHandler()),
	)

	b.graph.AddLambdaNode(nodes.NodePerceiver,
		nodes.NewPerceiverNode(b.config.ChatModels, b.config.Ring),
	)

	b.graph.AddLambdaNode(nodes.NodeToolDiscovery,
		nodes.NewToolDiscoveryNode(b.config.ToolSession, b.config.Ring),
	)

	b.graph.AddLambdaNode(nodes.NodeDecisionAssembler,
		nodes.NewDecisionAssemblerNode(b.config.Ring),
	)

	b.graph.AddChatModelNode(nodes.NodeDecisionModel,
		b.config.ChatModels.Decision,
		compose.WithStatePostHandler(nodes.NewDecisionModelPostHandler(b.config.ChatModels.DecisionModelName)),
	)

	b.graph.AddLambdaNode(nodes.NodeDecisionParser,
		nodes.NewDecisionParserNode(b.config.Ring),
	)

	b.graph.AddLambdaNode(nodes.NodeToolExecutor,
		nodes.NewToolExecutorNode(b.config.ToolSession, b.config.Ring),
	)
}

// addEdges creates the linear flow between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeMemoryWriter},
		{nodes.NodeMemoryWriter, nodes.NodePerceiver},
		{nodes.NodePerceiver, nodes.NodeToolDiscovery},
		{nodes.NodeToolDiscovery, nodes.NodeDecisionAssembler},
		{nodes.NodeDecisionAssembler, nodes.NodeDecisionModel},
		{nodes.NodeDecisionModel, nodes.NodeDecisionParser},
		{nodes.NodeDecisionParser, nodes.NodeToolExecutor},
		{nodes.NodeToolExecutor, compose.END},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.UserInput, *model.Recommendation], error) {
	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(20))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
