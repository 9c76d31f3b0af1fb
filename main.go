package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/tunescout-poc/server/internal/agent/graph"
	"github.com/tunescout-poc/server/internal/agent/mcptools"
	"github.com/tunescout-poc/server/internal/agent/model"
	"github.com/tunescout-poc/server/internal/agent/repo"
	"github.com/tunescout-poc/server/internal/api"
	"github.com/tunescout-poc/server/internal/core"
	logx "github.com/tunescout-poc/server/pkg/logger"
	"github.com/tunescout-poc/server/pkg/logring"
	pkgredis "github.com/tunescout-poc/server/pkg/redis"
)

const version = "0.1.0"

// AppConfig defines all configurable parameters for the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Server model.ServerConfig
	Redis  pkgredis.Config

	// LLM provider. The key is optional: without it the service still starts
	// and serves everything except /recommend.
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	Perception model.PerceptionModelConfig
	Decision   model.DecisionModelConfig
	Memory     model.MemoryConfig
	ToolServer model.ToolServerConfig
}

func main() {
	ctx := context.Background()

	// Load .env file
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// Load structured config from env
	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to initialise Redis client")
	}
	defer rdb.Close()
	logx.Info().Msg("Connected to Redis successfully")

	ttl, err := time.ParseDuration(cfg.Memory.TTL)
	if err != nil {
		logx.Fatal().Str("ttl", cfg.Memory.TTL).Err(err).Msg("Invalid MEMORY_TTL")
	}

	memories := repo.NewRedisMemoryRepository(rdb, cfg.Memory.Retention, ttl)
	ring := logring.New(logring.DefaultCapacity)
	session := mcptools.NewStdioSession(cfg.ToolServer, version)

	var runner graph.Runner
	if cfg.APIKey != "" {
		runner, err = graph.BuildRecommendGraph(ctx, graph.Config{
			APIKey:          cfg.APIKey,
			BaseURL:         cfg.BaseURL,
			PerceptionModel: cfg.Perception,
			DecisionModel:   cfg.Decision,
			MemoryRepo:      memories,
			ToolSession:     session,
			Ring:            ring,
		})
		if err != nil {
			logx.Fatal().Err(err).Msg("Failed to build recommendation graph")
		}
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set; /recommend is disabled")
	}

	srv := api.NewServer(cfg.Server, runner, memories, ring, cfg.APIKey != "")
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Fatal().Err(err).Msg("HTTP server failed")
	}
}
