package main

import (
	"context"
	"fmt"

	"github.com/jonathan/intern-ease/internal/config"
	"github.com/jonathan/intern-ease/internal/flows"
	"github.com/jonathan/intern-ease/internal/llm"
	"github.com/jonathan/intern-ease/internal/logging"
	"github.com/jonathan/intern-ease/internal/pipeline"
)

// newLLMClient is swapped out in tests
var newLLMClient = func(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	llmCfg, err := llm.ConfigFor(cfg.LLMProvider)
	if err != nil {
		return nil, err
	}
	if cfg.LLMModel != "" {
		llmCfg = llmCfg.WithAllModels(cfg.LLMModel)
	}
	return llm.NewClient(ctx, llmCfg, cfg.APIKey())
}

func loadConfig(requireModel bool) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(requireModel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newOrchestrator wires the model client into the generation pipeline.
// The caller closes the returned client.
func newOrchestrator(ctx context.Context, cfg *config.Config, log *logging.Logger) (*pipeline.Orchestrator, llm.Client, error) {
	client, err := newLLMClient(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s client: %w", cfg.LLMProvider, err)
	}
	return pipeline.New(flows.New(client), log), client, nil
}
