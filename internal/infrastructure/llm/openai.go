package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"NewsRanker/internal/config"
)

// langChainModel drives any OpenAI-compatible chat endpoint through langchaingo.
type langChainModel struct {
	client    llms.Model
	maxTokens int
}

// NewOpenAIOracle builds an oracle backed by an OpenAI-compatible API.
// Local servers without authentication work with an empty API key.
func NewOpenAIOracle(cfg config.OracleConfig, log *slog.Logger) (*Oracle, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("openai oracle misconfigured: model is required")
	}

	token := cfg.APIKey
	if token == "" {
		token = "none"
	}

	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(cfg.Model),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("new openai client: %w", err)
	}

	return newLangChainOracle(client, cfg, log), nil
}

func newLangChainOracle(client llms.Model, cfg config.OracleConfig, log *slog.Logger) *Oracle {
	model := &langChainModel{client: client, maxTokens: cfg.MaxTokens}
	return newOracle("openai", model, cfg.SystemPrompt, cfg.MaxConcurrent, log)
}

func (m *langChainModel) complete(ctx context.Context, system, user string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	opts := []llms.CallOption{llms.WithTemperature(0.0), llms.WithJSONMode()}
	if m.maxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(m.maxTokens))
	}

	resp, err := m.client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model")
	}

	return strings.TrimSpace(resp.Choices[0].Content), nil
}
