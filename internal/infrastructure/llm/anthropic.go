package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"NewsRanker/internal/config"
)

const defaultAnthropicMaxTokens = 256

type anthropicModel struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicOracle builds an oracle backed by the Anthropic Messages API.
func NewAnthropicOracle(cfg config.OracleConfig, log *slog.Logger) (*Oracle, error) {
	if cfg.APIKey == "" || cfg.Model == "" {
		return nil, fmt.Errorf("anthropic oracle misconfigured: api key and model are required")
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	maxTokens := int64(cfg.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	model := &anthropicModel{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: maxTokens,
	}
	return newOracle("anthropic", model, cfg.SystemPrompt, cfg.MaxConcurrent, log), nil
}

func (m *anthropicModel) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := m.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(m.model),
		MaxTokens: m.maxTokens,
		System:    []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	})
	if err != nil {
		return "", err
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
