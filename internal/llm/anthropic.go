package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	antoption "github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient implements LLMClient on the Anthropic Messages API.
type anthropicClient struct {
	cfg    LLMConfig
	client anthropic.Client
	caller caller
}

// NewAnthropicClient creates an LLMClient backed by the Anthropic API.
func NewAnthropicClient(cfg LLMConfig, observer Observer) LLMClient {
	opts := []antoption.RequestOption{
		antoption.WithAPIKey(cfg.APIKey),
		antoption.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, antoption.WithBaseURL(cfg.Endpoint))
	}
	return &anthropicClient{
		cfg:    cfg,
		client: anthropic.NewClient(opts...),
		caller: newCaller(cfg, observer),
	}
}

func (c *anthropicClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.params(req)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.cfg.Model),
		MaxTokens:   int64(maxTok),
		Temperature: anthropic.Float(temp),
	}
	if system := req.systemWithSchema(); system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	for _, m := range req.Conversation() {
		block := anthropic.NewTextBlock(m.Text)
		if m.Role == RoleAssistant {
			params.Messages = append(params.Messages, anthropic.NewAssistantMessage(block))
			continue
		}
		params.Messages = append(params.Messages, anthropic.NewUserMessage(block))
	}

	return c.caller.run(ctx, req.Task, func(ctx context.Context) (string, string, error) {
		msg, err := c.client.Messages.New(ctx, params)
		if err != nil {
			return "", "", fmt.Errorf("anthropic messages: %w", err)
		}
		var b strings.Builder
		for _, block := range msg.Content {
			if block.Type == "text" {
				b.WriteString(block.Text)
			}
		}
		return b.String(), string(msg.Model), nil
	})
}

func (c *anthropicClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
