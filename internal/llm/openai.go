package llm

import (
	"context"
	"fmt"

	"github.com/openai/openai-go/v3"
	oaioption "github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// openAIClient implements LLMClient on the OpenAI chat completions API.
type openAIClient struct {
	cfg    LLMConfig
	client openai.Client
	caller caller
}

// NewOpenAIClient creates an LLMClient backed by the OpenAI API, or any
// endpoint that speaks its chat completions protocol.
func NewOpenAIClient(cfg LLMConfig, observer Observer) LLMClient {
	opts := []oaioption.RequestOption{
		oaioption.WithAPIKey(cfg.APIKey),
		oaioption.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, oaioption.WithBaseURL(cfg.Endpoint))
	}
	return &openAIClient{
		cfg:    cfg,
		client: openai.NewClient(opts...),
		caller: newCaller(cfg, observer),
	}
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.params(req)

	var messages []openai.ChatCompletionMessageParamUnion
	if system := req.systemWithSchema(); system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	for _, m := range req.Conversation() {
		if m.Role == RoleAssistant {
			messages = append(messages, openai.AssistantMessage(m.Text))
			continue
		}
		messages = append(messages, openai.UserMessage(m.Text))
	}

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(c.cfg.Model),
		Messages:            messages,
		Temperature:         openai.Float(temp),
		MaxCompletionTokens: openai.Int(int64(maxTok)),
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	return c.caller.run(ctx, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			return "", "", fmt.Errorf("openai chat completion: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", resp.Model, nil
		}
		return resp.Choices[0].Message.Content, resp.Model, nil
	})
}

func (c *openAIClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}
