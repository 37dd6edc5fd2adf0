package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// geminiClient implements LLMClient on the Gemini API.
type geminiClient struct {
	cfg    LLMConfig
	client *genai.Client
	caller caller
}

// NewGeminiClient creates an LLMClient backed by Google's Gemini API.
func NewGeminiClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiClient{cfg: cfg, client: client, caller: newCaller(cfg, observer)}, nil
}

func (c *geminiClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	temp, maxTok := c.cfg.params(req)

	conf := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temp)),
		MaxOutputTokens: int32(maxTok),
	}
	if req.SystemPrompt != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.SystemPrompt, genai.RoleUser)
	}
	if req.Schema != nil {
		conf.ResponseMIMEType = "application/json"
		conf.ResponseSchema = geminiSchema(req.Schema)
	}

	contents := make([]*genai.Content, 0, len(req.Messages)+1)
	for _, m := range req.Conversation() {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Text, role))
	}

	return c.caller.run(ctx, req.Task, func(ctx context.Context) (string, string, error) {
		resp, err := c.client.Models.GenerateContent(ctx, c.cfg.Model, contents, conf)
		if err != nil {
			return "", "", fmt.Errorf("gemini generate content: %w", err)
		}
		return resp.Text(), resp.ModelVersion, nil
	})
}

// Available reports whether credentials are configured. The Gemini API has
// no cheap unauthenticated liveness endpoint.
func (c *geminiClient) Available(context.Context) bool {
	return c.cfg.APIKey != ""
}

func geminiSchema(s *JSONSchema) *genai.Schema {
	out := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: make(map[string]*genai.Schema, len(s.Properties)),
	}
	for _, p := range s.Properties {
		prop := &genai.Schema{Description: p.Description, Type: genai.TypeString}
		if p.Type == PropertyBoolean {
			prop.Type = genai.TypeBoolean
		}
		if !p.Required {
			prop.Nullable = genai.Ptr(true)
		}
		out.Properties[p.Name] = prop
		if p.Required {
			out.Required = append(out.Required, p.Name)
		}
		out.PropertyOrdering = append(out.PropertyOrdering, p.Name)
	}
	return out
}
