package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"
)

// Generator turns a prompt into text with a single, non-streaming call.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// VisionModel answers a prompt about one image. The answer is expected to
// be a JSON object.
type VisionModel interface {
	DescribeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// LLMClient is a provider that can do both.
type LLMClient interface {
	Generator
	VisionModel
	Close()
}

type LLMOptions struct {
	Provider    string
	APIKey      string
	Model       string
	VisionModel string
	BaseURL     string
}

// NewLLMClient builds the configured provider. It returns nil, nil when the
// API key is empty so routes can report the missing credential themselves.
func NewLLMClient(ctx context.Context, opts LLMOptions) (LLMClient, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, nil
	}

	switch opts.Provider {
	case "openai", "":
		return NewOpenAIClient(opts), nil
	case "gemini":
		return NewGeminiClient(ctx, opts)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", opts.Provider)
	}
}

// ──── OpenAI ────

type OpenAIClient struct {
	client      *openai.Client
	model       string
	visionModel string
}

func NewOpenAIClient(opts LLMOptions) *OpenAIClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}

	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	visionModel := opts.VisionModel
	if visionModel == "" {
		visionModel = model
	}

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(cfg),
		model:       model,
		visionModel: visionModel,
	}
}

func (c *OpenAIClient) Provider() string { return "openai" }

func (c *OpenAIClient) Close() {}

func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) DescribeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.visionModel,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageDataURL(image, mimeType)},
					},
				},
			},
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("response contained no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// ──── Gemini ────

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	vision *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, opts LLMOptions) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(opts.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	modelName := opts.Model
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}
	visionName := opts.VisionModel
	if visionName == "" {
		visionName = modelName
	}

	model := client.GenerativeModel(modelName)
	vision := client.GenerativeModel(visionName)
	vision.ResponseMIMEType = "application/json"

	return &GeminiClient{client: client, model: model, vision: vision}, nil
}

func (c *GeminiClient) Provider() string { return "gemini" }

func (c *GeminiClient) Close() {
	c.client.Close()
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return extractText(resp), nil
}

func (c *GeminiClient) DescribeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	format := strings.TrimPrefix(strings.ToLower(mimeType), "image/")
	if format == "" {
		format = "png"
	}

	resp, err := c.vision.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, image))
	if err != nil {
		return "", err
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
