package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remix-backend/internal/models"
)

type fakeGenerator struct {
	output     string
	err        error
	lastPrompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	return f.output, f.err
}

func (f *fakeGenerator) Provider() string { return "fake" }

func TestContentService_Ready(t *testing.T) {
	svc := NewContentService(nil, "OPENAI_API_KEY", zerolog.Nop())

	var cfgErr *ConfigurationError
	require.ErrorAs(t, svc.Ready(), &cfgErr)
	assert.Equal(t, "OPENAI_API_KEY", cfgErr.Key)
	assert.Equal(t, "server is missing OPENAI_API_KEY env variable", cfgErr.Error())

	svc = NewContentService(&fakeGenerator{}, "OPENAI_API_KEY", zerolog.Nop())
	assert.NoError(t, svc.Ready())
}

func TestContentService_Process_Success(t *testing.T) {
	gen := &fakeGenerator{output: "1/ a thread"}
	svc := NewContentService(gen, "OPENAI_API_KEY", zerolog.Nop())

	result := svc.Process(context.Background(), models.ProcessContentRequest{
		Transcript: json.RawMessage(`"the talk"`),
		RawText:    "my notes",
		Mode:       "thread",
		Tone:       "personal",
	})

	assert.False(t, result.Failed())
	assert.Equal(t, "1/ a thread", result.Output)
	assert.Contains(t, gen.lastPrompt, "=== TRANSCRIPT ===\n\"the talk\"")
	assert.Contains(t, gen.lastPrompt, "=== RAW TEXT ===\nmy notes")
	assert.Contains(t, gen.lastPrompt, ModeThreadMedium.Instruction())
	assert.Contains(t, gen.lastPrompt, "TONE: Personal and Conversational")
}

func TestContentService_Process_FailsOpen(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	svc := NewContentService(gen, "OPENAI_API_KEY", zerolog.Nop())

	req := models.ProcessContentRequest{RawText: "raw input"}
	result := svc.Process(context.Background(), req)

	require.True(t, result.Failed())
	assert.Equal(t, "fake", result.Err.Provider)
	assert.True(t, strings.HasPrefix(result.Output, "[AI CALL FAILED]"))
	assert.Contains(t, result.Output, "Reason: fake generation failed: rate limited")

	bank := BuildContentBank(ContentInputs{RawText: "raw input"})
	assert.True(t, strings.HasSuffix(result.Output, bank), "fallback must end with the verbatim content bank")
}

func TestFallbackOutput(t *testing.T) {
	out := FallbackOutput(errors.New("timeout"), "BANK")
	assert.Equal(t, "[AI CALL FAILED]\n\nReason: timeout\n\nHere is the raw content bank so at least you see what was sent:\n\nBANK", out)
}

func TestNewLLMClient(t *testing.T) {
	client, err := NewLLMClient(context.Background(), LLMOptions{Provider: "openai", APIKey: "  "})
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = NewLLMClient(context.Background(), LLMOptions{Provider: "openai", APIKey: "sk-test"})
	require.NoError(t, err)
	require.NotNil(t, client)
	assert.Equal(t, "openai", client.Provider())

	_, err = NewLLMClient(context.Background(), LLMOptions{Provider: "llama", APIKey: "k"})
	assert.Error(t, err)
}

func newOpenAITestServer(t *testing.T, content string, captured *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		if captured != nil {
			json.Unmarshal(body, captured)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenAIClient_Generate(t *testing.T) {
	var req map[string]any
	srv := newOpenAITestServer(t, "generated text", &req)

	client := NewOpenAIClient(LLMOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1/"})
	out, err := client.Generate(context.Background(), "the prompt")
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)

	assert.Equal(t, "gpt-4o-mini", req["model"])
	messages := req["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "the prompt", msg["content"])
}

func TestOpenAIClient_DescribeImage(t *testing.T) {
	var req map[string]any
	srv := newOpenAITestServer(t, `{"title":"T","channel":null,"videoId":null,"description":"d"}`, &req)

	client := NewOpenAIClient(LLMOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1", VisionModel: "gpt-4.1-mini"})
	out, err := client.DescribeImage(context.Background(), "look", []byte("PNGDATA"), "image/png")
	require.NoError(t, err)
	assert.Contains(t, out, `"title":"T"`)

	assert.Equal(t, "gpt-4.1-mini", req["model"])
	assert.Equal(t, map[string]any{"type": "json_object"}, req["response_format"])

	parts := req["messages"].([]any)[0].(map[string]any)["content"].([]any)
	require.Len(t, parts, 2)
	image := parts[1].(map[string]any)["image_url"].(map[string]any)
	assert.Equal(t, "data:image/png;base64,UE5HREFUQQ==", image["url"])
}

func TestOpenAIClient_UpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	client := NewOpenAIClient(LLMOptions{APIKey: "sk-test", BaseURL: srv.URL + "/v1"})
	svc := NewContentService(client, "OPENAI_API_KEY", zerolog.Nop())

	result := svc.Process(context.Background(), models.ProcessContentRequest{RawText: "x"})
	require.True(t, result.Failed())
	assert.Equal(t, "openai", result.Err.Provider)
	assert.Contains(t, result.Output, "[AI CALL FAILED]")
	assert.Contains(t, result.Output, "slow down")
}
