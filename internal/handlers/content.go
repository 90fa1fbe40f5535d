package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"remix-backend/internal/models"
	"remix-backend/internal/services"
)

type contentProcessor interface {
	Ready() error
	Process(ctx context.Context, req models.ProcessContentRequest) services.GenerationResult
}

type ContentHandler struct {
	svc          contentProcessor
	maxBodyBytes int64
}

func NewContentHandler(svc *services.ContentService, maxBodyBytes int64) *ContentHandler {
	return &ContentHandler{svc: svc, maxBodyBytes: maxBodyBytes}
}

// ProcessContent always answers 200 with {output} once the body is valid.
// A failed generation returns the fallback text in output.
func (h *ContentHandler) ProcessContent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, r)
		return
	}

	if err := h.svc.Ready(); err != nil {
		handleServiceError(w, r, err, "Failed to process content")
		return
	}

	// An empty body is an empty request.
	var body processContentBody
	reader := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(reader).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorRespWithDetails("Invalid request body", err.Error(), r))
		return
	}

	result := h.svc.Process(r.Context(), body.request())
	if result.Failed() {
		zerolog.Ctx(r.Context()).Warn().Err(result.Err).Msg("returning fallback output")
	}

	writeJSON(w, http.StatusOK, models.ProcessContentResponse{Output: result.Output})
}

// processContentBody accepts any JSON shape per field. Only syntactically
// invalid JSON is rejected; odd shapes are normalized by request.
type processContentBody struct {
	Screenshots json.RawMessage `json:"screenshots"`
	Transcript  json.RawMessage `json:"transcript"`
	Comments    json.RawMessage `json:"comments"`
	Article     json.RawMessage `json:"article"`
	RawText     json.RawMessage `json:"rawText"`
	Mode        json.RawMessage `json:"mode"`
	Tone        json.RawMessage `json:"tone"`
}

// request maps the body onto the service request. A non-array screenshots
// value counts as no screenshots, a non-string rawText is kept as compact
// JSON, and a non-string mode or tone selects the default.
func (b processContentBody) request() models.ProcessContentRequest {
	return models.ProcessContentRequest{
		Screenshots: screenshotList(b.Screenshots),
		Transcript:  b.Transcript,
		Comments:    b.Comments,
		Article:     b.Article,
		RawText:     textOrJSON(b.RawText),
		Mode:        stringOrEmpty(b.Mode),
		Tone:        stringOrEmpty(b.Tone),
	}
}

func screenshotList(raw json.RawMessage) []json.RawMessage {
	var shots []json.RawMessage
	if err := json.Unmarshal(raw, &shots); err != nil {
		return nil
	}
	return shots
}

func stringOrEmpty(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func textOrJSON(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
