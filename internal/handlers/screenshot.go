package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"remix-backend/internal/models"
	"remix-backend/internal/services"
)

type screenshotAnalyzer interface {
	Ready() error
	Analyze(ctx context.Context, image []byte, mimeType string) *models.ScreenshotInsight
}

type ScreenshotHandler struct {
	svc            screenshotAnalyzer
	maxUploadBytes int64
}

func NewScreenshotHandler(svc *services.ScreenshotService, maxUploadBytes int64) *ScreenshotHandler {
	return &ScreenshotHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// ProcessScreenshot reads the multipart "image" field and returns what the
// vision model saw. Only a missing "image" field is a 400; unreadable
// uploads and analysis failures answer 200 with a placeholder insight.
func (h *ScreenshotHandler) ProcessScreenshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		MethodNotAllowed(w, r)
		return
	}

	if err := h.svc.Ready(); err != nil {
		handleServiceError(w, r, err, "Failed to process screenshot")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	log := zerolog.Ctx(r.Context())
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		log.Warn().Err(err).Msg("screenshot upload could not be parsed")
		writeJSON(w, http.StatusOK, services.FailedInsight())
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("No image file uploaded", r))
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		log.Warn().Err(err).Msg("screenshot upload could not be read")
		writeJSON(w, http.StatusOK, services.FailedInsight())
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(image)
	}

	writeJSON(w, http.StatusOK, h.svc.Analyze(r.Context(), image, mimeType))
}
