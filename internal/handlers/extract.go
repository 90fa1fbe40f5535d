package handlers

import (
	"io"
	"net/http"
	"path/filepath"

	"remix-backend/internal/models"
	"remix-backend/internal/services"
)

type textExtractor interface {
	ExtractText(filename string, data []byte) (string, error)
}

type ExtractHandler struct {
	svc            textExtractor
	maxUploadBytes int64
}

func NewExtractHandler(svc *services.FileExtractService, maxUploadBytes int64) *ExtractHandler {
	return &ExtractHandler{svc: svc, maxUploadBytes: maxUploadBytes}
}

// ExtractText turns an uploaded pdf, docx or txt file into plain text for
// the raw text input.
func (h *ExtractHandler) ExtractText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithDetails("No file uploaded", err.Error(), r))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("No file uploaded", r))
		return
	}
	defer file.Close()

	filename := filepath.Base(header.Filename)
	if !services.SupportedExtension(filename) {
		writeJSON(w, http.StatusBadRequest, errorResp("Unsupported file type. Use .pdf, .docx, .txt or .md", r))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorRespWithDetails("Failed to read uploaded file", err.Error(), r))
		return
	}

	text, err := h.svc.ExtractText(filename, data)
	if err != nil {
		handleServiceError(w, r, err, "Failed to extract text")
		return
	}

	writeJSON(w, http.StatusOK, models.ExtractTextResponse{Filename: filename, Text: text})
}
