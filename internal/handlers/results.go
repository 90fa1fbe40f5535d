package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"remix-backend/internal/models"
	"remix-backend/internal/repository"
)

type resultStore interface {
	Save(ctx context.Context, output, mode string) (*models.StoredResult, error)
	Get(ctx context.Context, id string) (*models.StoredResult, error)
}

// ResultHandler hands a generated output to the results page.
type ResultHandler struct {
	store        resultStore
	maxBodyBytes int64
}

func NewResultHandler(store *repository.ResultRepo, maxBodyBytes int64) *ResultHandler {
	return &ResultHandler{store: store, maxBodyBytes: maxBodyBytes}
}

func (h *ResultHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req models.SaveResultRequest
	body := http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("Request body too large", r))
			return
		}
		writeJSON(w, http.StatusBadRequest, errorRespWithDetails("Invalid request body", err.Error(), r))
		return
	}
	if strings.TrimSpace(req.Output) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing output", r))
		return
	}

	res, err := h.store.Save(r.Context(), req.Output, req.Mode)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to store result")
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to store result", r))
		return
	}

	writeJSON(w, http.StatusCreated, res)
}

func (h *ResultHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	res, err := h.store.Get(r.Context(), id)
	if errors.Is(err, repository.ErrResultNotFound) {
		writeJSON(w, http.StatusNotFound, errorResp("Result not found or expired", r))
		return
	}
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("result_id", id).Msg("failed to load result")
		writeJSON(w, http.StatusInternalServerError, errorResp("Failed to load result", r))
		return
	}

	writeJSON(w, http.StatusOK, res)
}
