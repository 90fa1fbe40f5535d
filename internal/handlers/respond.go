package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"remix-backend/internal/middleware"
	"remix-backend/internal/models"
	"remix-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		RequestID: middleware.GetRequestID(r.Context()),
	}
}

func errorRespWithDetails(message, details string, r *http.Request) models.ErrorResponse {
	resp := errorResp(message, r)
	resp.Details = details
	return resp
}

// MethodNotAllowed answers with the same {error} shape as every route.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResp("Method not allowed", r))
}

func NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResp("Not found", r))
}

// handleServiceError maps typed service errors to statuses. fallback is the
// message used for upstream and unexpected failures.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := zerolog.Ctx(r.Context())

	var (
		cfgErr      *services.ConfigurationError
		validErr    *services.ValidationError
		upstreamErr *services.UpstreamError
	)
	switch {
	case errors.As(err, &cfgErr):
		log.Error().Str("key", cfgErr.Key).Msg("missing configuration")
		writeJSON(w, http.StatusInternalServerError, errorResp(cfgErr.Error(), r))
	case errors.As(err, &validErr):
		writeJSON(w, http.StatusBadRequest, errorResp(validErr.Error(), r))
	case errors.As(err, &upstreamErr):
		log.Error().
			Str("service", upstreamErr.Service).
			Int("upstream_status", upstreamErr.StatusCode).
			Str("upstream_body", upstreamErr.Body).
			Err(upstreamErr.Err).
			Msg(fallback)
		writeJSON(w, http.StatusInternalServerError, errorResp(fallback, r))
	default:
		log.Error().Err(err).Msg(fallback)
		writeJSON(w, http.StatusInternalServerError, errorRespWithDetails(fallback, err.Error(), r))
	}
}
