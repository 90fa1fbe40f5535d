package handlers

import (
	"context"
	"net/http"
	"strings"

	"remix-backend/internal/models"
	"remix-backend/internal/services"
)

type videoResolver interface {
	Resolve(ctx context.Context, req services.ResolveRequest) (string, error)
}

type commentFetcher interface {
	FetchComments(ctx context.Context, videoID string) ([]models.Comment, error)
}

type transcriptFetcher interface {
	GetTranscript(ctx context.Context, videoID string) (string, error)
}

type YouTubeHandler struct {
	resolver    videoResolver
	comments    commentFetcher
	transcripts transcriptFetcher
}

func NewYouTubeHandler(resolver *services.VideoResolver, comments *services.YouTubeDataService, transcripts *services.YouTubeService) *YouTubeHandler {
	h := &YouTubeHandler{resolver: resolver, transcripts: transcripts}
	// A nil service must stay a nil interface; the resolver reports the
	// missing key before comments are ever fetched.
	if comments != nil {
		h.comments = comments
	}
	return h
}

// GetComments resolves a video id from videoId, url or title+handle (in
// that priority) and returns up to 50 top-level comments.
func (h *YouTubeHandler) GetComments(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := services.ResolveRequest{
		VideoID: strings.TrimSpace(q.Get("videoId")),
		URL:     strings.TrimSpace(q.Get("url")),
		Title:   strings.TrimSpace(q.Get("title")),
		Handle:  strings.TrimSpace(q.Get("handle")),
	}

	if req.VideoID == "" && req.URL == "" && req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing videoId, url or title query parameter", r))
		return
	}

	videoID, err := h.resolver.Resolve(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err, "Failed to resolve video")
		return
	}
	if videoID == "" {
		writeJSON(w, http.StatusNotFound, errorResp("Could not determine a video id from the given input", r))
		return
	}

	if h.comments == nil {
		handleServiceError(w, r, &services.ConfigurationError{Key: "YOUTUBE_API_KEY"}, "Failed to fetch comments")
		return
	}

	comments, err := h.comments.FetchComments(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to fetch comments from YouTube")
		return
	}

	writeJSON(w, http.StatusOK, models.CommentsResponse{VideoID: videoID, Comments: comments})
}

func (h *YouTubeHandler) GetTranscript(w http.ResponseWriter, r *http.Request) {
	videoID := strings.TrimSpace(r.URL.Query().Get("videoId"))
	if videoID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing videoId", r))
		return
	}

	transcript, err := h.transcripts.GetTranscript(r.Context(), videoID)
	if err != nil {
		handleServiceError(w, r, err, "Failed to fetch transcript")
		return
	}

	writeJSON(w, http.StatusOK, models.TranscriptResponse{Transcript: transcript})
}
