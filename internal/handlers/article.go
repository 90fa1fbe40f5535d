package handlers

import (
	"context"
	"net/http"
	"strings"

	"remix-backend/internal/models"
	"remix-backend/internal/services"
)

type articleFetcher interface {
	Fetch(ctx context.Context, url string) (*models.Article, error)
}

type ArticleHandler struct {
	svc articleFetcher
}

func NewArticleHandler(svc *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{svc: svc}
}

func (h *ArticleHandler) GetArticle(w http.ResponseWriter, r *http.Request) {
	url := strings.TrimSpace(r.URL.Query().Get("url"))
	if url == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Missing url query parameter", r))
		return
	}

	article, err := h.svc.Fetch(r.Context(), url)
	if err != nil {
		handleServiceError(w, r, err, "Failed to fetch article")
		return
	}

	writeJSON(w, http.StatusOK, article)
}
