package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/rs/zerolog"

	"remix-backend/internal/metrics"
	"remix-backend/internal/models"
)

const (
	untitledArticle    = "Untitled"
	noArticleContent   = "No main content found."
	maxArticleBodySize = 10 * 1024 * 1024
)

type ArticleService struct {
	httpClient *http.Client
	log        zerolog.Logger
}

func NewArticleService(log zerolog.Logger) *ArticleService {
	return &ArticleService{
		httpClient: &http.Client{},
		log:        log.With().Str("component", "articles").Logger(),
	}
}

// articleParts is everything extraction found before the fallback chain is
// applied.
type articleParts struct {
	title       string
	content     string
	description string
	excerpt     string
}

// Fetch downloads a page once and extracts its main article.
func (s *ArticleService) Fetch(ctx context.Context, rawURL string) (*models.Article, error) {
	pageURL, err := url.Parse(rawURL)
	if err != nil || pageURL.Host == "" || (pageURL.Scheme != "http" && pageURL.Scheme != "https") {
		return nil, fmt.Errorf("invalid article url %q", rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamError("article")
		return nil, &UpstreamError{Service: "article", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxArticleBodySize))
	if err != nil {
		metrics.RecordUpstreamError("article")
		return nil, &UpstreamError{Service: "article", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordUpstreamError("article")
		return nil, &UpstreamError{Service: "article", StatusCode: resp.StatusCode, Body: truncateForLog(string(body), 512)}
	}

	parts := s.extract(body, pageURL)
	return buildArticle(rawURL, parts), nil
}

func (s *ArticleService) extract(body []byte, pageURL *url.URL) articleParts {
	var parts articleParts

	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body)); err == nil {
		parts.title = strings.TrimSpace(doc.Find("title").First().Text())
		parts.description = metaContent(doc, `meta[name="description"]`, `meta[property="og:description"]`, `meta[name="twitter:description"]`)
		if parts.title == "" {
			parts.title = metaContent(doc, `meta[property="og:title"]`)
		}
	}

	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		s.log.Debug().Err(err).Str("url", pageURL.String()).Msg("readability failed, using page metadata only")
		return parts
	}

	if t := strings.TrimSpace(article.Title); t != "" {
		parts.title = t
	}
	parts.excerpt = strings.TrimSpace(article.Excerpt)

	content := ""
	if article.Content != "" {
		if md, err := htmltomarkdown.ConvertString(article.Content); err == nil {
			content = md
		}
	}
	if strings.TrimSpace(content) == "" {
		content = article.TextContent
	}
	parts.content = strings.TrimSpace(content)

	return parts
}

// buildArticle applies the fallback chains: title falls back to
// "Untitled"; content falls back through description, excerpt and a fixed
// placeholder.
func buildArticle(rawURL string, p articleParts) *models.Article {
	title := p.title
	if title == "" {
		title = untitledArticle
	}

	content := noArticleContent
	for _, candidate := range []string{p.content, p.description, p.excerpt} {
		if strings.TrimSpace(candidate) != "" {
			content = candidate
			break
		}
	}

	return &models.Article{URL: rawURL, Title: title, Content: content}
}

func metaContent(doc *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := doc.Find(sel).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

func truncateForLog(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
