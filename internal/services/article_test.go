package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title>Why Fixed Windows Work</title>
  <meta name="description" content="A short piece on rate limiting.">
</head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <article>
    <h1>Why Fixed Windows Work</h1>
    <p>Rate limiting with fixed windows is the simplest scheme that behaves well under steady load. Each client gets a counter that resets when the window rolls over, and requests beyond the limit are rejected until then.</p>
    <p>The main weakness is the burst at window edges, where a client can send twice the limit in a short span. In practice this rarely matters for APIs that front expensive model calls, since the per-window budget is small.</p>
    <p>Sliding windows and token buckets smooth out those bursts at the cost of a little more state per client. For most services, the fixed window is good enough and far easier to reason about.</p>
  </article>
  <footer>Copyright</footer>
</body>
</html>`

func TestArticleService_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	svc := NewArticleService(zerolog.Nop())
	article, err := svc.Fetch(context.Background(), srv.URL+"/post")
	require.NoError(t, err)

	assert.Equal(t, srv.URL+"/post", article.URL)
	assert.Equal(t, "Why Fixed Windows Work", article.Title)
	assert.Contains(t, article.Content, "fixed windows is the simplest scheme")
	assert.NotContains(t, article.Content, "<p>")
}

func TestArticleService_FetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, strings.Repeat("gone ", 200), http.StatusGone)
	}))
	defer srv.Close()

	svc := NewArticleService(zerolog.Nop())
	_, err := svc.Fetch(context.Background(), srv.URL)

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusGone, upErr.StatusCode)
	assert.LessOrEqual(t, len(upErr.Body), 515)
}

func TestArticleService_RejectsNonHTTPURL(t *testing.T) {
	svc := NewArticleService(zerolog.Nop())
	for _, u := range []string{"ftp://example.com/file", "not a url", "file:///etc/passwd"} {
		_, err := svc.Fetch(context.Background(), u)
		assert.Error(t, err, u)
	}
}

func TestBuildArticle_FallbackChain(t *testing.T) {
	tests := []struct {
		name        string
		parts       articleParts
		wantTitle   string
		wantContent string
	}{
		{"content wins", articleParts{title: "T", content: "C", description: "D", excerpt: "E"}, "T", "C"},
		{"description next", articleParts{title: "T", description: "D", excerpt: "E"}, "T", "D"},
		{"excerpt next", articleParts{excerpt: "E"}, "Untitled", "E"},
		{"placeholder last", articleParts{content: "   "}, "Untitled", "No main content found."},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := buildArticle("https://e.com", tc.parts)
			assert.Equal(t, "https://e.com", a.URL)
			assert.Equal(t, tc.wantTitle, a.Title)
			assert.Equal(t, tc.wantContent, a.Content)
		})
	}
}
