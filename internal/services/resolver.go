package services

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"remix-backend/internal/metrics"
)

// ResolveRequest carries every way a caller can point at a video. Fields
// are tried in order: VideoID, URL, then Title (optionally scoped by Handle).
type ResolveRequest struct {
	VideoID string
	URL     string
	Title   string
	Handle  string
}

// videoSearcher is the part of the YouTube Data API the resolver needs.
type videoSearcher interface {
	ChannelIDForHandle(ctx context.Context, handle string) (string, error)
	SearchVideoID(ctx context.Context, query, channelID string) (string, error)
}

type VideoResolver struct {
	searcher videoSearcher
}

// NewVideoResolver builds a resolver. A nil searcher means the YouTube
// credential is missing and every Resolve call fails with a
// ConfigurationError.
func NewVideoResolver(searcher *YouTubeDataService) *VideoResolver {
	if searcher == nil {
		return &VideoResolver{}
	}
	return &VideoResolver{searcher: searcher}
}

// Resolve returns the video id for req, or "" when nothing matched.
func (r *VideoResolver) Resolve(ctx context.Context, req ResolveRequest) (string, error) {
	if r.searcher == nil {
		return "", &ConfigurationError{Key: "YOUTUBE_API_KEY"}
	}

	if id := strings.TrimSpace(req.VideoID); id != "" {
		metrics.RecordResolution("explicit")
		return id, nil
	}

	if id := ExtractVideoID(req.URL); id != "" {
		metrics.RecordResolution("url")
		return id, nil
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		metrics.RecordResolution("none")
		return "", nil
	}

	channelID := ""
	if handle := NormalizeHandle(req.Handle); handle != "" {
		// An unknown handle only loses the channel scope.
		if id, err := r.searcher.ChannelIDForHandle(ctx, handle); err == nil {
			channelID = id
		}
	}

	id, err := r.searcher.SearchVideoID(ctx, title, channelID)
	if err != nil {
		return "", err
	}
	if id == "" {
		metrics.RecordResolution("none")
		return "", nil
	}

	metrics.RecordResolution("search")
	return id, nil
}

// NormalizeHandle trims a channel handle and gives it a leading "@".
func NormalizeHandle(handle string) string {
	h := strings.TrimSpace(handle)
	if h == "" {
		return ""
	}
	if strings.HasPrefix(h, "@") {
		return h
	}
	return "@" + h
}

var (
	videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11,}$`)
	schemePrefix   = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*://`)
)

// ExtractVideoID pulls a video id out of the supported YouTube URL shapes:
//
//	https://youtu.be/<id>
//	https://www.youtube.com/watch?v=<id>   (any youtube.com subdomain)
//	https://www.youtube.com/shorts/<id>
//	https://www.youtube.com/embed/<id>
//
// Anything else, including input that does not parse, yields "".
func ExtractVideoID(rawURL string) string {
	raw := strings.TrimSpace(rawURL)
	if raw == "" {
		return ""
	}
	if !schemePrefix.MatchString(raw) {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}

	host := strings.ToLower(u.Hostname())
	parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })

	var candidate string
	switch {
	case hostMatches(host, "youtu.be"):
		if len(parts) > 0 {
			candidate = parts[0]
		}
	case hostMatches(host, "youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			candidate = v
			break
		}
		for i := 0; i+1 < len(parts); i++ {
			if parts[i] == "shorts" || parts[i] == "embed" {
				candidate = parts[i+1]
				break
			}
		}
	}

	if !videoIDPattern.MatchString(candidate) {
		return ""
	}
	return candidate
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}
