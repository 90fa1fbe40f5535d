package services

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"remix-backend/internal/metrics"
	"remix-backend/internal/models"
)

const (
	// commentThreads.list refuses anything above 50 per page.
	commentPageSize   = 50
	searchResultCount = 5
)

// YouTubeDataService wraps the YouTube Data API v3 calls the app makes:
// handle lookup, video search and top-level comments.
type YouTubeDataService struct {
	svc *youtube.Service
}

// NewYouTubeDataService returns nil when apiKey is empty so callers can
// report the missing credential per route.
func NewYouTubeDataService(ctx context.Context, apiKey string, opts ...option.ClientOption) (*YouTubeDataService, error) {
	if apiKey == "" {
		return nil, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube Data API client: %w", err)
	}

	return &YouTubeDataService{svc: svc}, nil
}

// ChannelIDForHandle looks up the channel id behind an "@handle".
// Returns "" when the directory has no such handle.
func (s *YouTubeDataService) ChannelIDForHandle(ctx context.Context, handle string) (string, error) {
	resp, err := s.svc.Channels.List([]string{"id"}).
		ForHandle(handle).
		Context(ctx).
		Do()
	if err != nil {
		metrics.RecordUpstreamError("youtube")
		return "", upstreamFromGoogle("youtube", err)
	}

	if len(resp.Items) == 0 || resp.Items[0] == nil {
		return "", nil
	}
	return resp.Items[0].Id, nil
}

// SearchVideoID runs a text search, scoped to channelID when non-empty, and
// returns the first result that carries a video id. Results keep the API's
// relevance order.
func (s *YouTubeDataService) SearchVideoID(ctx context.Context, query, channelID string) (string, error) {
	call := s.svc.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(searchResultCount)
	if channelID != "" {
		call = call.ChannelId(channelID)
	}

	resp, err := call.Context(ctx).Do()
	if err != nil {
		metrics.RecordUpstreamError("youtube")
		return "", upstreamFromGoogle("youtube", err)
	}

	for _, item := range resp.Items {
		if item != nil && item.Id != nil && item.Id.VideoId != "" {
			return item.Id.VideoId, nil
		}
	}
	return "", nil
}

// FetchComments returns the first page of top-level comments, most
// relevant first. Further pages are never requested.
func (s *YouTubeDataService) FetchComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	resp, err := s.svc.CommentThreads.List([]string{"snippet"}).
		VideoId(videoID).
		MaxResults(commentPageSize).
		Order("relevance").
		TextFormat("plainText").
		Context(ctx).
		Do()
	if err != nil {
		metrics.RecordUpstreamError("youtube")
		return nil, upstreamFromGoogle("youtube", err)
	}

	comments := make([]models.Comment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if c, ok := flattenCommentThread(item); ok {
			comments = append(comments, c)
		}
	}
	return comments, nil
}

func flattenCommentThread(thread *youtube.CommentThread) (models.Comment, bool) {
	if thread == nil || thread.Snippet == nil || thread.Snippet.TopLevelComment == nil {
		return models.Comment{}, false
	}
	s := thread.Snippet.TopLevelComment.Snippet
	if s == nil {
		return models.Comment{}, false
	}

	text := s.TextDisplay
	if text == "" {
		text = s.TextOriginal
	}

	return models.Comment{
		Author:      s.AuthorDisplayName,
		Text:        text,
		LikeCount:   s.LikeCount,
		PublishedAt: s.PublishedAt,
	}, true
}
