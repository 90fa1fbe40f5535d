package services

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"regexp"
	"strings"

	ytapi "github.com/hightemp/youtube-transcript-api-go/api"
	yt "github.com/kkdai/youtube/v2"
	"github.com/rs/zerolog"
)

// YouTubeService fetches caption transcripts. It needs no API credential.
type YouTubeService struct {
	httpClient    *http.Client
	transcriptAPI *ytapi.YouTubeTranscriptApi
	ytClient      *yt.Client
	watchBaseURL  string
	log           zerolog.Logger
}

type timedTextXML struct {
	XMLName xml.Name  `xml:"transcript"`
	Texts   []textXML `xml:"text"`
}

type textXML struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

var transcriptLanguages = []string{"en", "en-US", "en-GB"}

func NewYouTubeService(log zerolog.Logger) *YouTubeService {
	return &YouTubeService{
		httpClient:    &http.Client{},
		transcriptAPI: ytapi.NewYouTubeTranscriptApi(),
		ytClient:      &yt.Client{},
		watchBaseURL:  "https://www.youtube.com/watch?v=",
		log:           log.With().Str("component", "transcripts").Logger(),
	}
}

// GetTranscript returns the caption text of a video as one string.
// English tracks are preferred; any language is accepted after that.
func (s *YouTubeService) GetTranscript(ctx context.Context, videoID string) (string, error) {
	transcript, err := s.transcriptAPI.GetTranscript(videoID, transcriptLanguages)
	if err != nil {
		transcript, err = s.transcriptAPI.GetTranscript(videoID, nil)
	}
	if err == nil {
		parts := make([]string, 0, len(transcript.Entries))
		for _, entry := range transcript.Entries {
			parts = append(parts, entry.Text)
		}
		if text := joinCaptionText(parts); text != "" {
			return text, nil
		}
		err = fmt.Errorf("subtitle track is empty")
	}

	s.log.Debug().Err(err).Str("video_id", videoID).Msg("transcript API failed, trying player transcript")

	playerText, playerErr := s.getTranscriptViaPlayer(ctx, videoID)
	if playerErr == nil {
		return playerText, nil
	}

	timedText, timedErr := s.getTranscriptViaTimedText(ctx, videoID)
	if timedErr == nil {
		return timedText, nil
	}

	return "", fmt.Errorf("no subtitles available via transcript API (%v), player transcript (%v) or timedtext fallback (%v)", err, playerErr, timedErr)
}

func (s *YouTubeService) getTranscriptViaPlayer(ctx context.Context, videoID string) (string, error) {
	video, err := s.ytClient.GetVideoContext(ctx, videoID)
	if err != nil {
		return "", fmt.Errorf("failed to fetch video metadata: %w", err)
	}

	segments, err := s.ytClient.GetTranscriptCtx(ctx, video, "en")
	if err != nil {
		return "", fmt.Errorf("failed to fetch player transcript: %w", err)
	}

	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}

	text := joinCaptionText(parts)
	if text == "" {
		return "", fmt.Errorf("player transcript is empty")
	}
	return text, nil
}

func (s *YouTubeService) getTranscriptViaTimedText(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.watchBaseURL+videoID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch YouTube page: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read YouTube page: %w", err)
	}

	captionURL, err := extractCaptionURL(string(body))
	if err != nil {
		return "", err
	}

	captionReq, err := http.NewRequestWithContext(ctx, http.MethodGet, captionURL, nil)
	if err != nil {
		return "", err
	}
	captionResp, err := s.httpClient.Do(captionReq)
	if err != nil {
		return "", fmt.Errorf("failed to fetch captions: %w", err)
	}
	defer captionResp.Body.Close()

	captionBody, err := io.ReadAll(captionResp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read captions: %w", err)
	}

	transcript, err := parseCaptionsXML(captionBody)
	if err != nil {
		return "", fmt.Errorf("failed to parse captions XML: %w", err)
	}

	return transcript, nil
}

var (
	captionTracksPattern  = regexp.MustCompile(`"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionTracksFallback = regexp.MustCompile(`"playerCaptionsTracklistRenderer"\s*:\s*\{(?:.*?,)?\s*"captionTracks"\s*:\s*\[(.*?)\],\s*"`)
	captionBaseURLPattern = regexp.MustCompile(`"baseUrl"\s*:\s*"(.*?)"`)
)

func extractCaptionURL(pageHTML string) (string, error) {
	matches := captionTracksPattern.FindStringSubmatch(pageHTML)
	if len(matches) < 2 {
		matches = captionTracksFallback.FindStringSubmatch(pageHTML)
		if len(matches) < 2 {
			return "", fmt.Errorf("no captions available for this video")
		}
	}

	urlMatches := captionBaseURLPattern.FindStringSubmatch(matches[1])
	if len(urlMatches) < 2 {
		return "", fmt.Errorf("caption track found but baseUrl missing")
	}

	u := urlMatches[1]
	u = strings.ReplaceAll(u, `\u0026`, "&")
	u = strings.ReplaceAll(u, `\/`, "/")

	return u, nil
}

func parseCaptionsXML(data []byte) (string, error) {
	var tt timedTextXML
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", err
	}

	parts := make([]string, 0, len(tt.Texts))
	for _, t := range tt.Texts {
		parts = append(parts, html.UnescapeString(t.Text))
	}

	text := joinCaptionText(parts)
	if text == "" {
		return "", fmt.Errorf("captions XML empty")
	}
	return text, nil
}

func joinCaptionText(parts []string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
