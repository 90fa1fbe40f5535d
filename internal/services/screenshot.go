package services

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"remix-backend/internal/metrics"
	"remix-backend/internal/models"
)

const (
	noDescriptionPlaceholder = "Screenshot analysed, but no detailed description was provided."
	visionFailedPlaceholder  = "Screenshot uploaded, but Vision analysis failed. Using placeholder description instead."
)

const screenshotPrompt = `You are analysing a screenshot, usually of a YouTube video page.

Return ONLY a JSON object with EXACTLY these keys:

{
  "title": string or null,
  "channel": string or null,
  "videoId": string or null,
  "description": string
}

Rules:
- If you can clearly read the YouTube video title, put it in "title". Otherwise use null.
- If you can clearly read the channel name, put it in "channel". Otherwise use null.
- If you see a URL like "watch?v=XXXX", put "XXXX" in "videoId". Otherwise use null.
- "description" should be a short plain-text description of what you see (UI elements, subtitles, slides, etc.).
- Do NOT include any extra keys or extra text outside the JSON.`

type ScreenshotService struct {
	vision  VisionModel
	keyName string
	log     zerolog.Logger
}

// NewScreenshotService wraps a vision model. A nil model means the
// credential named by keyName is missing.
func NewScreenshotService(vision VisionModel, keyName string, log zerolog.Logger) *ScreenshotService {
	return &ScreenshotService{
		vision:  vision,
		keyName: keyName,
		log:     log.With().Str("component", "screenshots").Logger(),
	}
}

func (s *ScreenshotService) Ready() error {
	if s.vision == nil {
		return &ConfigurationError{Key: s.keyName}
	}
	return nil
}

// FailedInsight is the answer used when the upload or the analysis could
// not be completed.
func FailedInsight() *models.ScreenshotInsight {
	return &models.ScreenshotInsight{Description: visionFailedPlaceholder}
}

// Analyze asks the vision model for title, channel, video id and a
// description. Any failure after Ready yields the placeholder insight.
func (s *ScreenshotService) Analyze(ctx context.Context, image []byte, mimeType string) *models.ScreenshotInsight {
	if mimeType == "" {
		mimeType = "image/png"
	}

	raw, err := s.vision.DescribeImage(ctx, screenshotPrompt, image, mimeType)
	if err != nil {
		metrics.RecordUpstreamError("vision")
		s.log.Error().Err(err).Msg("vision analysis failed")
		return FailedInsight()
	}

	insight := ParseInsightJSON(raw)
	EnrichFromDescription(insight)

	s.log.Debug().
		Interface("title", insight.Title).
		Interface("channel", insight.Channel).
		Interface("video_id", insight.VideoID).
		Msg("screenshot analysed")
	return insight
}

// ParseInsightJSON reads the model's JSON answer. Non-string or empty
// fields become nil; invalid JSON yields an insight with only the
// placeholder description.
func ParseInsightJSON(raw string) *models.ScreenshotInsight {
	var fields map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &fields); err != nil {
		fields = nil
	}

	insight := &models.ScreenshotInsight{
		Title:       stringField(fields, "title"),
		Channel:     stringField(fields, "channel"),
		VideoID:     stringField(fields, "videoId"),
		Description: noDescriptionPlaceholder,
	}
	if d := stringField(fields, "description"); d != nil {
		insight.Description = *d
	}
	return insight
}

func stringField(fields map[string]any, key string) *string {
	v, ok := fields[key].(string)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	return &v
}

var (
	titledPattern     = regexp.MustCompile(`(?i)video titled\s+"([^"]+)"`)
	uploadedByPattern = regexp.MustCompile(`(?i)uploaded by the\s+([^,]+?) channel`)
	watchIDPattern    = regexp.MustCompile(`watch\?v=([A-Za-z0-9_-]{6,})`)
)

// EnrichFromDescription fills missing title, channel and video id from
// phrases in the description. Fields already set are left alone.
func EnrichFromDescription(insight *models.ScreenshotInsight) {
	desc := insight.Description

	if insight.Title == nil {
		insight.Title = firstGroup(titledPattern, desc)
	}
	if insight.Channel == nil {
		insight.Channel = firstGroup(uploadedByPattern, desc)
	}
	if insight.VideoID == nil {
		insight.VideoID = firstGroup(watchIDPattern, desc)
	}
}

func firstGroup(re *regexp.Regexp, s string) *string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}
	v := strings.TrimSpace(m[1])
	if v == "" {
		return nil
	}
	return &v
}

func imageDataURL(image []byte, mimeType string) string {
	if mimeType == "" {
		mimeType = "image/png"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
}
