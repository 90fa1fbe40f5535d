package services

import (
	"bytes"
	"encoding/json"
	"strings"
)

const emptySection = "None"

// ContentInputs are the five sources merged into a content bank. JSON
// inputs are kept raw and re-serialized compactly.
type ContentInputs struct {
	Screenshots []json.RawMessage
	Transcript  json.RawMessage
	Comments    json.RawMessage
	Article     json.RawMessage
	RawText     string
}

// BuildContentBank renders the inputs as one labeled text blob in a fixed
// section order. Missing or empty inputs render as "None". Nothing is
// truncated.
func BuildContentBank(in ContentInputs) string {
	var b strings.Builder

	b.WriteString("\n=== SCREENSHOTS ===\n")
	b.WriteString(screenshotsSection(in.Screenshots))

	b.WriteString("\n\n=== TRANSCRIPT ===\n")
	b.WriteString(jsonSection(in.Transcript))

	b.WriteString("\n\n=== COMMENTS ===\n")
	b.WriteString(jsonSection(in.Comments))

	b.WriteString("\n\n=== ARTICLE ===\n")
	b.WriteString(articleSection(in.Article))

	b.WriteString("\n\n=== RAW TEXT ===\n")
	if strings.TrimSpace(in.RawText) == "" {
		b.WriteString(emptySection)
	} else {
		b.WriteString(in.RawText)
	}
	b.WriteString("\n")

	return b.String()
}

func screenshotsSection(shots []json.RawMessage) string {
	entries := make([]string, 0, len(shots))
	for _, shot := range shots {
		if s, ok := compactJSON(shot); ok {
			entries = append(entries, s)
		}
	}
	if len(entries) == 0 {
		return emptySection
	}
	return strings.Join(entries, "\n\n")
}

func jsonSection(raw json.RawMessage) string {
	if s, ok := compactJSON(raw); ok {
		return s
	}
	return emptySection
}

// articleSection prefers the article's extracted content and falls back
// to the whole object.
func articleSection(raw json.RawMessage) string {
	s, ok := compactJSON(raw)
	if !ok {
		return emptySection
	}

	var article struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(raw, &article); err == nil && article.Content != "" {
		return article.Content
	}
	return s
}

// compactJSON reports false for absent, null or empty values ("", [], {}).
// Invalid JSON is kept verbatim.
func compactJSON(raw json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return "", false
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed), true
	}

	switch buf.String() {
	case "null", `""`, "[]", "{}":
		return "", false
	}
	return buf.String(), true
}
