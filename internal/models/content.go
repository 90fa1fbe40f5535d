package models

import "encoding/json"

// ProcessContentRequest is the normalized input of POST /processContent.
// The source fields are kept as raw JSON because they are serialized into
// the content bank as-is.
type ProcessContentRequest struct {
	Screenshots []json.RawMessage `json:"screenshots"`
	Transcript  json.RawMessage   `json:"transcript"`
	Comments    json.RawMessage   `json:"comments"`
	Article     json.RawMessage   `json:"article"`
	RawText     string            `json:"rawText"`
	Mode        string            `json:"mode"`
	Tone        string            `json:"tone"`
}

type ProcessContentResponse struct {
	Output string `json:"output"`
}

type Article struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ExtractTextResponse struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}
