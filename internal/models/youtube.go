package models

// Comment is a flattened top-level comment. Replies are not kept.
type Comment struct {
	Author      string `json:"author"`
	Text        string `json:"text"`
	LikeCount   int64  `json:"likeCount"`
	PublishedAt string `json:"publishedAt"`
}

type CommentsResponse struct {
	VideoID  string    `json:"videoId"`
	Comments []Comment `json:"comments"`
}

type TranscriptResponse struct {
	Transcript string `json:"transcript"`
}

// ScreenshotInsight is what the vision model read off a screenshot.
// Unreadable fields stay nil and serialize as null.
type ScreenshotInsight struct {
	Title       *string `json:"title"`
	Channel     *string `json:"channel"`
	VideoID     *string `json:"videoId"`
	Description string  `json:"description"`
}
