package models

import "time"

// StoredResult is a generated output parked for the results page.
type StoredResult struct {
	ID        string    `json:"id"`
	Output    string    `json:"output"`
	Mode      string    `json:"mode"`
	CreatedAt time.Time `json:"createdAt"`
}

type SaveResultRequest struct {
	Output string `json:"output"`
	Mode   string `json:"mode"`
}

// ErrorResponse is the {error} payload every route uses on failure.
type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
