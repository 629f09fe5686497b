package checkin

import "time"

// FrameRequest is one captured video frame, base64 encoded in JSON
type FrameRequest struct {
	Image       []byte `json:"image" validate:"required"`
	TimestampMs int64  `json:"timestamp_ms" validate:"gte=0"`
}

// ContextRequest carries what the client knows about earlier check-ins
type ContextRequest struct {
	PriorThemes    []string `json:"prior_themes,omitempty" validate:"max=20"`
	PriorScore     *float64 `json:"prior_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	PriorDirection string   `json:"prior_direction,omitempty" validate:"omitempty,oneof=better same worse"`
	DisplayName    string   `json:"display_name,omitempty" validate:"max=100"`
}

// EnrichRequest represents the request to enrich one check-in.
// Audio is a base64 encoded WAV file.
type EnrichRequest struct {
	UserID          string          `json:"user_id" validate:"required,max=255"`
	SessionID       string          `json:"session_id,omitempty" validate:"max=255"`
	Transcript      string          `json:"transcript"`
	Audio           []byte          `json:"audio,omitempty" validate:"max=26214400"`
	Frames          []FrameRequest  `json:"frames,omitempty" validate:"max=300,dive"`
	DurationSeconds float64         `json:"duration_seconds" validate:"gte=0"`
	StartedAt       *time.Time      `json:"started_at,omitempty"`
	Context         *ContextRequest `json:"context,omitempty"`
	BaselineScore   *float64        `json:"baseline_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ListRecordsRequest represents the query for a user's recent records
type ListRecordsRequest struct {
	UserID string `param:"user_id" validate:"required,max=255"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
}
