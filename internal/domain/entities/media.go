package entities

import "time"

// VideoFrame is one encoded raster frame (JPEG or PNG) captured during a check-in
type VideoFrame struct {
	Image     []byte        `json:"image"`
	Timestamp time.Duration `json:"timestamp"`
}

// CapturedMedia is the raw input bundle for one check-in.
// It is read-only for extractors and never persisted.
type CapturedMedia struct {
	Audio     []byte
	Frames    []VideoFrame
	Duration  time.Duration
	StartedAt time.Time
	EndedAt   time.Time
}

// HasAudio reports whether an audio stream was captured
func (m *CapturedMedia) HasAudio() bool {
	return m != nil && len(m.Audio) > 0
}

// HasVideo reports whether at least one frame was captured
func (m *CapturedMedia) HasVideo() bool {
	return m != nil && len(m.Frames) > 0
}
