package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ModalityAnalysis is the full per-modality detail stored with a record.
// Audio and Visual are zero-valued placeholders when the modality was absent.
type ModalityAnalysis struct {
	Audio           AudioFeatures  `json:"audio"`
	AudioAvailable  bool           `json:"audio_available"`
	Visual          VisualFeatures `json:"visual"`
	VisualAvailable bool           `json:"visual_available"`
	Text            TextAnalysis   `json:"text"`
	Fusion          FusionResult   `json:"fusion"`
}

// RecordMetadata describes the input and timing of the enrichment run
type RecordMetadata struct {
	SessionID        string    `json:"session_id"`
	TranscriptLength int       `json:"transcript_length"`
	DurationSeconds  float64   `json:"duration_seconds"`
	FramesCaptured   int       `json:"frames_captured"`
	StartedAt        time.Time `json:"started_at"`
	ProcessingTimeMs int64     `json:"processing_time_ms"`
}

// DashboardRecord is the storage and display ready result of a check-in
type DashboardRecord struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID    string    `json:"user_id" gorm:"type:varchar(255);not null;index"`
	SessionID string    `json:"session_id" gorm:"type:varchar(255);not null;index"`

	Score             int       `json:"score" gorm:"type:integer;not null"`
	DirectionOfChange Direction `json:"direction_of_change" gorm:"type:varchar(20);not null"`

	Summary         string                      `json:"summary" gorm:"type:text"`
	Themes          datatypes.JSONSlice[string] `json:"themes" gorm:"type:jsonb"`
	Keywords        datatypes.JSONSlice[string] `json:"keywords" gorm:"type:jsonb"`
	PositiveDrivers datatypes.JSONSlice[string] `json:"positive_drivers" gorm:"type:jsonb"`
	NegativeDrivers datatypes.JSONSlice[string] `json:"negative_drivers" gorm:"type:jsonb"`
	MoodRating      int                         `json:"mood_rating" gorm:"type:integer"`

	RiskLevel   RiskLevel                   `json:"risk_level" gorm:"type:varchar(20);not null;default:'none'"`
	RiskReasons datatypes.JSONSlice[string] `json:"risk_reasons" gorm:"type:jsonb"`

	ContributingFactors datatypes.JSONSlice[string] `json:"contributing_factors" gorm:"type:jsonb"`
	ImprovementAreas    datatypes.JSONSlice[string] `json:"improvement_areas" gorm:"type:jsonb"`

	Confidence   float64      `json:"confidence" gorm:"type:double precision"`
	Uncertainty  float64      `json:"uncertainty" gorm:"type:double precision"`
	FusionMethod FusionMethod `json:"fusion_method" gorm:"type:varchar(30)"`

	Analysis datatypes.JSONType[ModalityAnalysis] `json:"analysis" gorm:"type:jsonb"`
	Metadata datatypes.JSONType[RecordMetadata]   `json:"metadata" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for DashboardRecord
func (DashboardRecord) TableName() string {
	return "dashboard_records"
}

// NewDashboardRecord creates a record with a fresh id
func NewDashboardRecord(userID, sessionID string) *DashboardRecord {
	return &DashboardRecord{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		RiskLevel: RiskLevelNone,
		CreatedAt: time.Now().UTC(),
	}
}
