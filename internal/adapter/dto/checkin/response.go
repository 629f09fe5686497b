package checkin

import (
	"time"

	"github.com/Mind-Measure/mind-measure-mobile-sub000/internal/domain/entities"
)

// RecordResponse represents a stored dashboard record
type RecordResponse struct {
	ID                  string                    `json:"id"`
	UserID              string                    `json:"user_id"`
	SessionID           string                    `json:"session_id"`
	Score               int                       `json:"score"`
	DirectionOfChange   string                    `json:"direction_of_change"`
	Summary             string                    `json:"summary"`
	Themes              []string                  `json:"themes"`
	Keywords            []string                  `json:"keywords"`
	PositiveDrivers     []string                  `json:"positive_drivers"`
	NegativeDrivers     []string                  `json:"negative_drivers"`
	MoodRating          int                       `json:"mood_rating"`
	RiskLevel           string                    `json:"risk_level"`
	RiskReasons         []string                  `json:"risk_reasons"`
	ContributingFactors []string                  `json:"contributing_factors"`
	ImprovementAreas    []string                  `json:"improvement_areas"`
	Confidence          float64                   `json:"confidence"`
	Uncertainty         float64                   `json:"uncertainty"`
	FusionMethod        string                    `json:"fusion_method"`
	Analysis            entities.ModalityAnalysis `json:"analysis"`
	Metadata            entities.RecordMetadata   `json:"metadata"`
	CreatedAt           time.Time                 `json:"created_at"`
}

// RecordListResponse represents a user's recent records, newest first
type RecordListResponse struct {
	UserID  string            `json:"user_id"`
	Records []*RecordResponse `json:"records"`
	Total   int               `json:"total"`
}

// CheckInResponse is returned after a successful enrichment
type CheckInResponse struct {
	Record         *RecordResponse          `json:"record"`
	TextAnalysis   *entities.TextAnalysis   `json:"text_analysis"`
	AudioFeatures  *entities.AudioFeatures  `json:"audio_features"`
	VisualFeatures *entities.VisualFeatures `json:"visual_features"`
	Fusion         *entities.FusionResult   `json:"fusion"`
	Warnings       []string                 `json:"warnings"`
}

// FeatureStatResponse summarises one tracked feature
type FeatureStatResponse struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// BaselineResponse represents a user's personal baseline
type BaselineResponse struct {
	UserID      string                         `json:"user_id"`
	CheckIns    int                            `json:"check_ins"`
	MeanScore   *float64                       `json:"mean_score"`
	ScoreStdDev float64                        `json:"score_std_dev"`
	Audio       map[string]FeatureStatResponse `json:"audio"`
	Visual      map[string]FeatureStatResponse `json:"visual"`
	Text        map[string]FeatureStatResponse `json:"text"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}
